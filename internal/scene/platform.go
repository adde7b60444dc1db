package scene

import (
	"github.com/banshee-data/sensorsim/internal/geom"
)

// StandardGravity is the magnitude reported on the platform's Z axis by its
// simulated accelerometer, in m/s².
const StandardGravity = 9.80665

// Platform is a vehicle driving through the scene at constant speed and yaw
// rate. Devices mounted on it use its node as their parent.
type Platform struct {
	name    string
	node    *geom.Node
	speed   float64 // m/s along the platform's forward direction
	yawRate float64 // rad/s
}

// NewPlatform creates a platform rooted at the given world pose.
func NewPlatform(name string, pose geom.Transform, speed, yawRate float64) *Platform {
	return &Platform{
		name:    name,
		node:    geom.NewNode(pose, nil),
		speed:   speed,
		yawRate: yawRate,
	}
}

// Name returns the platform name.
func (p *Platform) Name() string { return p.name }

// Node returns the platform's transform node.
func (p *Platform) Node() *geom.Node { return p.node }

// Speed returns the forward speed in m/s.
func (p *Platform) Speed() float64 { return p.speed }

// YawRate returns the turn rate in rad/s.
func (p *Platform) YawRate() float64 { return p.yawRate }

// SetMotion changes speed (m/s) and yaw rate (rad/s).
func (p *Platform) SetMotion(speed, yawRate float64) {
	p.speed = speed
	p.yawRate = yawRate
}

// Update drives forward for dt seconds along the current heading, then
// turns by yawRate*dt.
func (p *Platform) Update(dt float64) {
	t := p.node.LocalTransform()
	t = t.Move(t.ForwardDirection().Scale(p.speed * dt))
	t = t.RotateYaw(p.yawRate * dt)
	p.node.SetLocalTransform(t)
}

// LinearAcceleration returns the specific force an IMU fixed to the
// platform would read, in the platform frame: centripetal acceleration on
// Y and gravity reaction on Z.
func (p *Platform) LinearAcceleration() [3]float64 {
	return [3]float64{0, p.speed * p.yawRate, StandardGravity}
}

// AngularVelocity returns the platform's body rates in rad/s.
func (p *Platform) AngularVelocity() [3]float64 {
	return [3]float64{0, 0, p.yawRate}
}

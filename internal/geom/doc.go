// Package geom provides the 3-D value types shared by the sensor simulator
// and the frame replayer: points, vectors, poses, transform nodes and
// point clouds.
//
// Coordinate convention: right-handed, X forward, Y left, Z up. Orientations
// are roll/pitch/yaw in radians, applied in fixed Z-Y-X order
// (R = Rz(yaw) * Ry(pitch) * Rx(roll)).
package geom

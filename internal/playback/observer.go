package playback

import "weak"

// Observe registers obs for frame-change callbacks without keeping it
// alive. Once obs is garbage collected it is skipped and dropped from the
// registry. Observers are called in registration order.
func Observe[T any, P interface {
	*T
	FrameObserver
}](m *Manager, obs P) {
	wp := weak.Make((*T)(obs))
	m.observers = append(m.observers, func() FrameObserver {
		p := wp.Value()
		if p == nil {
			return nil
		}
		return P(p)
	})
}

// ObserverCount returns the number of registered observers still alive.
func (m *Manager) ObserverCount() int {
	return len(m.liveObservers())
}

// liveObservers prunes collected observers and returns strong references to
// the rest, in registration order.
func (m *Manager) liveObservers() []FrameObserver {
	live := make([]FrameObserver, 0, len(m.observers))
	kept := m.observers[:0]
	for _, ref := range m.observers {
		if o := ref(); o != nil {
			kept = append(kept, ref)
			live = append(live, o)
		}
	}
	clear(m.observers[len(kept):])
	m.observers = kept
	return live
}

func (m *Manager) notify() {
	f := m.served
	if f == nil {
		return
	}
	for _, o := range m.liveObservers() {
		o.OnFrameChanged(f)
	}
}

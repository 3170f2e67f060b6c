package explorer

import "sync"

// Dispatcher is an in-process EventSource. Hosts that receive input through
// callbacks (a window toolkit, a test, a scripted walk) push events into it.
type Dispatcher struct {
	mu        sync.Mutex
	next      uint64
	listeners []listener
}

type listener struct {
	id      uint64
	handler func(Event)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Subscribe(handler func(Event)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	id := d.next
	d.listeners = append(d.listeners, listener{id: id, handler: handler})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, l := range d.listeners {
			if l.id == id {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to every current listener in subscription order.
// A listener removed by an earlier handler does not see ev.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.Lock()
	snapshot := make([]listener, len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.Unlock()

	for _, l := range snapshot {
		if !d.subscribed(l.id) {
			continue
		}
		l.handler(ev)
	}
}

func (d *Dispatcher) subscribed(id uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, l := range d.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

// Listeners returns the number of live subscriptions.
func (d *Dispatcher) Listeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

func (d *Dispatcher) KeyDown(key KeyCode) { d.Dispatch(Event{Kind: EventKeyDown, Key: key}) }
func (d *Dispatcher) KeyUp(key KeyCode)   { d.Dispatch(Event{Kind: EventKeyUp, Key: key}) }
func (d *Dispatcher) Click()              { d.Dispatch(Event{Kind: EventClick}) }

func (d *Dispatcher) MouseMove(dx, dy float64) {
	d.Dispatch(Event{Kind: EventMouseMove, DX: dx, DY: dy})
}

func (d *Dispatcher) PointerLock(locked bool) {
	d.Dispatch(Event{Kind: EventPointerLockChange, Locked: locked})
}

package ecs

import "iter"

// eventQueue is the type-erased view of Events[T] the storage uses to advance
// every queue once per frame.
type eventQueue interface {
	update()
}

type eventInstance[T any] struct {
	id    uint64
	event T
}

// Events is a double-buffered queue of events of type T, stored as a singleton.
// An event stays readable for two calls to Storage.UpdateEvents, which gives
// every system a chance to observe it regardless of where it runs relative to
// the sender. Readers keep their own cursor so each reader sees an event once.
type Events[T any] struct {
	previous []eventInstance[T]
	current  []eventInstance[T]
	nextId   uint64
}

// AddEvents returns the event queue for T, creating it and registering it
// with UpdateEvents on first use.
func AddEvents[T any](storage *Storage) *Events[T] {
	if events := singletonOf[Events[T]](storage); events != nil {
		return events
	}
	storage.AddSingleton(Events[T]{})
	events := singletonOf[Events[T]](storage)
	storage.eventQueues = append(storage.eventQueues, events)
	return events
}

// UpdateEvents advances every event queue by one frame. Events sent before the
// previous call are dropped.
func (s *Storage) UpdateEvents() {
	for _, queue := range s.eventQueues {
		queue.update()
	}
}

// SendEvent queues an event on the storage's queue for T.
func SendEvent[T any](storage *Storage, event T) {
	AddEvents[T](storage).Send(event)
}

// Send appends an event to the current frame's buffer.
func (e *Events[T]) Send(event T) {
	e.current = append(e.current, eventInstance[T]{id: e.nextId, event: event})
	e.nextId++
}

// Len returns the number of events still buffered.
func (e *Events[T]) Len() int {
	return len(e.previous) + len(e.current)
}

// Clear drops every buffered event.
func (e *Events[T]) Clear() {
	e.previous = e.previous[:0]
	e.current = e.current[:0]
}

func (e *Events[T]) update() {
	e.previous, e.current = e.current, e.previous[:0]
}

// since yields buffered events with an id at or after cursor, oldest first.
// advance is called with the id following each yielded event.
func (e *Events[T]) since(cursor uint64, advance func(uint64)) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, buffer := range [2][]eventInstance[T]{e.previous, e.current} {
			for _, inst := range buffer {
				if inst.id < cursor {
					continue
				}
				advance(inst.id + 1)
				if !yield(inst.event) {
					return
				}
			}
		}
	}
}

// EventReader reads events of type T that it has not seen yet. Declare it as a
// system field; the Scheduler initializes it on registration.
type EventReader[T any] struct {
	events *Events[T]
	cursor uint64
}

// NewEventReader creates a reader that starts with every event currently buffered.
func NewEventReader[T any](storage *Storage) *EventReader[T] {
	r := &EventReader[T]{}
	r.Init(storage)
	return r
}

// Init binds the reader to the storage's queue for T.
func (r *EventReader[T]) Init(storage *Storage) {
	r.events = AddEvents[T](storage)
	r.cursor = 0
}

// Read returns an iterator over unseen events. Breaking out of the loop leaves
// the remaining events unread.
func (r *EventReader[T]) Read() iter.Seq[T] {
	if r.events == nil {
		return func(func(T) bool) {}
	}
	return r.events.since(r.cursor, func(next uint64) { r.cursor = next })
}

// Len returns how many unseen events are buffered.
func (r *EventReader[T]) Len() int {
	if r.events == nil {
		return 0
	}
	count := 0
	for _, buffer := range [2][]eventInstance[T]{r.events.previous, r.events.current} {
		for _, inst := range buffer {
			if inst.id >= r.cursor {
				count++
			}
		}
	}
	return count
}

// Clear marks every buffered event as seen.
func (r *EventReader[T]) Clear() {
	if r.events != nil {
		r.cursor = r.events.nextId
	}
}

// EventWriter sends events of type T. Declare it as a system field; the
// Scheduler initializes it on registration.
type EventWriter[T any] struct {
	events *Events[T]
}

// Init binds the writer to the storage's queue for T.
func (w *EventWriter[T]) Init(storage *Storage) {
	w.events = AddEvents[T](storage)
}

// Send queues an event.
func (w *EventWriter[T]) Send(event T) {
	w.events.Send(event)
}

package ecs

import "iter"

// Query is a View for systems. It remembers which archetypes match, rescans
// only when the storage has created new ones, and collects its results once
// per Execute so the system can iterate them while queuing commands.
type Query[T any] struct {
	view *View[T]

	generation uint64
	archetypes []*Archetype
	scanned    bool

	ids   []EntityId
	items []T
	ready bool
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. The Scheduler calls it on registration.
func (q *Query[T]) Init(storage *Storage) {
	*q = Query[T]{view: NewView[T](storage)}
}

// Execute collects the matching entities. The Scheduler calls it right before
// the owning system runs.
func (q *Query[T]) Execute() {
	storage := q.view.storage
	if !q.scanned || q.generation != storage.generation {
		q.archetypes = q.archetypes[:0]
		for _, archetype := range storage.archetypes {
			if q.view.matches(archetype) {
				q.archetypes = append(q.archetypes, archetype)
			}
		}
		q.generation = storage.generation
		q.scanned = true
	}

	q.ids = q.ids[:0]
	q.items = q.items[:0]
	for _, archetype := range q.archetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.ids = append(q.ids, id)
			q.items = append(q.items, item)
		}
	}
	q.ready = true
}

// Len returns the number of entities collected by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.ids)
}

// Iter yields the entities collected by the last Execute. It panics if
// Execute has never run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.ready {
		panic("Query.Iter() called before Query.Execute()")
	}
	return func(yield func(EntityId, T) bool) {
		for i, id := range q.ids {
			if !yield(id, q.items[i]) {
				return
			}
		}
	}
}

// Values is Iter without the ids.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.ready {
		panic("Query.Values() called before Query.Execute()")
	}
	return func(yield func(T) bool) {
		for _, item := range q.items {
			if !yield(item) {
				return
			}
		}
	}
}

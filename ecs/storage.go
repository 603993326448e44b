package ecs

import (
	"reflect"
	"slices"
)

// Storage owns the archetypes, singletons and event queues of one world.
type Storage struct {
	registry   *ComponentRegistry
	archetypes map[uint32]*Archetype
	// generation increases every time an archetype is created; cached
	// queries compare it to decide whether to rescan.
	generation  uint64
	singletons  map[reflect.Type]reflect.Value
	eventQueues []eventQueue
}

// NewStorage creates an empty storage for the components of registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]reflect.Value),
	}
}

func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// archetypeFor returns the archetype of sorted types, creating it if needed.
func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := archetypeId(types)
	if archetype, ok := s.archetypes[id]; ok {
		return archetype
	}
	archetype := newArchetype(id, types, s.registry)
	s.archetypes[id] = archetype
	s.generation++
	return archetype
}

// GetArchetypes returns every archetype, in no particular order.
func (s *Storage) GetArchetypes() []*Archetype {
	archetypes := make([]*Archetype, 0, len(s.archetypes))
	for _, archetype := range s.archetypes {
		archetypes = append(archetypes, archetype)
	}
	return archetypes
}

func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// GetArchetype returns the archetype holding exactly the types of components,
// or nil if no entity ever had that set.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	return s.archetypes[archetypeId(componentTypes(components))]
}

// Spawn creates an entity from component values or pointers to them. It
// panics if components is empty or holds an unregistered type.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}
	archetype := s.archetypeFor(componentTypes(components))
	return NewEntityId(archetype.id, archetype.spawn(components))
}

// Delete removes the entity. Deleting a dead entity does nothing.
func (s *Storage) Delete(id EntityId) {
	if archetype := s.archetypes[id.ArchetypeId()]; archetype != nil {
		archetype.delete(id.Index())
	}
}

// AddComponent attaches a component to an entity, moving it to the matching
// archetype. Returns the entity's new id, or 0 if the entity does not exist.
// If the entity already has a component of that type, the value is replaced
// in place and the id is unchanged.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	from := s.archetypes[id.ArchetypeId()]
	if from == nil || !from.alive(id.Index()) {
		return 0
	}

	compType := componentType(component)
	if existing := from.GetComponent(id.Index(), compType); existing != nil {
		reflect.ValueOf(existing).Elem().Set(reflect.Indirect(reflect.ValueOf(component)))
		return id
	}

	types := append(slices.Clone(from.types), compType)
	sortTypes(types)
	return s.move(id, from, types, component)
}

// RemoveComponent detaches a component from an entity. Removing the last
// component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	from := s.archetypes[id.ArchetypeId()]
	if from == nil || !from.HasComponent(compType) {
		return id
	}
	if !from.alive(id.Index()) {
		return 0
	}
	if len(from.types) == 1 {
		from.delete(id.Index())
		return 0
	}

	types := slices.DeleteFunc(slices.Clone(from.types), func(t reflect.Type) bool {
		return t == compType
	})
	return s.move(id, from, types, nil)
}

// move copies the entity's components that types keeps into the archetype of
// types, adds extra when it is not nil, and frees the old slot. The entity's
// ref follows it.
func (s *Storage) move(id EntityId, from *Archetype, types []reflect.Type, extra any) EntityId {
	to := s.archetypeFor(types)

	components := make([]any, 0, len(types))
	for _, typ := range types {
		if comp := from.GetComponent(id.Index(), typ); comp != nil {
			components = append(components, comp)
		}
	}
	if extra != nil {
		components = append(components, extra)
	}

	newId := NewEntityId(to.id, to.spawn(components))
	from.moveRef(id, to, newId)
	from.delete(id.Index())
	return newId
}

// GetComponent returns a pointer to the entity's component of type compType,
// or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype := s.archetypes[id.ArchetypeId()]
	return archetype != nil && archetype.HasComponent(compType)
}

// Holes returns the number of deleted slots across all archetypes. Entity
// moves leave one behind in the archetype they leave.
func (s *Storage) Holes() int {
	holes := 0
	for _, archetype := range s.archetypes {
		holes += archetype.Holes()
	}
	return holes
}

// Compact packs every archetype that has holes and returns the number of
// slots reclaimed. Moved entities get new ids and refs follow them. Call it
// between frames, when no system holds ids or component pointers.
func (s *Storage) Compact() int {
	reclaimed := 0
	for _, archetype := range s.archetypes {
		reclaimed += archetype.Compact()
	}
	return reclaimed
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's component of type T, or nil if the entity
// does not have one.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

package ecs

import "weak"

// EntityId packs the archetype id into the high 32 bits and the slot index
// into the low 32. An id names a slot, not an entity: adding or removing a
// component and Storage.Compact all give an entity a new id. Keep an
// EntityRef to follow an entity across frames.
type EntityId uint64

// NewEntityId builds the id of slot index in archetype archetypeId.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

func (e EntityId) Index() uint32 {
	return uint32(e)
}

// EntityRef follows one entity as it moves between slots. Id is zero once the
// entity is deleted. Archetypes hold their refs weakly.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Valid reports whether the ref points at a live entity.
func (r *EntityRef) Valid() bool {
	return r != nil && r.Id != 0
}

// CreateEntityRef returns the ref of a live entity, creating it on first use.
// Every call for the same entity returns the same ref. It returns nil if id
// names no live entity.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || !archetype.alive(id.Index()) {
		return nil
	}
	if ref := archetype.liveRef(id); ref != nil {
		return ref
	}
	ref := &EntityRef{}
	archetype.trackRef(id, ref)
	return ref
}

// ResolveEntityRef returns the entity's current id.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Valid() {
		return 0, false
	}
	return ref.Id, true
}

// bindEntityRef points a placeholder ref from Commands.SpawnRef at its entity.
func (s *Storage) bindEntityRef(ref *EntityRef, id EntityId) {
	if archetype := s.archetypes[id.ArchetypeId()]; archetype != nil {
		archetype.trackRef(id, ref)
	}
}

func (a *Archetype) trackRef(id EntityId, ref *EntityRef) {
	ref.Id = id
	ref.Archetype = a
	a.refs.Put(id, weak.Make(ref))
}

// liveRef returns the ref tracked for id, forgetting it if it was collected.
func (a *Archetype) liveRef(id EntityId) *EntityRef {
	ptr, ok := a.refs.Get(id)
	if !ok {
		return nil
	}
	ref := ptr.Value()
	if ref == nil {
		a.refs.Del(id)
	}
	return ref
}

// moveRef hands the ref of id over to dst, where the entity now lives at newId.
func (a *Archetype) moveRef(id EntityId, dst *Archetype, newId EntityId) {
	ref := a.liveRef(id)
	if ref == nil {
		return
	}
	a.refs.Del(id)
	dst.trackRef(newId, ref)
}

// dropRef invalidates the ref of a deleted entity.
func (a *Archetype) dropRef(id EntityId) {
	if ref := a.liveRef(id); ref != nil {
		ref.Id = 0
		ref.Archetype = nil
		a.refs.Del(id)
	}
}

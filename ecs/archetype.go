package ecs

import (
	"iter"
	"reflect"
	"slices"
	"strings"
	"unsafe"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype holds every entity with one exact set of component types, one
// column per type. Slot i of each column belongs to the same entity.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// newArchetype creates archetype id for types, which must be sorted with
// sortTypes. It panics if a type is not registered.
func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](256),
	}
	for i, typ := range types {
		newColumn, ok := registry.columnFor(typ)
		if !ok {
			panic("component type " + typ.String() + " not registered")
		}
		a.columns[i] = newColumn()
	}
	return a
}

func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return a.columnIndex(compType) >= 0
}

func (a *Archetype) columnIndex(compType reflect.Type) int {
	return slices.Index(a.types, compType)
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// Holes returns the number of deleted slots not yet reused.
func (a *Archetype) Holes() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Holes()
}

func (a *Archetype) alive(index uint32) bool {
	return len(a.columns) > 0 && a.columns[0].Has(int(index))
}

// spawn stores one entity and returns its slot. components holds one value
// or pointer for each type of the archetype, in any order.
func (a *Archetype) spawn(components []any) uint32 {
	index := -1
	for _, comp := range components {
		if i := a.columnIndex(componentType(comp)); i >= 0 {
			index = a.columns[i].Append(comp)
		}
	}
	return uint32(index)
}

// GetComponent returns a pointer to the component of type compType in slot
// index, or nil.
func (a *Archetype) GetComponent(index uint32, compType reflect.Type) any {
	i := a.columnIndex(compType)
	if i < 0 {
		return nil
	}
	return a.columns[i].Get(int(index))
}

// delete frees slot index and invalidates its ref.
func (a *Archetype) delete(index uint32) {
	a.dropRef(NewEntityId(a.id, index))
	for _, c := range a.columns {
		c.Delete(int(index))
	}
}

// Compact moves live entities down over deleted slots and returns the number
// of slots reclaimed. Moved entities get new ids and refs follow them;
// component pointers taken before the call are no longer backed by storage.
func (a *Archetype) Compact() int {
	reclaimed := a.Holes()
	if reclaimed == 0 {
		return 0
	}

	moved := a.columns[0].Compact()
	for _, c := range a.columns[1:] {
		c.Compact()
	}

	refs := intmap.New[EntityId, weak.Pointer[EntityRef]](max(a.refs.Len(), 256))
	a.refs.ForEach(func(id EntityId, ptr weak.Pointer[EntityRef]) bool {
		ref := ptr.Value()
		if ref == nil || int(id.Index()) >= len(moved) || moved[id.Index()] < 0 {
			return true
		}
		newId := NewEntityId(a.id, uint32(moved[id.Index()]))
		ref.Id = newId
		refs.Put(newId, ptr)
		return true
	})
	a.refs = refs
	return reclaimed
}

// Iter yields the id of every live entity in slot order.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

// componentType returns the component type of a value or a pointer to one.
func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// componentTypes returns the sorted types of components. Pointers, maps,
// channels and functions are not components.
func componentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sortTypes(types)
	return types
}

// sortTypes orders types by name so a set of types has one archetype id
// whatever order it was listed in.
func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
}

// archetypeId hashes sorted types with FNV-1a over their runtime type
// descriptors, which are unique per type.
func archetypeId(types []reflect.Type) uint32 {
	const prime = 16777619
	h := uint32(2166136261)
	for _, t := range types {
		addr := uint64(uintptr(ifaceData(t)))
		h ^= uint32(addr) ^ uint32(addr>>32)
		h *= prime
	}
	return h
}

// iface mirrors the runtime layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// ifaceData returns the pointer held by v. Columns hand out components as *T,
// so for those this is the component's address.
func ifaceData(v any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&v)).data
}

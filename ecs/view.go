package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// viewField is one component pointer field of a view struct.
type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

// View reads entities through a struct of component pointers. Embedded
// pointer fields are required. Named pointer fields are required too unless
// tagged `ecs:"optional"`, in which case they are nil for entities without
// the component. One EntityId field, embedded or named, receives the id.
type View[T any] struct {
	storage  *Storage
	fields   []viewField
	idOffset uintptr
	hasId    bool
}

// NewView parses T. It panics if T is not a struct of component pointers and
// at most one EntityId.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := range structType.NumField() {
		field := structType.Field(i)
		if field.Type == entityIdType {
			if v.hasId {
				panic("View struct may only have one EntityId field")
			}
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}
		v.fields = append(v.fields, parseViewField(field))
	}
	return v
}

func parseViewField(field reflect.StructField) viewField {
	if field.Type.Kind() != reflect.Pointer {
		panic("View struct fields must be pointer types")
	}
	f := viewField{typ: field.Type.Elem(), offset: field.Offset}
	if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
		if tag != "optional" {
			panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
		}
		f.optional = true
	}
	return f
}

func (v *View[T]) fieldPtr(base unsafe.Pointer, f viewField) *unsafe.Pointer {
	return (*unsafe.Pointer)(unsafe.Add(base, f.offset))
}

func (v *View[T]) setId(base unsafe.Pointer, id EntityId) {
	if v.hasId {
		*(*EntityId)(unsafe.Add(base, v.idOffset)) = id
	}
}

// fill points the fields of *base at the components the lookup returns for
// each field, in field order. It reports false when a required one is nil.
func (v *View[T]) fill(base unsafe.Pointer, id EntityId, lookup func(i int) any) bool {
	v.setId(base, id)
	for i, f := range v.fields {
		component := lookup(i)
		if component == nil {
			if !f.optional {
				return false
			}
			*v.fieldPtr(base, f) = nil
			continue
		}
		*v.fieldPtr(base, f) = ifaceData(component)
	}
	return true
}

// Fill populates *ptr for the entity. It returns false if the entity is dead
// or misses a required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype := v.storage.archetypes[id.ArchetypeId()]
	if archetype == nil {
		return false
	}
	return v.fill(unsafe.Pointer(ptr), id, func(i int) any {
		return archetype.GetComponent(id.Index(), v.fields[i].typ)
	})
}

// Get returns the populated view of an entity, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef is Get for the entity behind a ref.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

// matches reports whether the archetype has every required component.
func (v *View[T]) matches(archetype *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// iterArchetype yields the populated view of every live entity of an
// archetype that matches.
func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		columns := make([]column, len(v.fields))
		for i, f := range v.fields {
			if c := archetype.columnIndex(f.typ); c >= 0 {
				columns[i] = archetype.columns[c]
			}
		}

		var index int
		lookup := func(i int) any {
			if columns[i] == nil {
				return nil
			}
			return columns[i].Get(index)
		}

		var result T
		base := unsafe.Pointer(&result)
		for id := range archetype.Iter() {
			index = int(id.Index())
			if v.fill(base, id, lookup) && !yield(id, result) {
				return
			}
		}
	}
}

// Iter yields every entity the view matches, in no particular order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.archetypes {
			if !v.matches(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values is Iter without the ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Spawn creates an entity from the components data points at. Nil optional
// fields are left out; a nil required field panics.
func (v *View[T]) Spawn(data T) EntityId {
	base := unsafe.Pointer(&data)
	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		ptr := *v.fieldPtr(base, f)
		if ptr == nil {
			if !f.optional {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(f.typ, ptr).Interface())
	}
	return v.storage.Spawn(components...)
}

package ecs

import "reflect"

// storageBound is implemented by the system fields the Scheduler binds to its
// storage when the system is registered: Query, Singleton, EventReader and
// EventWriter.
type storageBound interface {
	Init(storage *Storage)
}

// AddSingleton stores a value, or the value behind a pointer, that belongs
// to no entity. Adding a type that already exists overwrites it in place, so
// Singleton accessors and pointers from ReadSingleton see the new value.
func (s *Storage) AddSingleton(component any) {
	value := reflect.Indirect(reflect.ValueOf(component))
	if ptr, ok := s.singletons[value.Type()]; ok {
		ptr.Elem().Set(value)
		return
	}
	ptr := reflect.New(value.Type())
	ptr.Elem().Set(value)
	s.singletons[value.Type()] = ptr
}

// RemoveSingleton deletes the singleton of the given type. Accessors that
// already hold it keep the last value.
func (s *Storage) RemoveSingleton(compType reflect.Type) {
	delete(s.singletons, compType)
}

// ReadSingleton sets *out to the stored singleton of type T, where out is a **T.
// Returns false if no singleton of that type exists.
func (s *Storage) ReadSingleton(out any) bool {
	outValue := reflect.ValueOf(out)
	if outValue.Kind() != reflect.Pointer || outValue.Elem().Kind() != reflect.Pointer {
		panic("ReadSingleton expects a pointer to a pointer")
	}
	ptr, ok := s.singletons[outValue.Elem().Type().Elem()]
	if !ok {
		return false
	}
	outValue.Elem().Set(ptr)
	return true
}

// singletonOf returns the stored *T, or nil.
func singletonOf[T any](s *Storage) *T {
	ptr, ok := s.singletons[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return ptr.Interface().(*T)
}

// Singleton gives a system typed access to a singleton. Declare it as a
// system field; the Scheduler binds it on registration.
type Singleton[T any] struct {
	storage *Storage
	value   *T
}

// NewSingleton returns an accessor for T, first storing initializer (or the
// zero value) if the storage has no T yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if singletonOf[T](storage) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}
	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.value = singletonOf[T](storage)
}

// Get returns the singleton, or nil if the storage has none. A singleton added
// after Init is picked up on the next call.
func (s *Singleton[T]) Get() *T {
	if s.value == nil && s.storage != nil {
		s.value = singletonOf[T](s.storage)
	}
	return s.value
}

func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to column constructors. Each Storage
// has its own registry, and can only hold the types registered with it.
type ComponentRegistry struct {
	columns map[reflect.Type]func() column
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{columns: make(map[reflect.Type]func() column)}
}

// RegisterComponent registers T as a component type. Singletons do not need
// registration.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.columns[reflect.TypeFor[T]()] = func() column {
		return &blockColumn[T]{}
	}
}

// Registered reports whether the component type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.columns[t]
	return ok
}

func (r *ComponentRegistry) columnFor(t reflect.Type) (func() column, bool) {
	newColumn, ok := r.columns[t]
	return newColumn, ok
}

// column stores the values of one component type for an archetype.
type column interface {
	// Append stores a T or *T and returns its slot, or -1 for another type.
	Append(item any) int
	Delete(index int)
	// Get returns a *T, or nil for an empty slot.
	Get(index int) any
	Has(index int) bool
	Len() int
	Holes() int
	// Compact packs live values to the front in slot order. The result maps
	// each old slot to its new one, or to -1 if it was empty.
	Compact() []int
	Iter() iter.Seq[int]
}

const blockSize = 64

type block[T any] struct {
	values [blockSize]T
	live   [blockSize]bool
}

// blockColumn keeps values in fixed-size heap blocks, so pointers from Get
// stay valid while the column grows. Deleted slots are reused by Append.
type blockColumn[T any] struct {
	blocks []*block[T]
	free   []int
	end    int // one past the highest slot in use
}

func (c *blockColumn[T]) slot(index int) (*block[T], int) {
	if index < 0 || index >= c.end {
		return nil, 0
	}
	return c.blocks[index/blockSize], index % blockSize
}

func (c *blockColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		index = c.end
		if index%blockSize == 0 {
			c.blocks = append(c.blocks, new(block[T]))
		}
		c.end++
	}

	b, i := c.slot(index)
	b.values[i] = value
	b.live[i] = true
	return index
}

func (c *blockColumn[T]) Get(index int) any {
	b, i := c.slot(index)
	if b == nil || !b.live[i] {
		return nil
	}
	return &b.values[i]
}

func (c *blockColumn[T]) Has(index int) bool {
	b, i := c.slot(index)
	return b != nil && b.live[i]
}

// Delete zeroes the slot so the column stops referencing its value.
func (c *blockColumn[T]) Delete(index int) {
	b, i := c.slot(index)
	if b == nil || !b.live[i] {
		return
	}
	var zero T
	b.values[i] = zero
	b.live[i] = false
	c.free = append(c.free, index)
}

func (c *blockColumn[T]) Len() int {
	return c.end - len(c.free)
}

func (c *blockColumn[T]) Holes() int {
	return len(c.free)
}

func (c *blockColumn[T]) Compact() []int {
	moved := make([]int, c.end)
	blocks := make([]*block[T], 0, (c.Len()+blockSize-1)/blockSize)
	next := 0
	for old := range c.end {
		src, i := c.slot(old)
		if !src.live[i] {
			moved[old] = -1
			continue
		}
		if next%blockSize == 0 {
			blocks = append(blocks, new(block[T]))
		}
		dst := blocks[next/blockSize]
		dst.values[next%blockSize] = src.values[i]
		dst.live[next%blockSize] = true
		moved[old] = next
		next++
	}

	c.blocks = blocks
	c.free = nil
	c.end = next
	return moved
}

func (c *blockColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for index := range c.end {
			b, i := c.slot(index)
			if b.live[i] && !yield(index) {
				return
			}
		}
	}
}

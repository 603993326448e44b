package ecs

import "reflect"

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the ECS storage during system execution.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []any
	ref        *EntityRef
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// SpawnRef queues an entity spawn operation and returns a ref that is bound to
// the new entity when the commands are flushed. Until then the ref resolves to
// nothing, but it may already be stored in other components (a parent link, for
// example) spawned in the same batch.
func (c *Commands) SpawnRef(components ...any) *EntityRef {
	ref := &EntityRef{}
	c.spawns = append(c.spawns, spawnCommand{components: components, ref: ref})
	return ref
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Empty reports whether no commands are queued.
func (c *Commands) Empty() bool {
	return len(c.spawns) == 0 && len(c.deletes) == 0 && len(c.adds) == 0 &&
		len(c.removes) == 0 && len(c.defers) == 0
}

// Flush flushes all commands to the provided storage, reseting the buffer state
func (c *Commands) Flush(storage *Storage) {
	deletedEntities := make(map[EntityId]bool)

	for _, cmd := range c.deletes {
		storage.Delete(cmd)
		deletedEntities[cmd] = true
	}

	// Adding or removing a component moves the entity to another archetype, so
	// later commands against the same entity must follow it.
	moved := make(map[EntityId]EntityId)
	resolve := func(id EntityId) EntityId {
		for {
			next, ok := moved[id]
			if !ok {
				return id
			}
			id = next
		}
	}

	for _, cmd := range c.removes {
		if !deletedEntities[cmd.entity] {
			id := resolve(cmd.entity)
			if newId := storage.RemoveComponent(id, cmd.compType); newId != id {
				delete(moved, newId)
				moved[id] = newId
			}
		}
	}

	for _, cmd := range c.adds {
		if !deletedEntities[cmd.entity] {
			id := resolve(cmd.entity)
			if newId := storage.AddComponent(id, cmd.component); newId != id {
				delete(moved, newId)
				moved[id] = newId
			}
		}
	}

	for _, cmd := range c.spawns {
		id := storage.Spawn(cmd.components...)
		if cmd.ref != nil {
			storage.bindEntityRef(cmd.ref, id)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}

package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/sceneview/app"
	"github.com/plus3/sceneview/assets"
	"github.com/plus3/sceneview/ecs"
)

// SceneSpawnSystem instances loaded scene assets: SceneRoot entities that have
// no SceneInstance yet, and requests queued on the SceneSpawner.
type SceneSpawnSystem struct {
	Roots ecs.Query[struct {
		Id ecs.EntityId
		*SceneRoot
		Instance *SceneInstance `ecs:"optional"`
	}]
	Spawner ecs.Singleton[SceneSpawner]
	Assets  ecs.Singleton[AssetServer]
	Log     ecs.Singleton[app.Log]

	failed map[assets.Handle]bool
}

func (s *SceneSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	server := s.Assets.Get()
	spawner := s.Spawner.Get()
	if server == nil || server.Server == nil || spawner == nil {
		return
	}

	for _, root := range s.Roots.Iter() {
		if root.Instance != nil {
			continue
		}
		scene, ok := s.loaded(server, root.SceneRoot.Handle)
		if !ok {
			continue
		}

		id := spawner.allocate()
		anchor := frame.Storage.CreateEntityRef(root.Id)
		spawnNodes(frame.Commands, scene, id, anchor)
		frame.Commands.AddComponent(root.Id, SceneInstance{Id: id})
		spawner.markReady(id)
	}

	remaining := spawner.pending[:0]
	for _, pending := range spawner.pending {
		if server.State(pending.handle) == assets.Failed {
			s.reportFailure(pending.handle, server.Err(pending.handle))
			continue
		}
		scene, ok := s.loaded(server, pending.handle)
		if !ok {
			remaining = append(remaining, pending)
			continue
		}

		anchor := frame.Commands.SpawnRef(
			Identity(),
			GlobalIdentity(),
			SceneRoot{Handle: pending.handle},
			SceneInstance{Id: pending.id},
		)
		spawnNodes(frame.Commands, scene, pending.id, anchor)
		spawner.markReady(pending.id)
	}
	spawner.pending = remaining
}

func (s *SceneSpawnSystem) loaded(server AssetServerLike, handle assets.Handle) (*assets.Scene, bool) {
	switch server.State(handle) {
	case assets.Loaded:
		return server.Scene(handle)
	case assets.Failed:
		s.reportFailure(handle, server.Err(handle))
	}
	return nil, false
}

func (s *SceneSpawnSystem) reportFailure(handle assets.Handle, err error) {
	if s.failed == nil {
		s.failed = make(map[assets.Handle]bool)
	}
	if s.failed[handle] {
		return
	}
	s.failed[handle] = true
	if log := s.Log.Get(); log != nil {
		log.Warn("scene will not be instanced", "asset", handle.String(), "error", err)
	}
}

// AssetServerLike is the part of the asset server the spawn system polls.
type AssetServerLike interface {
	State(assets.Handle) assets.LoadState
	Scene(assets.Handle) (*assets.Scene, bool)
	Err(assets.Handle) error
}

// PropagateTransformsSystem writes every GlobalTransform from the entity's
// Transform composed with its parents'. Entities whose parent has no
// Transform, or no longer exists, are treated as roots.
type PropagateTransformsSystem struct {
	Entities ecs.Query[struct {
		Id ecs.EntityId
		*Transform
		*GlobalTransform
		Parent *Parent `ecs:"optional"`
	}]

	locals  map[ecs.EntityId]entityTransform
	globals map[ecs.EntityId]mgl32.Mat4
}

type entityTransform struct {
	local  mgl32.Mat4
	parent ecs.EntityId
	global *GlobalTransform
}

func (s *PropagateTransformsSystem) Execute(frame *ecs.UpdateFrame) {
	if s.locals == nil {
		s.locals = make(map[ecs.EntityId]entityTransform)
		s.globals = make(map[ecs.EntityId]mgl32.Mat4)
	}
	clear(s.locals)
	clear(s.globals)

	for _, entity := range s.Entities.Iter() {
		var parent ecs.EntityId
		if entity.Parent != nil {
			parent, _ = frame.Storage.ResolveEntityRef(entity.Parent.Ref)
		}
		s.locals[entity.Id] = entityTransform{
			local:  entity.Transform.Matrix(),
			parent: parent,
			global: entity.GlobalTransform,
		}
	}

	for id, entity := range s.locals {
		entity.global.Matrix = s.resolve(id, 0)
	}
}

// maxDepth bounds the parent walk so a cycle cannot recurse forever.
const maxDepth = 256

func (s *PropagateTransformsSystem) resolve(id ecs.EntityId, depth int) mgl32.Mat4 {
	if global, ok := s.globals[id]; ok {
		return global
	}

	entity := s.locals[id]
	global := entity.local
	if _, hasParent := s.locals[entity.parent]; hasParent && entity.parent != id && depth < maxDepth {
		global = s.resolve(entity.parent, depth+1).Mul4(entity.local)
	}

	s.globals[id] = global
	return global
}

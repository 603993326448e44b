package scene

import (
	"github.com/plus3/sceneview/assets"
	"github.com/plus3/sceneview/ecs"
)

type pendingInstance struct {
	id     InstanceId
	handle assets.Handle
}

// SceneSpawner is a singleton service that instances scene assets without a
// parent entity. Spawn only queues the request; SceneSpawnSystem fulfils it once
// the asset has loaded.
type SceneSpawner struct {
	nextId  InstanceId
	pending []pendingInstance
	ready   map[InstanceId]bool
}

// Spawn queues an unparented instance of the scene behind handle and returns
// its id.
func (s *SceneSpawner) Spawn(handle assets.Handle) InstanceId {
	id := s.allocate()
	s.pending = append(s.pending, pendingInstance{id: id, handle: handle})
	return id
}

// Pending returns the number of queued instances whose assets have not loaded.
func (s *SceneSpawner) Pending() int {
	return len(s.pending)
}

// InstanceReady reports whether the instance's nodes have been spawned.
func (s *SceneSpawner) InstanceReady(id InstanceId) bool {
	return s.ready[id]
}

func (s *SceneSpawner) allocate() InstanceId {
	s.nextId++
	return s.nextId
}

func (s *SceneSpawner) markReady(id InstanceId) {
	if s.ready == nil {
		s.ready = make(map[InstanceId]bool)
	}
	s.ready[id] = true
}

// spawnNodes queues one entity per scene node, parented to anchor or to the
// entity of its parent node.
func spawnNodes(commands *ecs.Commands, scene *assets.Scene, id InstanceId, anchor *ecs.EntityRef) {
	refs := make(map[int]*ecs.EntityRef, len(scene.Nodes))
	for _, node := range scene.Nodes {
		parent := anchor
		if node.Parent >= 0 {
			parent = refs[node.Parent]
		}

		refs[node.Index] = commands.SpawnRef(
			Transform{Translation: node.Translation, Rotation: node.Rotation, Scale: node.Scale},
			GlobalIdentity(),
			Parent{Ref: parent},
			Name{Value: node.Name},
			SceneNode{Instance: id, Index: node.Index, HasMesh: node.HasMesh},
		)
	}
}

package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plus3/sceneview/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// EntityBrowser pages through the entities of a storage, optionally narrowed
// to one archetype and a search text.
type EntityBrowser struct {
	entities           []EntityInfo
	filtered           []EntityInfo
	storage            *ecs.Storage
	selectedEntityId   ecs.EntityId
	selectedRef        *ecs.EntityRef
	filterText         string
	filterArchetypeId  *uint32
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	if maxEntitiesPerPage <= 0 {
		maxEntitiesPerPage = 20
	}
	return &EntityBrowser{maxEntitiesPerPage: maxEntitiesPerPage}
}

// Refresh rebuilds the entity list. Entities can move between archetypes on any
// frame, so the list is rebuilt rather than patched.
func (eb *EntityBrowser) Refresh(storage *ecs.Storage) {
	eb.storage = storage
	eb.entities = eb.entities[:0]
	eb.trackSelection()

	for _, archetype := range storage.GetArchetypes() {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}

		for entityId := range archetype.Iter() {
			eb.entities = append(eb.entities, EntityInfo{
				ID:             entityId,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: componentTypes,
			})
		}
	}

	sort.Slice(eb.entities, func(i, j int) bool {
		return eb.entities[i].ID < eb.entities[j].ID
	})
	eb.applyFilter()
}

// SetFilter keeps entities whose id, archetype id or component names contain
// text, ignoring case.
func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
	eb.currentPage = 0
	eb.applyFilter()
}

// FilterArchetype keeps only the entities of one archetype. Nil removes the
// restriction.
func (eb *EntityBrowser) FilterArchetype(id *uint32) {
	if id == nil && eb.filterArchetypeId == nil {
		return
	}
	if id != nil && eb.filterArchetypeId != nil && *id == *eb.filterArchetypeId {
		return
	}
	eb.filterArchetypeId = id
	eb.currentPage = 0
	eb.applyFilter()
}

func (eb *EntityBrowser) applyFilter() {
	eb.filtered = eb.filtered[:0]
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.entities {
		if eb.filterArchetypeId != nil && entity.ArchetypeID != *eb.filterArchetypeId {
			continue
		}

		if filterLower != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			archStr := fmt.Sprintf("0x%x", entity.ArchetypeID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(archStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		eb.filtered = append(eb.filtered, entity)
	}

	if eb.currentPage >= eb.PageCount() {
		eb.currentPage = max(eb.PageCount()-1, 0)
	}
}

// Len returns the number of entities passing the filters.
func (eb *EntityBrowser) Len() int {
	return len(eb.filtered)
}

func (eb *EntityBrowser) PageCount() int {
	return (len(eb.filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
}

// CurrentPage returns the zero-based page index.
func (eb *EntityBrowser) CurrentPage() int {
	return eb.currentPage
}

// Page returns the entities on the current page.
func (eb *EntityBrowser) Page() []EntityInfo {
	startIdx := eb.currentPage * eb.maxEntitiesPerPage
	endIdx := min(startIdx+eb.maxEntitiesPerPage, len(eb.filtered))
	if startIdx >= endIdx {
		return nil
	}
	return eb.filtered[startIdx:endIdx]
}

func (eb *EntityBrowser) NextPage() {
	if eb.currentPage < eb.PageCount()-1 {
		eb.currentPage++
	}
}

func (eb *EntityBrowser) PrevPage() {
	if eb.currentPage > 0 {
		eb.currentPage--
	}
}

// Select picks the entity to inspect. The selection follows the entity when
// it moves between archetypes or the storage is compacted; 0 clears it.
func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selectedEntityId = id
	eb.selectedRef = nil
	eb.trackSelection()
}

func (eb *EntityBrowser) trackSelection() {
	if eb.selectedEntityId == 0 || eb.selectedRef != nil || eb.storage == nil {
		return
	}
	eb.selectedRef = eb.storage.CreateEntityRef(eb.selectedEntityId)
	if eb.selectedRef == nil {
		eb.selectedEntityId = 0
	}
}

// GetSelectedEntity returns the selected entity's current id, or 0 if nothing
// is selected or the entity was deleted.
func (eb *EntityBrowser) GetSelectedEntity() ecs.EntityId {
	if eb.selectedRef == nil {
		return eb.selectedEntityId
	}
	id, ok := eb.storage.ResolveEntityRef(eb.selectedRef)
	if !ok {
		return 0
	}
	return id
}

package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plus3/sceneview/ecs"
)

type ArchetypeInfo struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
	ComponentCount int
}

// Label is the one-line form shown in the archetype list.
func (a ArchetypeInfo) Label() string {
	return fmt.Sprintf("0x%X  %d entities  [%s]", a.ID, a.EntityCount, strings.Join(a.ComponentTypes, ", "))
}

const (
	ArchetypeSortID = iota
	ArchetypeSortComponents
	ArchetypeSortComponentCount
	ArchetypeSortEntityCount
)

// ArchetypeViewer lists the archetypes of a storage with their entity counts.
type ArchetypeViewer struct {
	archetypes     []ArchetypeInfo
	maxEntityCount int
	sortColumn     int
	sortAscending  bool
	selectedArchId *uint32
}

// NewArchetypeViewer sorts by entity count, largest first.
func NewArchetypeViewer() *ArchetypeViewer {
	return &ArchetypeViewer{
		sortColumn:    ArchetypeSortEntityCount,
		sortAscending: false,
	}
}

// Refresh rebuilds the list from the storage's current stats.
func (av *ArchetypeViewer) Refresh(stats ecs.StorageStats) {
	av.archetypes = av.archetypes[:0]
	av.maxEntityCount = 0

	for _, arch := range stats.ArchetypeBreakdown {
		av.archetypes = append(av.archetypes, ArchetypeInfo{
			ID:             arch.ID,
			ComponentTypes: arch.ComponentTypes,
			EntityCount:    arch.EntityCount,
			ComponentCount: len(arch.ComponentTypes),
		})
		av.maxEntityCount = max(av.maxEntityCount, arch.EntityCount)
	}

	if av.selectedArchId != nil && av.indexOf(*av.selectedArchId) < 0 {
		av.selectedArchId = nil
	}
	av.sortArchetypes()
}

// SetSort orders the list by one of the ArchetypeSort columns.
func (av *ArchetypeViewer) SetSort(column int, ascending bool) {
	av.sortColumn = column
	av.sortAscending = ascending
	av.sortArchetypes()
}

func (av *ArchetypeViewer) Archetypes() []ArchetypeInfo {
	return av.archetypes
}

// Fill returns the entity count of the archetype at index i relative to the
// largest archetype, in [0, 1].
func (av *ArchetypeViewer) Fill(i int) float32 {
	if av.maxEntityCount == 0 || i < 0 || i >= len(av.archetypes) {
		return 0
	}
	return float32(av.archetypes[i].EntityCount) / float32(av.maxEntityCount)
}

// SelectIndex selects the archetype at index i of the sorted list. An index
// out of range clears the selection.
func (av *ArchetypeViewer) SelectIndex(i int) {
	if i < 0 || i >= len(av.archetypes) {
		av.selectedArchId = nil
		return
	}
	id := av.archetypes[i].ID
	av.selectedArchId = &id
}

// Selected returns the selected archetype id, or nil.
func (av *ArchetypeViewer) Selected() *uint32 {
	return av.selectedArchId
}

// SelectedIndex returns the position of the selection in the sorted list, or -1.
func (av *ArchetypeViewer) SelectedIndex() int {
	if av.selectedArchId == nil {
		return -1
	}
	return av.indexOf(*av.selectedArchId)
}

func (av *ArchetypeViewer) indexOf(id uint32) int {
	for i, arch := range av.archetypes {
		if arch.ID == id {
			return i
		}
	}
	return -1
}

func (av *ArchetypeViewer) sortArchetypes() {
	sort.SliceStable(av.archetypes, func(i, j int) bool {
		a, b := av.archetypes[i], av.archetypes[j]
		var less bool

		switch av.sortColumn {
		case ArchetypeSortID:
			less = a.ID < b.ID
		case ArchetypeSortComponents:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case ArchetypeSortComponentCount:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.EntityCount < b.EntityCount
		}

		if !av.sortAscending {
			return !less
		}
		return less
	})
}

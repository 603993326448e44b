package ecs

import (
	"slices"
	"strings"
)

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	TotalEntityCount   int
	ArchetypeCount     int
	SingletonCount     int
	FreeSlots          int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype in a StorageStats snapshot.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
	FreeSlots      int
}

// CollectStats walks every archetype and singleton. The breakdown is sorted by
// descending entity count, then by archetype id.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		ArchetypeCount: len(s.archetypes),
		SingletonCount: len(s.singletons),
	}

	for _, archetype := range s.archetypes {
		count := archetype.Len()
		names := make([]string, len(archetype.types))
		for i, typ := range archetype.types {
			names[i] = typ.String()
		}

		stats.TotalEntityCount += count
		stats.FreeSlots += archetype.Holes()
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    count,
			FreeSlots:      archetype.Holes(),
		})
	}

	slices.SortFunc(stats.ArchetypeBreakdown, func(a, b ArchetypeStats) int {
		if a.EntityCount != b.EntityCount {
			return b.EntityCount - a.EntityCount
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	for typ := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, typ.String())
	}
	slices.SortFunc(stats.SingletonTypes, strings.Compare)

	return stats
}

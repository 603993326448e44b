package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/plus3/sceneview/ecs"
)

// ComponentView is the rendered form of one component of the inspected entity.
type ComponentView struct {
	Type  string
	Lines []string
}

// maxInspectDepth stops the walk into nested structs.
const maxInspectDepth = 4

// InspectEntity describes every component of an entity, one line per field.
// Nested structs are indented under their field name.
func InspectEntity(storage *ecs.Storage, entityId ecs.EntityId) ([]ComponentView, error) {
	if entityId == 0 {
		return nil, fmt.Errorf("no entity selected")
	}

	archetype := storage.GetArchetypeById(entityId.ArchetypeId())
	if archetype == nil {
		return nil, fmt.Errorf("entity %d not found (invalid archetype)", entityId)
	}

	var views []ComponentView
	for _, compType := range archetype.Types() {
		component := storage.GetComponent(entityId, compType)
		if component == nil {
			continue
		}
		views = append(views, ComponentView{
			Type:  compType.String(),
			Lines: InspectValue(component),
		})
	}
	if len(views) == 0 {
		return nil, fmt.Errorf("entity %d has been deleted", entityId)
	}
	return views, nil
}

// InspectValue describes the exported fields of a struct, or a pointer to one.
// Other values are described by a single line.
func InspectValue(value any) []string {
	val := reflect.ValueOf(value)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return []string{"nil"}
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return []string{fmt.Sprintf("%v", val.Interface())}
	}

	var lines []string
	appendFields(&lines, val, 0)
	if len(lines) == 0 {
		lines = append(lines, "(no fields)")
	}
	return lines
}

func appendFields(lines *[]string, val reflect.Value, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				*lines = append(*lines, fmt.Sprintf("%s%s: nil", indent, field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}

		if field.IsStruct && depth < maxInspectDepth && !field.Opaque {
			*lines = append(*lines, fmt.Sprintf("%s%s:", indent, field.Name))
			appendFields(lines, fieldVal, depth+1)
			continue
		}

		*lines = append(*lines, fmt.Sprintf("%s%s: %s", indent, field.Name, formatValue(fieldVal, field)))
	}
}

func formatValue(val reflect.Value, field FieldInfo) string {
	if !val.IsValid() {
		return "<invalid>"
	}

	switch {
	case field.IsSlice:
		return fmt.Sprintf("[%d items]", val.Len())
	case field.IsMap:
		return fmt.Sprintf("map[%d items]", val.Len())
	}

	switch val.Kind() {
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.3f", val.Float())
	case reflect.String:
		return fmt.Sprintf("%q", val.String())
	case reflect.Array:
		if val.Type().Elem().Kind() == reflect.Float32 {
			parts := make([]string, val.Len())
			for i := range parts {
				parts[i] = fmt.Sprintf("%.3f", val.Index(i).Float())
			}
			return "(" + strings.Join(parts, ", ") + ")"
		}
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return val.Type().String()
	}

	if val.CanInterface() {
		return fmt.Sprintf("%v", val.Interface())
	}
	return val.Type().String()
}

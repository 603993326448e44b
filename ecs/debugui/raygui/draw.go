// Package raygui draws a debugui.Overlay in a raylib window.
package raygui

import (
	"fmt"
	"strings"

	rg "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/plus3/sceneview/ecs/debugui"
)

const (
	panelWidth = 440
	lineHeight = 18
	padding    = 8
)

// Draw renders the overlay with its top-left corner at (x, y). It must be
// called between rl.BeginDrawing and rl.EndDrawing, outside any 3D mode.
func Draw(o *debugui.Overlay, x, y float32) {
	if !o.Visible {
		return
	}

	inner := float32(panelWidth - 2*padding)
	rg.Panel(rl.NewRectangle(x, y, panelWidth, 640), "Diagnostics (F3)")
	cursor := y + 32

	for _, line := range o.Performance.Lines(o.Stats()) {
		rg.Label(rl.NewRectangle(x+padding, cursor, inner, lineHeight), line)
		cursor += lineHeight
	}

	drawFrameGraph(o.Performance, rl.NewRectangle(x+padding, cursor+4, inner, 40))
	cursor += 52

	archetypes := o.Archetypes.Archetypes()
	archLabels := make([]string, len(archetypes))
	for i, arch := range archetypes {
		archLabels[i] = arch.Label()
	}
	rg.Label(rl.NewRectangle(x+padding, cursor, inner, lineHeight), "Archetypes")
	cursor += lineHeight
	selectedArch := int32(o.Archetypes.SelectedIndex())
	if active := rg.ListView(rl.NewRectangle(x+padding, cursor, inner, 110), strings.Join(archLabels, ";"), &o.ArchetypeScroll, selectedArch); active != selectedArch {
		o.Archetypes.SelectIndex(int(active))
		o.Entities.FilterArchetype(o.Archetypes.Selected())
	}
	cursor += 118

	page := o.Entities.Page()
	entityLabels := make([]string, len(page))
	selectedEntity := int32(-1)
	for i, entity := range page {
		entityLabels[i] = fmt.Sprintf("%d  (archetype 0x%X)", entity.ID, entity.ArchetypeID)
		if entity.ID == o.Entities.GetSelectedEntity() {
			selectedEntity = int32(i)
		}
	}
	rg.Label(rl.NewRectangle(x+padding, cursor, inner, lineHeight),
		fmt.Sprintf("Entities: page %d / %d (%d entities)", o.Entities.CurrentPage()+1, max(o.Entities.PageCount(), 1), o.Entities.Len()))
	if rg.Button(rl.NewRectangle(x+inner-100, cursor, 50, lineHeight), "Prev") {
		o.Entities.PrevPage()
	}
	if rg.Button(rl.NewRectangle(x+inner-46, cursor, 50, lineHeight), "Next") {
		o.Entities.NextPage()
	}
	cursor += lineHeight + 2
	if active := rg.ListView(rl.NewRectangle(x+padding, cursor, inner, 130), strings.Join(entityLabels, ";"), &o.EntityScroll, selectedEntity); active != selectedEntity {
		if active >= 0 && int(active) < len(page) {
			o.Entities.Select(page[active].ID)
		} else {
			o.Entities.Select(0)
		}
	}
	cursor += 138

	drawInspector(o, x+padding, cursor, inner, y+640-cursor-padding)
}

func drawFrameGraph(stats *debugui.PerformanceStats, bounds rl.Rectangle) {
	rl.DrawRectangleLinesEx(bounds, 1, rl.Gray)

	history := stats.History()
	longest := stats.Max()
	if len(history) == 0 || longest == 0 {
		return
	}

	barWidth := bounds.Width / float32(stats.Capacity())
	for i, ft := range history {
		height := ft / longest * (bounds.Height - 2)
		rl.DrawRectangleRec(rl.NewRectangle(
			bounds.X+float32(i)*barWidth,
			bounds.Y+bounds.Height-1-height,
			max(barWidth-1, 1),
			height,
		), rl.Fade(rl.SkyBlue, 0.8))
	}
}

func drawInspector(o *debugui.Overlay, x, y, width, height float32) {
	views, err := o.Inspected()
	if err != nil {
		rg.Label(rl.NewRectangle(x, y, width, lineHeight), err.Error())
		return
	}
	if len(views) == 0 {
		rg.Label(rl.NewRectangle(x, y, width, lineHeight), "No entity selected")
		return
	}

	bottom := y + height
	for _, view := range views {
		if y+lineHeight > bottom {
			return
		}
		rg.Label(rl.NewRectangle(x, y, width, lineHeight), view.Type)
		y += lineHeight
		for _, line := range view.Lines {
			if y+lineHeight > bottom {
				return
			}
			rg.Label(rl.NewRectangle(x+12, y, width-12, lineHeight), line)
			y += lineHeight
		}
	}
}

package graph

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/custom"
	"github.com/san-kum/datavis3d/internal/logging"
)

// AddCustomItem adds it to the graph and returns its index. An item that
// was already added keeps its index.
func (g *Graph) AddCustomItem(it *custom.Item) int {
	if it == nil {
		return -1
	}
	if i := g.customIndex(it); i >= 0 {
		return i
	}
	g.items = append(g.items, it)
	g.dirty |= DirtyCustomItems
	return len(g.items) - 1
}

func (g *Graph) customIndex(it *custom.Item) int { return slices.Index(g.items, it) }

// CustomItems lists the custom items in index order.
func (g *Graph) CustomItems() []*custom.Item {
	return append([]*custom.Item(nil), g.items...)
}

// RemoveCustomItem removes it and destroys its primitive. Unknown items
// are ignored.
func (g *Graph) RemoveCustomItem(it *custom.Item) {
	if i := g.customIndex(it); i >= 0 {
		g.removeCustomAt(i)
	}
}

// RemoveCustomItemsAt removes every item at data position p and returns
// how many went.
func (g *Graph) RemoveCustomItemsAt(p mgl64.Vec3) int {
	n := 0
	for i := len(g.items) - 1; i >= 0; i-- {
		if g.items[i].Position() == p {
			g.removeCustomAt(i)
			n++
		}
	}
	return n
}

func (g *Graph) RemoveCustomItems() {
	for i := len(g.items) - 1; i >= 0; i-- {
		g.removeCustomAt(i)
	}
}

func (g *Graph) removeCustomAt(i int) {
	it := g.items[i]
	g.custom.Remove(it)
	g.items = slices.Delete(g.items, i, i+1)
	switch {
	case g.selectedItem == i:
		g.selectedItem = -1
	case g.selectedItem > i:
		g.selectedItem--
	}
	g.dirty |= DirtyCustomItems
	logging.Logger().Debug("custom item removed", "index", i, "mesh", it.Mesh().String())
}

// SelectedCustomItem returns the custom item the last pick landed on.
func (g *Graph) SelectedCustomItem() (*custom.Item, int) {
	if g.selectedItem < 0 {
		return nil, -1
	}
	return g.items[g.selectedItem], g.selectedItem
}

// AddCustomLabel adds l and returns its index. A label that was already
// added keeps its index.
func (g *Graph) AddCustomLabel(l *custom.Label) int {
	if l == nil {
		return -1
	}
	if i := slices.Index(g.labels, l); i >= 0 {
		return i
	}
	g.labels = append(g.labels, l)
	return len(g.labels) - 1
}

func (g *Graph) RemoveCustomLabel(l *custom.Label) {
	if i := slices.Index(g.labels, l); i >= 0 {
		g.labels = slices.Delete(g.labels, i, i+1)
	}
}

func (g *Graph) CustomLabels() []*custom.Label {
	return append([]*custom.Label(nil), g.labels...)
}

// syncCustom places the custom items through the helpers of this pass.
// Moved axes or scaling place every item again.
func (g *Graph) syncCustom() error {
	m := custom.Mapper{X: g.helpers[0], Y: g.helpers[1], Z: g.helpers[2]}
	if err := g.custom.Sync(g.items, m, g.dirty.Has(geometry|DirtyCustomItems)); err != nil {
		return err
	}
	g.placedLabels = custom.PlaceLabels(g.labels, m)
	return nil
}

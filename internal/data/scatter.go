package data

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ScatterItem is one point with its own orientation.
type ScatterItem struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

func NewScatterItem(x, y, z float64) ScatterItem {
	return ScatterItem{Position: mgl64.Vec3{x, y, z}, Rotation: mgl64.QuatIdent()}
}

// ScatterProxy owns a contiguous array of scatter points.
type ScatterProxy struct {
	changeSet
	items []ScatterItem
}

func NewScatterProxy() *ScatterProxy {
	return &ScatterProxy{}
}

func (p *ScatterProxy) ItemCount() int       { return len(p.items) }
func (p *ScatterProxy) Items() []ScatterItem { return p.items }

func (p *ScatterProxy) ItemAt(i int) (ScatterItem, bool) {
	if i < 0 || i >= len(p.items) {
		return ScatterItem{}, false
	}
	return p.items[i], true
}

func (p *ScatterProxy) ResetArray(items []ScatterItem) {
	before := len(p.items)
	p.items = append([]ScatterItem(nil), items...)
	p.mark(ChangeArrayReset)
	p.markCount(before)
}

func (p *ScatterProxy) AddItem(item ScatterItem) int {
	return p.AddItems([]ScatterItem{item})
}

// AddItems appends items and returns the index of the first one.
func (p *ScatterProxy) AddItems(items []ScatterItem) int {
	start := len(p.items)
	if len(items) == 0 {
		return start
	}
	p.items = append(p.items, items...)
	p.mark(ChangeRowsAdded)
	p.markCount(start)
	return start
}

func (p *ScatterProxy) InsertItem(index int, item ScatterItem) error {
	if index < 0 || index > len(p.items) {
		return fmt.Errorf("insert item %d: %w", index, ErrIndexOutOfRange)
	}
	before := len(p.items)
	p.items = append(p.items, ScatterItem{})
	copy(p.items[index+1:], p.items[index:])
	p.items[index] = item
	p.mark(ChangeRowsInserted)
	p.markCount(before)
	return nil
}

func (p *ScatterProxy) SetItem(index int, item ScatterItem) error {
	if index < 0 || index >= len(p.items) {
		return fmt.Errorf("set item %d: %w", index, ErrIndexOutOfRange)
	}
	p.items[index] = item
	p.mark(ChangeItemChanged)
	return nil
}

func (p *ScatterProxy) RemoveItems(index, count int) error {
	if index < 0 || index >= len(p.items) || count < 1 {
		return fmt.Errorf("remove items %d+%d: %w", index, count, ErrIndexOutOfRange)
	}
	before := len(p.items)
	end := min(index+count, len(p.items))
	p.items = append(p.items[:index], p.items[end:]...)
	p.mark(ChangeRowsRemoved)
	p.markCount(before)
	return nil
}

// Limits returns the per axis bounds of all points.
func (p *ScatterProxy) Limits() (lo, hi mgl64.Vec3, ok bool) {
	if len(p.items) == 0 {
		return lo, hi, false
	}
	lo = mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, it := range p.items {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], it.Position[k])
			hi[k] = math.Max(hi[k], it.Position[k])
		}
	}
	return lo, hi, true
}

func (p *ScatterProxy) markCount(before int) {
	if len(p.items) != before {
		p.mark(ChangeItemCount)
	}
}

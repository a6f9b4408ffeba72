package selection

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/datavis3d/internal/data"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/series"
)

var _ = Describe("Mode", func() {
	It("round trips through its names", func() {
		for _, m := range []Mode{ModeNone, ModeItem, ModeItemAndRow, ModeItemRowAndColumn | ModeMultiSeries} {
			parsed, ok := ParseMode(m.String())
			Expect(ok).To(BeTrue())
			Expect(parsed).To(Equal(m))
		}
	})

	It("rejects unknown names", func() {
		_, ok := ParseMode("item|diagonal")
		Expect(ok).To(BeFalse())
	})

	It("needs exactly one of row and column to slice", func() {
		Expect((ModeItemAndRow | ModeSlice).Valid()).To(BeTrue())
		Expect((ModeColumn | ModeSlice).Valid()).To(BeTrue())
		Expect((ModeItem | ModeSlice).Valid()).To(BeFalse())
		Expect((ModeItemRowAndColumn | ModeSlice).Valid()).To(BeFalse())

		m, ok := ParseMode("item|row|slice")
		Expect(ok).To(BeTrue())
		Expect(m).To(Equal(ModeItemAndRow | ModeSlice))
		_, ok = ParseMode("row|column|slice")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Resolver", func() {
	var (
		r    *Resolver
		a, b *series.Bar
	)

	at := func(row, col int) series.Coord { return series.Coord{Row: row, Col: col} }

	BeforeEach(func() {
		a = series.NewBar("a", data.NewBarProxyFromValues([][]float64{{1, 2}, {3, 4}}))
		b = series.NewBar("b", data.NewBarProxyFromValues([][]float64{{1, 2}, {3, 4}}))
		r = NewResolver(ModeItem)
	})

	It("starts empty", func() {
		Expect(r.Selected().Valid()).To(BeFalse())
		Expect(r.StateOf(a, at(0, 0))).To(Equal(StateNone))
	})

	Context("in item mode", func() {
		BeforeEach(func() {
			Expect(r.Select(Target{Series: a, Coord: at(1, 0)})).To(BeTrue())
		})

		It("highlights only the exact item", func() {
			Expect(r.StateOf(a, at(1, 0))).To(Equal(StateItem))
			Expect(r.StateOf(a, at(1, 1))).To(Equal(StateNone))
			Expect(r.StateOf(b, at(1, 0))).To(Equal(StateNone))
		})

		It("reports no change for a repeated selection", func() {
			Expect(r.TakeChanged()).To(BeTrue())
			Expect(r.Select(Target{Series: a, Coord: at(1, 0)})).To(BeFalse())
			Expect(r.TakeChanged()).To(BeFalse())
		})

		It("clears on an invalid coordinate", func() {
			Expect(r.Select(Target{Series: a, Coord: series.InvalidCoord})).To(BeTrue())
			Expect(r.Selected().Valid()).To(BeFalse())
		})

		It("clears when the series goes away", func() {
			r.SeriesRemoved(b)
			Expect(r.Selected().Series).To(Equal(series.Series(a)))
			r.SeriesRemoved(a)
			Expect(r.Selected().Valid()).To(BeFalse())
		})
	})

	Context("in item, row and column mode", func() {
		BeforeEach(func() {
			r.SetMode(ModeItemRowAndColumn)
			r.Select(Target{Series: a, Coord: at(0, 1)})
		})

		It("classifies row and column neighbours", func() {
			Expect(r.StateOf(a, at(0, 1))).To(Equal(StateItem))
			Expect(r.StateOf(a, at(0, 0))).To(Equal(StateRow))
			Expect(r.StateOf(a, at(1, 1))).To(Equal(StateColumn))
			Expect(r.StateOf(a, at(1, 0))).To(Equal(StateNone))
		})

		It("maps states to colour roles", func() {
			Expect(r.BarRole(a, at(0, 1))).To(Equal(series.RoleSingleHighlight))
			Expect(r.BarRole(a, at(0, 0))).To(Equal(series.RoleMultiHighlight))
			Expect(r.BarRole(a, at(1, 0))).To(Equal(series.RoleBase))
		})

		It("leaves other series alone", func() {
			Expect(r.StateOf(b, at(0, 1))).To(Equal(StateNone))
		})
	})

	Context("in row mode only", func() {
		It("marks the selected item as part of its row", func() {
			r.SetMode(ModeRow)
			r.Select(Target{Series: a, Coord: at(1, 1)})
			Expect(r.StateOf(a, at(1, 1))).To(Equal(StateRow))
			Expect(r.StateOf(a, at(1, 0))).To(Equal(StateRow))
			Expect(r.StateOf(a, at(0, 1))).To(Equal(StateNone))
		})
	})

	Context("across series", func() {
		It("highlights the same coordinate in every series", func() {
			r.SetMode(ModeItem | ModeMultiSeries)
			r.Select(Target{Series: a, Coord: at(0, 0)})
			Expect(r.StateOf(b, at(0, 0))).To(Equal(StateItem))
		})

		It("ignores series of another kind", func() {
			r.SetMode(ModeItem | ModeMultiSeries)
			r.Select(Target{Series: a, Coord: at(0, 0)})
			s := series.NewScatter("s", nil)
			Expect(r.StateOf(s, at(0, 0))).To(Equal(StateNone))
		})
	})

	Context("when slicing", func() {
		It("rejects a mode without a single row or column", func() {
			Expect(r.SetMode(ModeItem | ModeSlice)).To(BeFalse())
			Expect(r.Mode()).To(Equal(ModeItem))
			Expect(r.SetMode(ModeItemRowAndColumn | ModeSlice)).To(BeFalse())
			Expect(r.Mode()).To(Equal(ModeItem))
		})

		It("is active only while something is selected", func() {
			Expect(r.SetMode(ModeItemAndRow | ModeSlice)).To(BeTrue())
			Expect(r.Slicing()).To(BeFalse())
			r.Select(Target{Series: a, Coord: at(1, 0)})
			Expect(r.Slicing()).To(BeTrue())
			Expect(r.StateOf(a, at(1, 1))).To(Equal(StateRow))
			r.Clear()
			Expect(r.Slicing()).To(BeFalse())
		})

		It("stops when the slice flag is dropped", func() {
			r.SetMode(ModeItemAndColumn | ModeSlice)
			r.Select(Target{Series: a, Coord: at(0, 0)})
			r.SetMode(ModeItemAndColumn)
			Expect(r.Slicing()).To(BeFalse())
			Expect(r.Selected().Valid()).To(BeTrue())
		})
	})

	It("drops the selection when selecting is switched off", func() {
		r.Select(Target{Series: a, Coord: at(0, 0)})
		r.SetMode(ModeNone)
		Expect(r.Selected().Valid()).To(BeFalse())
		Expect(r.Select(Target{Series: a, Coord: at(0, 0)})).To(BeFalse())
	})

	Describe("Resolve", func() {
		var handles map[scene.Handle]Target
		lookup := func(h scene.Hit) (Target, bool) {
			t, ok := handles[h.Handle]
			return t, ok
		}

		BeforeEach(func() {
			rec := scene.NewRecorder()
			h1, err := rec.CreatePrimitive(scene.KindItem, scene.MeshBar)
			Expect(err).NotTo(HaveOccurred())
			h2, err := rec.CreatePrimitive(scene.KindItem, scene.MeshBar)
			Expect(err).NotTo(HaveOccurred())
			handles = map[scene.Handle]Target{
				h1: {Series: a, Coord: at(0, 0)},
				h2: {Series: b, Coord: at(1, 1)},
			}
		})

		It("takes the first recognised hit", func() {
			var hits []scene.Hit
			for h := range handles {
				if handles[h].Series == b {
					hits = append(hits, scene.Hit{Handle: h})
				}
			}
			hits = append([]scene.Hit{{}}, hits...)
			Expect(r.Resolve(hits, lookup)).To(Equal(Target{Series: b, Coord: at(1, 1)}))
		})

		It("clears when nothing is hit", func() {
			r.Select(Target{Series: a, Coord: at(0, 0)})
			Expect(r.Resolve(nil, lookup).Valid()).To(BeFalse())
		})
	})

	It("addresses scatter points by column", func() {
		s := series.NewScatter("s", nil)
		Expect(PointTarget(s, 3).Coord).To(Equal(at(0, 3)))
		Expect(PointTarget(s, -1).Valid()).To(BeFalse())
	})
})

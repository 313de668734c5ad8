package compose_test

import (
	"errors"
	"image"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/arcanaland/pokerfactory/internal/annotation"
	"github.com/arcanaland/pokerfactory/internal/card"
	"github.com/arcanaland/pokerfactory/internal/compose"
	"github.com/arcanaland/pokerfactory/internal/deck"
	"github.com/arcanaland/pokerfactory/internal/deck/decktest"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newComposer(t *testing.T, opts compose.Options) *compose.Composer {
	t.Helper()
	c, err := compose.NewComposer(decktest.New(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func countClasses(ps []annotation.Placement) map[int]int {
	out := make(map[int]int)
	for _, p := range ps {
		out[p.Class]++
	}
	return out
}

func TestCompose_PlacementCount(t *testing.T) {
	c := newComposer(t, compose.DefaultOptions())
	cat := c.Catalog()
	seated := cat.MustIndex(card.PlayerSeated)
	active := cat.MustIndex(card.PlayerActive)
	dealer := cat.MustIndex(card.DealerButton)

	for seed := uint64(0); seed < 50; seed++ {
		comp := c.Compose(seeded(seed))
		counts := countClasses(comp.Placements)

		cards := 0
		for class, n := range counts {
			if class < 52 {
				cards += n
			}
		}
		if cards != 5 {
			t.Fatalf("seed %d: expected 5 cards, got %d", seed, cards)
		}
		if counts[seated] < 2 || counts[seated] > 6 || counts[seated] != len(comp.Seats) {
			t.Fatalf("seed %d: unexpected seated count %d (seats %d)", seed, counts[seated], len(comp.Seats))
		}
		if counts[active] > counts[seated] {
			t.Fatalf("seed %d: %d active players for %d seats", seed, counts[active], counts[seated])
		}
		if counts[dealer] != 1 {
			t.Fatalf("seed %d: expected one dealer button, got %d", seed, counts[dealer])
		}
		if want := 5 + counts[seated] + counts[active] + 1; len(comp.Placements) != want {
			t.Fatalf("seed %d: expected %d placements, got %d", seed, want, len(comp.Placements))
		}
	}
}

func TestCompose_PlacementOrder(t *testing.T) {
	c := newComposer(t, compose.DefaultOptions())
	comp := c.Compose(seeded(7))

	// Class indices never decrease: cards, seated, active, dealer.
	rank := func(class int) int {
		if class < 52 {
			return 0
		}
		return class
	}
	for i := 1; i < len(comp.Placements); i++ {
		if rank(comp.Placements[i].Class) < rank(comp.Placements[i-1].Class) {
			t.Fatalf("placement %d out of order: %v", i, comp.Placements)
		}
	}
}

func TestCompose_NormalizedFields(t *testing.T) {
	tests := []struct {
		name string
		opts func(*compose.Options)
	}{
		{"default", func(*compose.Options) {}},
		{"crowded", func(o *compose.Options) { o.Cards = 20; o.Size = 0.5 }},
		{"small canvas", func(o *compose.Options) { o.Width, o.Height = 200, 150 }},
		{"max jitter", func(o *compose.Options) { o.Size, o.Brightness = 1, 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := compose.DefaultOptions()
			tt.opts(&opts)
			c := newComposer(t, opts)

			for seed := uint64(0); seed < 20; seed++ {
				for _, p := range c.Compose(seeded(seed)).Placements {
					for _, v := range []float64{p.CenterX, p.CenterY, p.Width, p.Height} {
						if v < 0 || v > 1 {
							t.Fatalf("seed %d: field out of range in %+v", seed, p)
						}
					}
				}
			}
		})
	}
}

func TestCompose_DistinctCards(t *testing.T) {
	opts := compose.DefaultOptions()
	opts.Cards = 52
	opts.Width = 4000
	c := newComposer(t, opts)

	for seed := uint64(0); seed < 5; seed++ {
		seen := make(map[int]bool)
		for _, p := range c.Compose(seeded(seed)).Placements {
			if p.Class >= 52 {
				continue
			}
			if seen[p.Class] {
				t.Fatalf("seed %d: card %d drawn twice", seed, p.Class)
			}
			seen[p.Class] = true
		}
		if len(seen) != 52 {
			t.Fatalf("seed %d: expected 52 distinct cards, got %d", seed, len(seen))
		}
	}
}

func TestCompose_DistinctSlots(t *testing.T) {
	c := newComposer(t, compose.DefaultOptions())

	for seed := uint64(0); seed < 100; seed++ {
		seen := make(map[compose.Slot]bool)
		for _, s := range c.Compose(seeded(seed)).Seats {
			if seen[s.Slot] {
				t.Fatalf("seed %d: slot %s used twice", seed, s.Slot)
			}
			seen[s.Slot] = true
		}
	}
}

func TestCompose_SeatedDisabledSkipsDependents(t *testing.T) {
	opts := compose.DefaultOptions()
	opts.Features = card.Features{Seated: false, Active: true, Dealer: true}

	d := decktest.New()
	d.Players = nil
	c, err := compose.NewComposer(d, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Catalog().Len() != 52 {
		t.Errorf("expected 52 classes, got %d", c.Catalog().Len())
	}

	for seed := uint64(0); seed < 10; seed++ {
		comp := c.Compose(seeded(seed))
		if len(comp.Placements) != 5 || len(comp.Seats) != 0 {
			t.Fatalf("seed %d: expected only 5 cards, got %d placements", seed, len(comp.Placements))
		}
	}
}

func TestCompose_ClassIndicesMatchCatalog(t *testing.T) {
	opts := compose.DefaultOptions()
	opts.Features = card.Features{Seated: true, Dealer: true}
	c := newComposer(t, opts)

	comp := c.Compose(seeded(3))
	last := comp.Placements[len(comp.Placements)-1]
	if last.Class != 53 || c.Catalog().Names()[53] != card.DealerButton {
		t.Errorf("dealer button class %d does not match catalog %v", last.Class, c.Catalog().Names()[52:])
	}
}

func TestCompose_Deterministic(t *testing.T) {
	c := newComposer(t, compose.DefaultOptions())

	a := c.Compose(seeded(42))
	b := c.Compose(seeded(42))
	if len(a.Placements) != len(b.Placements) {
		t.Fatalf("placement counts differ: %d vs %d", len(a.Placements), len(b.Placements))
	}
	for i := range a.Placements {
		if a.Placements[i] != b.Placements[i] {
			t.Errorf("placement %d differs: %+v vs %+v", i, a.Placements[i], b.Placements[i])
		}
	}
}

func TestCompose_CardLayout(t *testing.T) {
	opts := compose.DefaultOptions()
	opts.Jitter = compose.Jitter{}
	opts.Features = card.Features{}
	c := newComposer(t, opts)

	comp := c.Compose(seeded(1))
	gap := opts.Spacing + 10
	left := (opts.Width - opts.Cards*(decktest.CardW+gap)) / 2
	for i, p := range comp.Placements {
		want := annotation.NewPlacement(p.Class,
			image.Rect(left+i*(decktest.CardW+gap), (opts.Height-decktest.CardH)/2,
				left+i*(decktest.CardW+gap)+decktest.CardW, (opts.Height-decktest.CardH)/2+decktest.CardH),
			image.Pt(opts.Width, opts.Height))
		if p != want {
			t.Errorf("card %d: got %+v, want %+v", i, p, want)
		}
	}
}

func TestNewComposer_Errors(t *testing.T) {
	opts := compose.DefaultOptions()
	opts.Cards = 53
	if _, err := compose.NewComposer(decktest.New(), opts); !errors.Is(err, compose.ErrTooManyCards) {
		t.Errorf("expected ErrTooManyCards, got %v", err)
	}

	opts = compose.DefaultOptions()
	opts.Width = 0
	if _, err := compose.NewComposer(decktest.New(), opts); !errors.Is(err, compose.ErrInvalidOptions) {
		t.Errorf("expected ErrInvalidOptions, got %v", err)
	}

	d := decktest.New()
	d.Players = nil
	if _, err := compose.NewComposer(d, compose.DefaultOptions()); !errors.Is(err, deck.ErrMissingAsset) {
		t.Errorf("expected ErrMissingAsset, got %v", err)
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	c := newComposer(t, compose.DefaultOptions())

	imgPath := filepath.Join(dir, "a.png")
	lblPath := filepath.Join(dir, "a.txt")
	comp, err := c.Render(imgPath, lblPath, seeded(9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(imgPath); err != nil {
		t.Errorf("image not written: %v", err)
	}
	labels, err := annotation.ReadLabels(lblPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(labels) != len(comp.Placements) {
		t.Errorf("expected %d label lines, got %d", len(comp.Placements), len(labels))
	}
}

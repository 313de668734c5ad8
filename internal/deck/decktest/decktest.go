// Package decktest builds sprite decks for tests.
package decktest

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/arcanaland/pokerfactory/internal/card"
	"github.com/arcanaland/pokerfactory/internal/deck"
)

// Sprite sizes used by the fixtures.
const (
	CardW, CardH     = 60, 90
	SeatedW, SeatedH = 80, 50
	ActiveW, ActiveH = 70, 20
	DealerW, DealerH = 24, 24
)

func sprite(w, h int, c color.NRGBA) *image.NRGBA {
	return imaging.New(w, h, c)
}

// New returns an in-memory deck with all 52 cards, three seated sprites,
// an active sprite and a dealer button.
func New() *deck.Deck {
	d := &deck.Deck{
		Name:  "fixture",
		Cards: make(map[string]*image.NRGBA, len(card.Codes)),
	}
	for i, code := range card.Codes {
		d.Cards[code] = sprite(CardW, CardH, color.NRGBA{R: uint8(i * 4), G: 200, B: 200, A: 255})
	}
	d.Players = &deck.Players{
		Seated: []*image.NRGBA{
			sprite(SeatedW, SeatedH, color.NRGBA{R: 200, A: 255}),
			sprite(SeatedW, SeatedH, color.NRGBA{G: 200, A: 255}),
			sprite(SeatedW, SeatedH, color.NRGBA{B: 200, A: 255}),
		},
		Active: sprite(ActiveW, ActiveH, color.NRGBA{R: 255, G: 255, A: 255}),
		Dealer: sprite(DealerW, DealerH, color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
	}
	return d
}

// Write writes a complete deck under dir/name and returns its path.
// Card sprites are written for the given codes only; nil means all 52.
func Write(t testing.TB, dir, name string, codes []string) string {
	t.Helper()

	root, err := deck.Create(dir, name)
	if err != nil {
		t.Fatalf("create deck: %v", err)
	}
	if codes == nil {
		codes = card.Codes[:]
	}

	save := func(rel string, img image.Image) {
		t.Helper()
		if err := imaging.Save(img, filepath.Join(root, rel)); err != nil {
			t.Fatalf("write sprite %s: %v", rel, err)
		}
	}

	for _, code := range codes {
		save(filepath.Join(deck.CardsDir, code+".png"), sprite(CardW, CardH, color.NRGBA{R: 10, G: 200, B: 200, A: 255}))
	}
	save(filepath.Join(deck.SeatedDir, "a.png"), sprite(SeatedW, SeatedH, color.NRGBA{R: 200, A: 255}))
	save(filepath.Join(deck.SeatedDir, "b.png"), sprite(SeatedW, SeatedH, color.NRGBA{G: 200, A: 255}))
	save(deck.ActiveSprite, sprite(ActiveW, ActiveH, color.NRGBA{R: 255, G: 255, A: 255}))
	save(deck.DealerSprite, sprite(DealerW, DealerH, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))

	return root
}

// Remove deletes a path relative to a deck root.
func Remove(t testing.TB, root, rel string) {
	t.Helper()
	if err := os.RemoveAll(filepath.Join(root, rel)); err != nil {
		t.Fatalf("remove %s: %v", rel, err)
	}
}

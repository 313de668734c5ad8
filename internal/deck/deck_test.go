package deck_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arcanaland/pokerfactory/internal/card"
	"github.com/arcanaland/pokerfactory/internal/deck"
	"github.com/arcanaland/pokerfactory/internal/deck/decktest"
)

func TestLoad_FullDeck(t *testing.T) {
	root := decktest.Write(t, t.TempDir(), "red", nil)

	d, err := deck.Load(root, card.Features{Seated: true, Active: true, Dealer: true}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "red" {
		t.Errorf("expected deck name red, got %s", d.Name)
	}
	if len(d.Cards) != 52 {
		t.Errorf("expected 52 cards, got %d", len(d.Cards))
	}
	if d.Players == nil || len(d.Players.Seated) != 2 {
		t.Fatalf("expected two seated sprites, got %+v", d.Players)
	}
	if b := d.Cards["AS"].Bounds(); b.Dx() != decktest.CardW || b.Dy() != decktest.CardH {
		t.Errorf("unexpected card size %v", b)
	}
}

func TestLoad_SkipsPlayersWhenSeatedDisabled(t *testing.T) {
	root := decktest.Write(t, t.TempDir(), "red", nil)
	decktest.Remove(t, root, deck.SeatedDir)

	d, err := deck.Load(root, card.Features{Active: true, Dealer: true}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Players != nil {
		t.Error("expected players not loaded")
	}
}

func TestLoadCards_SkipsUnknownFiles(t *testing.T) {
	root := decktest.Write(t, t.TempDir(), "red", []string{"AS", "KH"})
	if err := os.WriteFile(filepath.Join(root, deck.CardsDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(root, deck.CardsDir, "AS.png")
	raw, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, deck.CardsDir, "Joker.png"), raw, 0644); err != nil {
		t.Fatal(err)
	}

	cards, err := deck.LoadCards(root, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 2 {
		t.Errorf("expected 2 cards, got %d", len(cards))
	}
	d := &deck.Deck{Cards: cards}
	codes := d.CardCodes()
	if len(codes) != 2 || codes[0] != "AS" || codes[1] != "KH" {
		t.Errorf("unexpected codes %v", codes)
	}
}

func TestLoad_MissingAssets(t *testing.T) {
	tests := []struct {
		name   string
		remove string
	}{
		{"cards", deck.CardsDir},
		{"seated", deck.SeatedDir},
		{"active", deck.ActiveSprite},
		{"dealer", deck.DealerSprite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := decktest.Write(t, t.TempDir(), "red", []string{"AS"})
			decktest.Remove(t, root, tt.remove)

			_, err := deck.Load(root, card.Features{Seated: true}, nil)
			if !errors.Is(err, deck.ErrMissingAsset) {
				t.Fatalf("expected ErrMissingAsset, got %v", err)
			}
		})
	}
}

func TestLoadPlayers_EmptySeatedDir(t *testing.T) {
	root := decktest.Write(t, t.TempDir(), "red", []string{"AS"})
	decktest.Remove(t, root, deck.SeatedDir)
	if err := os.MkdirAll(filepath.Join(root, deck.SeatedDir), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := deck.LoadPlayers(root); !errors.Is(err, deck.ErrMissingAsset) {
		t.Fatalf("expected ErrMissingAsset, got %v", err)
	}
}

func TestCreateAndList(t *testing.T) {
	lib := t.TempDir()

	if _, err := deck.Create(lib, "blue"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := deck.Create(lib, "blue"); err == nil {
		t.Error("expected error creating an existing deck")
	}
	if _, err := deck.Create(lib, "a/b"); err == nil {
		t.Error("expected error for a nested name")
	}
	if err := os.MkdirAll(filepath.Join(lib, "not-a-deck"), 0755); err != nil {
		t.Fatal(err)
	}

	decks, err := deck.List(lib)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decks) != 1 || decks[0] != "blue" {
		t.Errorf("expected [blue], got %v", decks)
	}
}

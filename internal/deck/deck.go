package deck

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/arcanaland/pokerfactory/internal/card"
)

// ErrMissingAsset is returned when a required asset directory or file is absent.
var ErrMissingAsset = errors.New("missing asset")

// Deck directory layout, relative to the deck root.
var (
	CardsDir      = filepath.Join("assets", "cards")
	SeatedDir     = filepath.Join("assets", "players", "seated")
	ActiveDir     = filepath.Join("assets", "players", "active")
	TableDir      = filepath.Join("assets", "table")
	ActiveSprite  = filepath.Join(ActiveDir, "PlayerActive.png")
	DealerSprite  = filepath.Join(TableDir, "DealerButton.png")
	GeneratedDir  = "generated_datasets"
	spriteExt     = ".png"
	deckAssetDirs = []string{CardsDir, TableDir, ActiveDir, SeatedDir}
)

// Players holds the table entity sprites of a deck.
type Players struct {
	Seated []*image.NRGBA
	Active *image.NRGBA
	Dealer *image.NRGBA
}

// Deck is a loaded sprite deck. Images are shared between placements and
// must not be modified.
type Deck struct {
	Name  string
	Path  string
	Cards map[string]*image.NRGBA

	// Players is nil when the deck was loaded without table entities.
	Players *Players
}

// CardCodes returns the loaded card codes in catalog order.
func (d *Deck) CardCodes() []string {
	codes := make([]string, 0, len(d.Cards))
	for _, c := range card.Codes {
		if _, ok := d.Cards[c]; ok {
			codes = append(codes, c)
		}
	}
	return codes
}

// Load loads the deck at deckPath. Player sprites are only required and
// loaded when seated players are enabled.
func Load(deckPath string, features card.Features, logger *slog.Logger) (*Deck, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cards, err := LoadCards(deckPath, logger)
	if err != nil {
		return nil, err
	}

	d := &Deck{
		Name:  filepath.Base(filepath.Clean(deckPath)),
		Path:  deckPath,
		Cards: cards,
	}

	if features.Normalize().Seated {
		players, err := LoadPlayers(deckPath)
		if err != nil {
			return nil, err
		}
		d.Players = players
	}

	logger.Debug("deck loaded", "deck", d.Name, "cards", len(d.Cards), "players", d.Players != nil)
	return d, nil
}

// LoadCards loads every card sprite under assets/cards, keyed by card code.
// Files that do not name one of the 52 cards are skipped.
func LoadCards(deckPath string, logger *slog.Logger) (map[string]*image.NRGBA, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dir := filepath.Join(deckPath, CardsDir)
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}

	cards := make(map[string]*image.NRGBA)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), spriteExt) {
			continue
		}
		code := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !card.IsCode(code) {
			logger.Debug("skipping unknown card sprite", "file", entry.Name())
			continue
		}
		img, err := openSprite(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		cards[code] = img
	}

	return cards, nil
}

// LoadPlayers loads the seated player sprites, the active player sprite and
// the dealer button. Seated sprites are ordered by file name.
func LoadPlayers(deckPath string) (*Players, error) {
	seatedDir := filepath.Join(deckPath, SeatedDir)
	activePath := filepath.Join(deckPath, ActiveSprite)
	dealerPath := filepath.Join(deckPath, DealerSprite)

	for _, p := range []string{seatedDir, activePath, dealerPath} {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingAsset, p)
		}
	}

	entries, err := readDir(seatedDir)
	if err != nil {
		return nil, err
	}

	players := &Players{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), spriteExt) {
			continue
		}
		img, err := openSprite(filepath.Join(seatedDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		players.Seated = append(players.Seated, img)
	}
	if len(players.Seated) == 0 {
		return nil, fmt.Errorf("%w: no seated player sprites in %s", ErrMissingAsset, seatedDir)
	}

	if players.Active, err = openSprite(activePath); err != nil {
		return nil, err
	}
	if players.Dealer, err = openSprite(dealerPath); err != nil {
		return nil, err
	}

	return players, nil
}

// Create creates an empty deck with the asset directory layout.
func Create(libraryPath, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid deck name: %q", name)
	}

	deckPath := filepath.Join(libraryPath, name)
	if _, err := os.Stat(deckPath); err == nil {
		return "", fmt.Errorf("deck already exists: %s", deckPath)
	}

	for _, dir := range deckAssetDirs {
		if err := os.MkdirAll(filepath.Join(deckPath, dir), 0755); err != nil {
			return "", fmt.Errorf("error creating deck directory: %w", err)
		}
	}
	return deckPath, nil
}

// List returns the names of the deck directories in the library that
// contain a card asset directory.
func List(libraryPath string) ([]string, error) {
	entries, err := os.ReadDir(libraryPath)
	if err != nil {
		return nil, err
	}

	var decks []string
	for _, entry := range entries {
		// Resolve symbolic links to deck directories
		entryPath := filepath.Join(libraryPath, entry.Name())
		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(entryPath, CardsDir)); err != nil {
			continue
		}
		decks = append(decks, entry.Name())
	}
	return decks, nil
}

func readDir(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrMissingAsset, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func openSprite(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening sprite %s: %w", path, err)
	}
	return imaging.Clone(img), nil
}

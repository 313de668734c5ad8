package validator

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcanaland/pokerfactory/internal/card"
	"github.com/arcanaland/pokerfactory/internal/deck"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	DeckPath string
	Results  ValidationResults

	// Canvas is the image size sprites must fit in.
	Canvas image.Point
}

func NewValidator(deckPath string) *Validator {
	return &Validator{
		DeckPath: deckPath,
		Results:  ValidationResults{},
		Canvas:   image.Pt(1024, 768),
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	if info, err := os.Stat(v.DeckPath); err != nil || !info.IsDir() {
		return v.Results, fmt.Errorf("deck directory not found: %s", v.DeckPath)
	}

	v.validateCards()
	v.validatePlayers()

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

// validateCards checks that all 52 card sprites exist, decode, and share one size
func (v *Validator) validateCards() {
	cardsDir := filepath.Join(v.DeckPath, deck.CardsDir)
	entries, err := os.ReadDir(cardsDir)
	if os.IsNotExist(err) {
		v.errorf("%s directory not found", deck.CardsDir)
		return
	}
	if err != nil {
		v.errorf("error reading %s directory: %v", deck.CardsDir, err)
		return
	}

	present := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != ".png" {
			v.warnf("ignoring non-PNG file in %s: %s", deck.CardsDir, name)
			continue
		}
		code := strings.TrimSuffix(name, ".png")
		if !card.IsCode(code) {
			v.warnf("unknown card sprite (not a rank+suit code): %s", name)
			continue
		}
		present[code] = true
	}

	var missing []string
	for _, code := range card.Codes {
		if !present[code] {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		v.errorf("missing card sprites: %s", strings.Join(missing, ", "))
	}

	var first image.Point
	var firstCode string
	for _, code := range card.Codes {
		if !present[code] {
			continue
		}
		size, ok := v.checkSprite(filepath.Join(deck.CardsDir, code+".png"))
		if !ok {
			continue
		}
		if firstCode == "" {
			first, firstCode = size, code
		} else if size != first {
			v.warnf("card %s is %dx%d, %s is %dx%d", code, size.X, size.Y, firstCode, first.X, first.Y)
		}
	}
}

// validatePlayers checks the table entity sprites. They are only needed
// when seated players are enabled, so their absence is a warning.
func (v *Validator) validatePlayers() {
	seatedDir := filepath.Join(v.DeckPath, deck.SeatedDir)
	entries, err := os.ReadDir(seatedDir)
	switch {
	case os.IsNotExist(err):
		v.warnf("%s directory not found (required for seated players)", deck.SeatedDir)
	case err != nil:
		v.errorf("error reading %s directory: %v", deck.SeatedDir, err)
	default:
		found := 0
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".png" {
				continue
			}
			found++
			v.checkSprite(filepath.Join(deck.SeatedDir, entry.Name()))
		}
		if found == 0 {
			v.warnf("no seated player sprites in %s (required for seated players)", deck.SeatedDir)
		}
	}

	for _, rel := range []string{deck.ActiveSprite, deck.DealerSprite} {
		if _, err := os.Stat(filepath.Join(v.DeckPath, rel)); os.IsNotExist(err) {
			v.warnf("%s not found (required for active players and the dealer button)", rel)
			continue
		}
		v.checkSprite(rel)
	}
}

// checkSprite decodes the header of a sprite and reports its size.
func (v *Validator) checkSprite(rel string) (image.Point, bool) {
	f, err := os.Open(filepath.Join(v.DeckPath, rel))
	if err != nil {
		v.errorf("error opening %s: %v", rel, err)
		return image.Point{}, false
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		v.errorf("%s is not a valid image: %v", rel, err)
		return image.Point{}, false
	}
	if format != "png" {
		v.errorf("%s is a %s image, expected png", rel, format)
	}

	size := image.Pt(cfg.Width, cfg.Height)
	if size.X > v.Canvas.X || size.Y > v.Canvas.Y {
		v.warnf("%s (%dx%d) is larger than the %dx%d canvas", rel, size.X, size.Y, v.Canvas.X, v.Canvas.Y)
	}
	return size, true
}

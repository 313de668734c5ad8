package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arcanaland/pokerfactory/internal/annotation"
	"github.com/arcanaland/pokerfactory/internal/compose"
	"github.com/arcanaland/pokerfactory/internal/config"
	"github.com/arcanaland/pokerfactory/internal/dataset"
)

// addCompositionFlags registers the flags shared by generate and sample.
// Defaults shown in help are the built-in ones; unset flags fall back to
// the config file.
func addCompositionFlags(fs *pflag.FlagSet) {
	d := config.DefaultGenerate()
	fs.Float64("brightness", d.Brightness, "Brightness variation as a fraction (0-1)")
	fs.Float64("size-variation", d.SizeVariation, "Size variation as a fraction (0-1)")
	fs.Int("cards", d.Cards, "Cards per image")
	fs.Int("spacing", d.Spacing, "Minimum horizontal spacing between cards in pixels")
	fs.Int("width", d.Width, "Canvas width in pixels")
	fs.Int("height", d.Height, "Canvas height in pixels")
	fs.Bool("seated", d.Seated, "Place seated players")
	fs.Bool("active", d.Active, "Place active player markers (requires --seated)")
	fs.Bool("dealer", d.Dealer, "Place the dealer button (requires --seated)")
	fs.String("format", d.Format, "Annotation format ("+strings.Join(annotation.Names(), ", ")+")")
	fs.Uint64("seed", 0, "Random seed for reproducible output (default: random)")
	fs.Bool("open", false, "Open the output directory when done")
}

func addDatasetFlags(fs *pflag.FlagSet) {
	d := config.DefaultGenerate()
	fs.IntP("images", "n", d.Images, "Total number of images")
	fs.Float64("train", d.TrainSplit, "Train split ratio (0-1)")
	fs.Float64("valid", d.ValidSplit, "Valid split ratio (0-1)")
	fs.Float64("test", d.TestSplit, "Test split ratio (0-1)")
	fs.IntP("workers", "j", d.Workers, "Parallel workers")
}

// buildRequest merges the config file with the flags that were set and
// resolves the deck argument.
func buildRequest(cmd *cobra.Command, args []string) (dataset.Request, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return dataset.Request{}, fmt.Errorf("error loading config: %w", err)
	}
	g := cfg.Generate
	fs := cmd.Flags()

	override := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	override("brightness", func() { g.Brightness, _ = fs.GetFloat64("brightness") })
	override("size-variation", func() { g.SizeVariation, _ = fs.GetFloat64("size-variation") })
	override("cards", func() { g.Cards, _ = fs.GetInt("cards") })
	override("spacing", func() { g.Spacing, _ = fs.GetInt("spacing") })
	override("width", func() { g.Width, _ = fs.GetInt("width") })
	override("height", func() { g.Height, _ = fs.GetInt("height") })
	override("seated", func() { g.Seated, _ = fs.GetBool("seated") })
	override("active", func() { g.Active, _ = fs.GetBool("active") })
	override("dealer", func() { g.Dealer, _ = fs.GetBool("dealer") })
	override("format", func() { g.Format, _ = fs.GetString("format") })
	if fs.Lookup("images") != nil {
		override("images", func() { g.Images, _ = fs.GetInt("images") })
		override("train", func() { g.TrainSplit, _ = fs.GetFloat64("train") })
		override("valid", func() { g.ValidSplit, _ = fs.GetFloat64("valid") })
		override("test", func() { g.TestSplit, _ = fs.GetFloat64("test") })
		override("workers", func() { g.Workers, _ = fs.GetInt("workers") })
	}

	if (g.Active || g.Dealer) && !g.Seated {
		logger.Warn("active players and dealer button require seated players; skipping them")
	}

	var deckName string
	if len(args) > 0 {
		deckName = args[0]
	}
	deckPath, err := config.ResolveDeck(deckName)
	if err != nil {
		return dataset.Request{}, err
	}

	req := dataset.Request{
		DeckPath: deckPath,
		Format:   g.Format,
		Images:   g.Images,
		Ratios:   dataset.Ratios{Train: g.TrainSplit, Valid: g.ValidSplit, Test: g.TestSplit},
		Options: compose.Options{
			Jitter:   compose.Jitter{Brightness: g.Brightness, Size: g.SizeVariation},
			Cards:    g.Cards,
			Spacing:  g.Spacing,
			Width:    g.Width,
			Height:   g.Height,
			Features: g.Features.Normalize(),
		},
		Workers:     g.Workers,
		DatasetRoot: g.DatasetRoot,
	}
	if fs.Changed("seed") {
		seed, _ := fs.GetUint64("seed")
		req.Seed = &seed
	}
	return req, nil
}

// openIfRequested opens dir in the platform file browser when --open is set.
func openIfRequested(cmd *cobra.Command, dir string) {
	if open, _ := cmd.Flags().GetBool("open"); !open {
		return
	}
	if err := browser.OpenFile(dir); err != nil {
		logger.Warn("could not open output directory", "dir", dir, "error", err)
	}
}

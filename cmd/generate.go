package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	colorize "github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/arcanaland/pokerfactory/internal/dataset"
)

var generateCmd = &cobra.Command{
	Use:   "generate [deck]",
	Short: "Generate a train/valid/test dataset from a deck",
	Long: `Generate renders a dataset of synthetic table images from a deck and writes
them with their labels to <deck>/generated_datasets/<deck>_<format>_<images>/,
followed by the format's class manifest.

The deck is looked up in your deck library (XDG_DATA_HOME/pokerfactory/decks)
or used as a path. If no deck is given, the default deck from your config is used.
Unset flags take their values from the [generate] table of the config file.

Examples:
  pokerfactory generate red-deck -n 500
  pokerfactory generate ./decks/red --train 0.8 --valid 0.1 --test 0.1 --dealer=false
  pokerfactory generate --seed 42 --workers 4`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest(cmd, args)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var (
			once sync.Once
			bar  *progressbar.ProgressBar
		)
		gen := &dataset.Generator{
			Logger: logger,
			Progress: func(_, total int) {
				once.Do(func() { bar = progressbar.Default(int64(total), "generating") })
				_ = bar.Add(1)
			},
		}

		res, err := gen.Run(ctx, req)
		if err != nil {
			return fmt.Errorf("error generating dataset: %w", err)
		}

		fmt.Println()
		fmt.Println(colorize.GreenString("Dataset written to: ") + res.Dir)
		for _, s := range dataset.Splits {
			fmt.Printf("  %-6s %s\n", s, colorize.HiWhiteString("%d images", res.Counts[s]))
		}
		fmt.Println(colorize.CyanString("Manifest: ") + res.ManifestPath)

		openIfRequested(cmd, res.Dir)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)

	addCompositionFlags(generateCmd.Flags())
	addDatasetFlags(generateCmd.Flags())
}

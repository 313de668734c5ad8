package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/pokerfactory/internal/config"
	"github.com/arcanaland/pokerfactory/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [deck]",
	Short: "Validate a sprite deck directory",
	Long: `Validate checks that a deck has the asset layout pokerfactory expects:
all 52 card sprites under assets/cards/<CODE>.png, seated player sprites under
assets/players/seated/, assets/players/active/PlayerActive.png and
assets/table/DealerButton.png. Sprites must be decodable PNG images that fit
the configured canvas.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var deckName string
		if len(args) > 0 {
			deckName = args[0]
		}
		deckPath, err := config.ResolveDeck(deckName)
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		// Create validator and run validation
		v := validator.NewValidator(deckPath)
		v.Canvas.X, v.Canvas.Y = cfg.Generate.Width, cfg.Generate.Height
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("%s Deck '%s' is ready for generation.\n", colorize.GreenString("✅"), deckPath)
		} else {
			fmt.Fprintf(os.Stdout, "%s Deck '%s' has %d validation errors:\n",
				colorize.RedString("❌"), deckPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Println(colorize.YellowString("\nWarnings:"))
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

package cmd

import (
	"fmt"
	"path/filepath"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/pokerfactory/internal/dataset"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [deck]",
	Short: "Render a single sample image to check deck and settings",
	Long: `Sample renders one image with its labels into
<deck>/generated_datasets/<deck>_<format>_sample/ using the same settings
as generate. Use --show to preview it in the terminal with its bounding boxes.

Examples:
  pokerfactory sample red-deck --show
  pokerfactory sample --cards 7 --size-variation 0.4 --seed 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest(cmd, args)
		if err != nil {
			return err
		}

		gen := &dataset.Generator{Logger: logger}
		imagePath, labelPath, err := gen.Sample(req)
		if err != nil {
			return fmt.Errorf("error generating sample: %w", err)
		}

		fmt.Println(colorize.GreenString("Sample image: ") + imagePath)
		fmt.Println(colorize.GreenString("Labels:       ") + labelPath)

		if show, _ := cmd.Flags().GetBool("show"); show {
			if err := showImage(imagePath, labelPath); err != nil {
				return err
			}
		}

		openIfRequested(cmd, filepath.Dir(imagePath))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sampleCmd)

	addCompositionFlags(sampleCmd.Flags())
	sampleCmd.Flags().Bool("show", false, "Preview the sample in the terminal")
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/pokerfactory/internal/annotation"
	"github.com/arcanaland/pokerfactory/internal/card"
	"github.com/arcanaland/pokerfactory/internal/preview"
)

var showCmd = &cobra.Command{
	Use:   "show [image]",
	Short: "Preview a generated image and its annotations in the terminal",
	Long: `Show renders a generated image as ANSI art with its bounding boxes outlined,
followed by the list of annotations.

The label file is found next to the image (sample_image.png -> sample_label.txt)
or in the sibling labels/ directory of a dataset split. Use --labels to point
at it explicitly.

Examples:
  pokerfactory show ./red/generated_datasets/red_yolov8_20/train/images/train_3.png
  pokerfactory show sample_image.png --labels sample_label.txt --width 120`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath := args[0]
		labelPath, _ := cmd.Flags().GetString("labels")
		if labelPath == "" {
			labelPath = findLabelFile(imagePath)
		}

		width, _ := cmd.Flags().GetInt("width")
		return showImageWidth(imagePath, labelPath, width)
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("labels", "l", "", "Path to the label file")
	showCmd.Flags().IntP("width", "w", 0, "Preview width in characters (default: terminal width)")
}

// findLabelFile guesses the label file belonging to a generated image.
func findLabelFile(imagePath string) string {
	dir, base := filepath.Split(imagePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	candidates := []string{
		filepath.Join(dir, "..", "labels", stem+".txt"),
		filepath.Join(dir, strings.Replace(stem, "_image", "_label", 1)+".txt"),
		filepath.Join(dir, stem+".txt"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// classNames returns the class list of the dataset an image belongs to.
// Outside a dataset only the card classes are known.
func classNames(imagePath string) []string {
	manifest := filepath.Join(filepath.Dir(imagePath), "..", "..", "data.yaml")
	if m, err := annotation.ReadYOLOManifest(manifest); err == nil {
		return m.Names
	}
	return card.Codes[:]
}

func showImage(imagePath, labelPath string) error {
	return showImageWidth(imagePath, labelPath, 0)
}

// showImageWidth displays the image with its annotations
func showImageWidth(imagePath, labelPath string, width int) error {
	img, err := imaging.Open(imagePath)
	if err != nil {
		return fmt.Errorf("error loading image: %w", err)
	}

	var placements []annotation.Placement
	if labelPath != "" {
		placements, err = annotation.ReadLabels(labelPath)
		if err != nil {
			return fmt.Errorf("error loading labels: %w", err)
		}
	}

	if width <= 0 {
		// Get terminal width
		termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || termWidth <= 0 {
			termWidth = 80 // Default if we can't get terminal width
		}
		width = termWidth - 4
	}

	art := preview.Render(preview.Outline(img, placements), width)

	fmt.Println()
	for _, line := range strings.Split(strings.TrimSuffix(art, "\n"), "\n") {
		fmt.Println("  " + line)
	}
	fmt.Println()

	size := img.Bounds().Size()
	fmt.Println(colorize.CyanString("Image:  ") + colorize.HiWhiteString(imagePath))
	fmt.Println(colorize.CyanString("Size:   ") + colorize.HiWhiteString("%dx%d", size.X, size.Y))
	if labelPath == "" {
		fmt.Println(colorize.YellowString("No label file found."))
		return nil
	}
	fmt.Println(colorize.CyanString("Labels: ") + colorize.HiWhiteString(labelPath))
	fmt.Println()

	names := classNames(imagePath)
	for i, p := range placements {
		name := fmt.Sprintf("class %d", p.Class)
		if p.Class >= 0 && p.Class < len(names) {
			name = names[p.Class]
		}
		r := p.Rect(size)
		fmt.Printf("  %2d. %-13s %s\n", i+1, colorize.HiWhiteString(name),
			colorize.WhiteString("at (%d,%d) %dx%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy()))
	}
	fmt.Println()

	return nil
}

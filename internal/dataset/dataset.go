// Package dataset generates complete train/valid/test datasets.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/pokerfactory/internal/annotation"
	"github.com/arcanaland/pokerfactory/internal/compose"
	"github.com/arcanaland/pokerfactory/internal/deck"
)

// ErrInvalidRequest is returned for requests that cannot produce a dataset.
var ErrInvalidRequest = errors.New("invalid dataset request")

// Split is a dataset partition.
type Split string

const (
	Train Split = "train"
	Valid Split = "valid"
	Test  Split = "test"
)

// Splits lists the partitions in generation order.
var Splits = []Split{Train, Valid, Test}

const (
	imagesDir = "images"
	labelsDir = "labels"
)

// Ratios are the fractions of the total assigned to each split. They are
// expected to sum to about 1 but this is not enforced.
type Ratios struct {
	Train, Valid, Test float64
}

func (r Ratios) of(s Split) float64 {
	switch s {
	case Train:
		return r.Train
	case Valid:
		return r.Valid
	default:
		return r.Test
	}
}

// SplitCounts returns floor(ratio × total) for every split. The counts may
// sum to slightly less than total.
func SplitCounts(total int, r Ratios) map[Split]int {
	counts := make(map[Split]int, len(Splits))
	for _, s := range Splits {
		// Tolerate products like 0.29*100 = 28.999999999999996.
		v := r.of(s) * float64(total)
		counts[s] = int(math.Floor(v + 1e-9))
	}
	return counts
}

// Request describes one dataset run.
type Request struct {
	DeckPath string
	Format   string
	Images   int
	Ratios   Ratios
	Options  compose.Options

	// Workers bounds concurrent image generation; zero means one per CPU.
	Workers int
	// Seed makes a run reproducible; nil draws fresh randomness.
	Seed *uint64
	// DatasetRoot prefixes the run name in the manifest's path field.
	DatasetRoot string
}

func (r Request) validate() error {
	if r.Images < 0 {
		return fmt.Errorf("%w: image count %d", ErrInvalidRequest, r.Images)
	}
	for _, v := range []float64{r.Ratios.Train, r.Ratios.Valid, r.Ratios.Test} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: split ratio %g outside [0,1]", ErrInvalidRequest, v)
		}
	}
	if r.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidRequest, r.Workers)
	}
	return nil
}

// Unit is the work of rendering one image.
type Unit struct {
	Split     Split
	ImagePath string
	LabelPath string
	Seed      [2]uint64
}

// Result summarizes a finished run.
type Result struct {
	Dir          string
	Counts       map[Split]int
	ManifestPath string
}

// Generator runs dataset requests.
type Generator struct {
	Logger *slog.Logger
	// Progress, if set, is called after each finished unit with the number
	// of finished units and the total. It may be called concurrently.
	Progress func(done, total int)
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return g.Logger
}

// RunName returns the output directory name of a run.
func RunName(deckName, format string, images int) string {
	return fmt.Sprintf("%s_%s_%d", deckName, format, images)
}

// Run generates every image of the request, then writes the manifest.
// Assets are loaded before anything is written. The first failing unit
// cancels the remaining ones and fails the run.
func (g *Generator) Run(ctx context.Context, req Request) (*Result, error) {
	log := g.logger()

	if err := req.validate(); err != nil {
		return nil, err
	}
	format, err := annotation.Lookup(req.Format)
	if err != nil {
		return nil, err
	}

	d, err := deck.Load(req.DeckPath, req.Options.Features, log)
	if err != nil {
		return nil, err
	}
	composer, err := compose.NewComposer(d, req.Options)
	if err != nil {
		return nil, err
	}

	runName := RunName(d.Name, format.Name(), req.Images)
	outDir := filepath.Join(req.DeckPath, deck.GeneratedDir, runName)
	if err := makeDirs(outDir); err != nil {
		return nil, err
	}

	counts := SplitCounts(req.Images, req.Ratios)
	units := buildUnits(outDir, counts, req.Seed)
	log.Info("generating dataset", "dir", outDir, "images", len(units),
		"train", counts[Train], "valid", counts[Valid], "test", counts[Test])

	if err := g.runUnits(ctx, composer, units, req.Workers); err != nil {
		return nil, err
	}

	ds := annotation.Dataset{
		Dir:     outDir,
		Root:    path.Join(filepath.ToSlash(req.DatasetRoot), runName),
		Catalog: composer.Catalog(),
	}
	if err := format.WriteManifest(ds); err != nil {
		return nil, err
	}

	manifest := filepath.Join(outDir, format.ManifestFile())
	log.Info("dataset written", "dir", outDir, "manifest", manifest)
	return &Result{Dir: outDir, Counts: counts, ManifestPath: manifest}, nil
}

func (g *Generator) runUnits(ctx context.Context, composer *compose.Composer, units []Unit, workers int) error {
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	var done atomic.Int64
	total := len(units)
	for _, u := range units {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(u.Seed[0], u.Seed[1]))
			if _, err := composer.Render(u.ImagePath, u.LabelPath, rng); err != nil {
				return fmt.Errorf("generate %s: %w", u.ImagePath, err)
			}
			n := done.Add(1)
			g.logger().Debug("image generated", "image", u.ImagePath)
			if g.Progress != nil {
				g.Progress(int(n), total)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	// Scheduling stopped early because the parent context ended.
	return ctx.Err()
}

func makeDirs(outDir string) error {
	for _, s := range Splits {
		for _, role := range []string{imagesDir, labelsDir} {
			if err := os.MkdirAll(filepath.Join(outDir, string(s), role), 0755); err != nil {
				return fmt.Errorf("error creating output directory: %w", err)
			}
		}
	}
	return nil
}

func buildUnits(outDir string, counts map[Split]int, seed *uint64) []Unit {
	var units []Unit
	for _, s := range Splits {
		for i := 0; i < counts[s]; i++ {
			name := fmt.Sprintf("%s_%d", s, i)
			units = append(units, Unit{
				Split:     s,
				ImagePath: filepath.Join(outDir, string(s), imagesDir, name+".png"),
				LabelPath: filepath.Join(outDir, string(s), labelsDir, name+".txt"),
			})
		}
	}

	for i := range units {
		if seed != nil {
			units[i].Seed = [2]uint64{*seed, uint64(i)}
		} else {
			units[i].Seed = [2]uint64{rand.Uint64(), rand.Uint64()}
		}
	}
	return units
}

// Sample renders a single preview image and its labels into the deck's
// sample directory. It returns the image and label paths.
func (g *Generator) Sample(req Request) (string, string, error) {
	log := g.logger()

	format, err := annotation.Lookup(req.Format)
	if err != nil {
		return "", "", err
	}
	d, err := deck.Load(req.DeckPath, req.Options.Features, log)
	if err != nil {
		return "", "", err
	}
	composer, err := compose.NewComposer(d, req.Options)
	if err != nil {
		return "", "", err
	}

	outDir := filepath.Join(req.DeckPath, deck.GeneratedDir, fmt.Sprintf("%s_%s_sample", d.Name, format.Name()))
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", "", fmt.Errorf("error creating output directory: %w", err)
	}

	var rng *rand.Rand
	if req.Seed != nil {
		rng = rand.New(rand.NewPCG(*req.Seed, 0))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	imagePath := filepath.Join(outDir, "sample_image.png")
	labelPath := filepath.Join(outDir, "sample_label.txt")
	comp, err := composer.Render(imagePath, labelPath, rng)
	if err != nil {
		return "", "", err
	}

	log.Info("sample written", "image", imagePath, "placements", len(comp.Placements))
	return imagePath, labelPath, nil
}

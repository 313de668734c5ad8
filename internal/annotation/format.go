package annotation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/arcanaland/pokerfactory/internal/card"
)

// ErrUnknownFormat is returned by Lookup for an unregistered format name.
var ErrUnknownFormat = errors.New("unknown annotation format")

// Dataset describes a finished dataset run for manifest writers.
type Dataset struct {
	// Dir is the run's output directory.
	Dir string
	// Root is the dataset path recorded in the manifest.
	Root    string
	Catalog *card.Catalog
}

// Format writes the dataset-level metadata of one detector family.
type Format interface {
	Name() string
	// ManifestFile is the manifest's file name inside the run directory.
	ManifestFile() string
	WriteManifest(ds Dataset) error
}

var formats = map[string]Format{}

func register(f Format) {
	formats[f.Name()] = f
}

func init() {
	register(yolo{name: "yolov8"})
	register(yolo{name: "yolov5"})
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	f, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownFormat, name, Names())
	}
	return f, nil
}

// Names returns the registered format names, sorted.
func Names() []string {
	names := make([]string, 0, len(formats))
	for n := range formats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

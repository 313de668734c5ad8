package annotation

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// YOLOManifest is the data.yaml read by YOLO training pipelines.
type YOLOManifest struct {
	Path  string   `yaml:"path"`
	Train string   `yaml:"train"`
	Val   string   `yaml:"val"`
	Test  string   `yaml:"test"`
	NC    int      `yaml:"nc"`
	Names []string `yaml:"names,flow"`
}

// yolo serves every YOLO generation; they share the label and manifest layout.
type yolo struct {
	name string
}

func (y yolo) Name() string { return y.name }

func (yolo) ManifestFile() string { return "data.yaml" }

func (y yolo) WriteManifest(ds Dataset) error {
	names := ds.Catalog.Names()
	m := YOLOManifest{
		Path:  filepath.ToSlash(ds.Root),
		Train: "../train/images",
		Val:   "../valid/images",
		Test:  "../test/images",
		NC:    len(names),
		Names: names,
	}

	f, err := os.Create(filepath.Join(ds.Dir, y.ManifestFile()))
	if err != nil {
		return fmt.Errorf("error creating manifest: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("error encoding manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("error encoding manifest: %w", err)
	}
	return f.Close()
}

// ReadYOLOManifest reads a data.yaml file.
func ReadYOLOManifest(path string) (*YOLOManifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m YOLOManifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("error parsing manifest: %w", err)
	}
	return &m, nil
}

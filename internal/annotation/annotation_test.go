package annotation_test

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arcanaland/pokerfactory/internal/annotation"
	"github.com/arcanaland/pokerfactory/internal/card"
)

func TestNewPlacement(t *testing.T) {
	canvas := image.Pt(1000, 500)

	tests := []struct {
		name string
		rect image.Rectangle
		want annotation.Placement
	}{
		{
			name: "inside",
			rect: image.Rect(100, 100, 300, 200),
			want: annotation.Placement{Class: 7, CenterX: 0.2, CenterY: 0.3, Width: 0.2, Height: 0.2},
		},
		{
			name: "clipped left and top",
			rect: image.Rect(-100, -50, 100, 50),
			want: annotation.Placement{Class: 7, CenterX: 0.05, CenterY: 0.05, Width: 0.1, Height: 0.1},
		},
		{
			name: "fully outside",
			rect: image.Rect(1100, 100, 1200, 200),
			want: annotation.Placement{Class: 7, CenterX: 1, CenterY: 0.2, Width: 0, Height: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := annotation.NewPlacement(7, tt.rect, canvas)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlacementString(t *testing.T) {
	p := annotation.Placement{Class: 52, CenterX: 0.5, CenterY: 0.25, Width: 0.125, Height: 1}
	if got, want := p.String(), "52 0.500000 0.250000 0.125000 1.000000"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	parsed, err := annotation.ParsePlacement(p.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != p {
		t.Errorf("parsed %+v, want %+v", parsed, p)
	}
}

func TestParsePlacement_Invalid(t *testing.T) {
	for _, line := range []string{"", "1 2 3", "x 0 0 0 0", "1 0 0 0 y"} {
		if _, err := annotation.ParsePlacement(line); err == nil {
			t.Errorf("expected error for %q", line)
		}
	}
}

func TestWriteAndReadLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	in := []annotation.Placement{
		{Class: 3, CenterX: 0.1, CenterY: 0.2, Width: 0.3, Height: 0.4},
		{Class: 54, CenterX: 0.5, CenterY: 0.5, Width: 0.05, Height: 0.05},
	}

	if err := annotation.WriteLabels(path, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "3 0.100000 0.200000 0.300000 0.400000\n54 0.500000 0.500000 0.050000 0.050000"
	if string(raw) != want {
		t.Errorf("got %q, want %q", raw, want)
	}

	out, err := annotation.ReadLabels(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[1].Class != 54 {
		t.Errorf("unexpected placements %+v", out)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"yolov8", "yolov5"} {
		f, err := annotation.Lookup(name)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if f.Name() != name {
			t.Errorf("expected %s, got %s", name, f.Name())
		}
	}

	if _, err := annotation.Lookup("coco"); !errors.Is(err, annotation.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestYOLOManifest(t *testing.T) {
	dir := t.TempDir()
	f, err := annotation.Lookup("yolov8")
	if err != nil {
		t.Fatal(err)
	}

	catalog := card.NewCatalog(card.Features{Seated: true, Dealer: true})
	err = f.WriteManifest(annotation.Dataset{Dir: dir, Root: "../datasets/red_yolov8_20", Catalog: catalog})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "data.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "names: [10C, 10D,") {
		t.Errorf("expected names in flow style, got:\n%s", raw)
	}
	m, err := annotation.ReadYOLOManifest(filepath.Join(dir, "data.yaml"))
	if err != nil {
		t.Fatalf("manifest is not valid YAML: %v", err)
	}

	if m.Train != "../train/images" || m.Val != "../valid/images" || m.Test != "../test/images" {
		t.Errorf("unexpected split paths %+v", m)
	}
	if m.NC != 54 || len(m.Names) != 54 {
		t.Fatalf("expected 54 classes, got nc=%d names=%d", m.NC, len(m.Names))
	}
	if m.Names[52] != card.PlayerSeated || m.Names[53] != card.DealerButton {
		t.Errorf("unexpected optional classes %v", m.Names[52:])
	}
	if m.Path != "../datasets/red_yolov8_20" {
		t.Errorf("unexpected path %q", m.Path)
	}
}

// Package compose renders synthetic table images from deck sprites and
// records the bounding box of every placed sprite.
package compose

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/arcanaland/pokerfactory/internal/annotation"
	"github.com/arcanaland/pokerfactory/internal/card"
	"github.com/arcanaland/pokerfactory/internal/deck"
)

var (
	ErrInvalidOptions = errors.New("invalid composition options")
	ErrTooManyCards   = errors.New("card count exceeds available card sprites")
)

const (
	minSeated    = 2
	maxSeated    = 6
	spacingExtra = 10
	activeMargin = 20
)

// Options configure a composition.
type Options struct {
	Jitter
	Cards   int
	Spacing int
	Width   int
	Height  int

	Features card.Features
}

// DefaultOptions returns the options of a 1024×768 five-card table with
// every entity enabled.
func DefaultOptions() Options {
	return Options{
		Jitter:   Jitter{Brightness: 0.15, Size: 0.2},
		Cards:    5,
		Spacing:  40,
		Width:    1024,
		Height:   768,
		Features: card.Features{Seated: true, Active: true, Dealer: true},
	}
}

func (o Options) validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidOptions, o.Width, o.Height)
	case o.Cards < 0:
		return fmt.Errorf("%w: card count %d", ErrInvalidOptions, o.Cards)
	case o.Spacing < 0:
		return fmt.Errorf("%w: spacing %d", ErrInvalidOptions, o.Spacing)
	case o.Brightness < 0 || o.Brightness > 1:
		return fmt.Errorf("%w: brightness range %g", ErrInvalidOptions, o.Brightness)
	case o.Size < 0 || o.Size > 1:
		return fmt.Errorf("%w: size variation %g", ErrInvalidOptions, o.Size)
	}
	return nil
}

// Seat is a seated player realized on a canvas.
type Seat struct {
	Slot Slot
	At   image.Point
	Size image.Point
}

// Composition is one rendered image with its placements in placement
// order: cards, seated players, active players, dealer button.
type Composition struct {
	Image      *image.NRGBA
	Placements []annotation.Placement
	Seats      []Seat
}

// Composer renders compositions of one deck under fixed options. It is
// safe for concurrent use; each call brings its own RNG.
type Composer struct {
	deck    *deck.Deck
	opts    Options
	codes   []string
	catalog *card.Catalog

	seatedClass, activeClass, dealerClass int
}

// NewComposer validates opts against the deck. Features are normalized, so
// active players and the dealer button are dropped when seated players are
// disabled.
func NewComposer(d *deck.Deck, opts Options) (*Composer, error) {
	opts.Features = opts.Features.Normalize()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	codes := d.CardCodes()
	if opts.Cards > len(codes) {
		return nil, fmt.Errorf("%w: requested %d, deck has %d", ErrTooManyCards, opts.Cards, len(codes))
	}
	if opts.Features.Seated && d.Players == nil {
		return nil, fmt.Errorf("%w: deck %s was loaded without player sprites", deck.ErrMissingAsset, d.Name)
	}

	c := &Composer{
		deck:    d,
		opts:    opts,
		codes:   codes,
		catalog: card.NewCatalog(opts.Features),
	}
	c.seatedClass, _ = c.catalog.Index(card.PlayerSeated)
	c.activeClass, _ = c.catalog.Index(card.PlayerActive)
	c.dealerClass, _ = c.catalog.Index(card.DealerButton)
	return c, nil
}

// Catalog returns the class catalog used for the placements.
func (c *Composer) Catalog() *card.Catalog { return c.catalog }

// Options returns the normalized options.
func (c *Composer) Options() Options { return c.opts }

// Compose renders one image.
func (c *Composer) Compose(rng RNG) *Composition {
	w, h := c.opts.Width, c.opts.Height
	comp := &Composition{Image: Background(w, h, rng)}

	c.placeCards(comp, rng)

	f := c.opts.Features
	if !f.Seated {
		return comp
	}
	c.placeSeated(comp, rng)
	if f.Active {
		c.placeActive(comp, rng)
	}
	if f.Dealer {
		c.placeDealer(comp, rng)
	}
	return comp
}

// Render composes one image and writes it as PNG to imagePath with its
// labels in labelPath.
func (c *Composer) Render(imagePath, labelPath string, rng RNG) (*Composition, error) {
	comp := c.Compose(rng)
	if err := imaging.Save(comp.Image, imagePath); err != nil {
		return nil, fmt.Errorf("error writing image: %w", err)
	}
	if err := annotation.WriteLabels(labelPath, comp.Placements); err != nil {
		return nil, err
	}
	return comp, nil
}

// drawCards picks n distinct card codes with a partial Fisher-Yates shuffle.
func drawCards(codes []string, n int, rng RNG) []string {
	pool := make([]string, len(codes))
	copy(pool, codes)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

func (c *Composer) placeCards(comp *Composition, rng RNG) {
	n := c.opts.Cards
	gap := c.opts.Spacing + spacingExtra

	for i, code := range drawCards(c.codes, n, rng) {
		img := c.opts.Jitter.Apply(c.deck.Cards[code], rng)
		cw, ch := img.Bounds().Dx(), img.Bounds().Dy()

		x := floorDiv(c.opts.Width-n*(cw+gap), 2) + i*(cw+gap)
		y := floorDiv(c.opts.Height-ch, 2)

		class, _ := card.Index(code)
		c.paste(comp, img, image.Pt(x, y), class)
	}
}

func (c *Composer) placeSeated(comp *Composition, rng RNG) {
	count := minSeated + rng.IntN(maxSeated-minSeated+1)
	anchors := Anchors(c.opts.Width, c.opts.Height)
	rng.Shuffle(len(anchors), func(i, j int) { anchors[i], anchors[j] = anchors[j], anchors[i] })

	seated := c.deck.Players.Seated
	for i, a := range anchors[:count] {
		img := c.opts.Jitter.Apply(seated[i%len(seated)], rng)
		size := img.Bounds().Size()

		c.paste(comp, img, a.At.Sub(size.Div(2)), c.seatedClass)
		comp.Seats = append(comp.Seats, Seat{Slot: a.Slot, At: a.At, Size: size})
	}
}

func (c *Composer) placeActive(comp *Composition, rng RNG) {
	for _, s := range comp.Seats {
		if rng.IntN(2) == 0 {
			continue
		}
		img := c.opts.Jitter.Apply(c.deck.Players.Active, rng)
		size := img.Bounds().Size()

		x := s.At.X - size.X/2
		y := s.At.Y - size.Y - s.Size.Y/2 - activeMargin
		c.paste(comp, img, image.Pt(x, y), c.activeClass)
	}
}

func (c *Composer) placeDealer(comp *Composition, rng RNG) {
	s := comp.Seats[rng.IntN(len(comp.Seats))]
	at := dealerPosition(s.Slot, s.At, s.Size)

	img := c.opts.Jitter.Apply(c.deck.Players.Dealer, rng)
	c.paste(comp, img, at.Sub(img.Bounds().Size().Div(2)), c.dealerClass)
}

// paste alpha-composites img with its top-left corner at pt and records
// the placement.
func (c *Composer) paste(comp *Composition, img *image.NRGBA, pt image.Point, class int) {
	comp.Image = imaging.Overlay(comp.Image, img, pt, 1.0)

	rect := image.Rectangle{Min: pt, Max: pt.Add(img.Bounds().Size())}
	canvas := image.Pt(c.opts.Width, c.opts.Height)
	comp.Placements = append(comp.Placements, annotation.NewPlacement(class, rect, canvas))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

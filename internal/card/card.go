package card

import "fmt"

// Codes lists the 52 card identities in canonical class order.
// A card's class index is its position in this table.
var Codes = [...]string{
	"10C", "10D", "10H", "10S", "2C", "2D", "2H", "2S", "3C", "3D", "3H", "3S", "4C", "4D", "4H", "4S",
	"5C", "5D", "5H", "5S", "6C", "6D", "6H", "6S", "7C", "7D", "7H", "7S", "8C", "8D", "8H", "8S",
	"9C", "9D", "9H", "9S", "AC", "AD", "AH", "AS", "JC", "JD", "JH", "JS", "KC", "KD", "KH", "KS",
	"QC", "QD", "QH", "QS",
}

// Labels of the optional entity classes
const (
	PlayerSeated = "PlayerSeated"
	PlayerActive = "PlayerActive"
	DealerButton = "DealerButton"
)

var codeIndex = func() map[string]int {
	m := make(map[string]int, len(Codes))
	for i, c := range Codes {
		m[c] = i
	}
	return m
}()

// Index returns the class index of a card code.
func Index(code string) (int, bool) {
	i, ok := codeIndex[code]
	return i, ok
}

// IsCode reports whether code names one of the 52 cards.
func IsCode(code string) bool {
	_, ok := codeIndex[code]
	return ok
}

// Features are the table entity toggles of a run.
type Features struct {
	Seated bool `toml:"seated_players"`
	Active bool `toml:"active_players"`
	Dealer bool `toml:"dealer_button"`
}

// Normalize clears Active and Dealer when Seated is disabled: both are
// anchored to a seated player's slot.
func (f Features) Normalize() Features {
	if !f.Seated {
		f.Active = false
		f.Dealer = false
	}
	return f
}

// Catalog is the ordered list of class labels for one run.
type Catalog struct {
	names []string
	index map[string]int
}

// NewCatalog builds the class catalog for a set of features: the 52 cards,
// then PlayerSeated, PlayerActive and DealerButton for those enabled.
// Features are normalized first.
func NewCatalog(f Features) *Catalog {
	f = f.Normalize()

	names := make([]string, 0, len(Codes)+3)
	names = append(names, Codes[:]...)
	if f.Seated {
		names = append(names, PlayerSeated)
	}
	if f.Active {
		names = append(names, PlayerActive)
	}
	if f.Dealer {
		names = append(names, DealerButton)
	}

	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	return &Catalog{names: names, index: index}
}

// Names returns a copy of the ordered label list.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of classes.
func (c *Catalog) Len() int { return len(c.names) }

// Index returns the class index of a label, or false if the label is not
// part of this catalog.
func (c *Catalog) Index(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// MustIndex is Index for labels the caller knows are present.
func (c *Catalog) MustIndex(name string) int {
	i, ok := c.index[name]
	if !ok {
		panic(fmt.Sprintf("card: class %q not in catalog", name))
	}
	return i
}

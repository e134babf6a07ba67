// Package locations holds the fixed list of places a forecast can be
// requested for.
package locations

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"vedur/internal/types"
)

const (
	// CurrentSlug is reserved for the search by the browser's position
	CurrentSlug = "current"

	// CurrentTitle labels the location derived from geolocation
	CurrentTitle = "Núverandi staðsetning"
)

var (
	ErrNotFound      = errors.New("location not found")
	ErrDuplicateSlug = errors.New("duplicate location slug")
	ErrReservedSlug  = errors.New("location slug is reserved")
)

var validate = validator.New()

// Defaults is the list of locations served when none are configured
var Defaults = []types.Location{
	{Title: "Reykjavík", Latitude: 64.1355, Longitude: -21.8954},
	{Title: "Akureyri", Latitude: 65.6835, Longitude: -18.0878},
	{Title: "New York", Latitude: 40.7128, Longitude: -74.006},
	{Title: "Tokyo", Latitude: 35.6764, Longitude: 139.65},
	{Title: "Sydney", Latitude: -33.8688, Longitude: 151.2093},
}

// Entry is a catalog location together with its URL slug
type Entry struct {
	Slug string `json:"slug"`
	types.Location
}

// Catalog is an immutable, ordered set of locations addressable by slug
type Catalog struct {
	entries []Entry
	bySlug  map[string]int
}

// NewCatalog validates locs and builds a catalog keeping their order
func NewCatalog(locs []types.Location) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(locs)),
		bySlug:  make(map[string]int, len(locs)),
	}

	for _, loc := range locs {
		if err := Validate(loc); err != nil {
			return nil, err
		}

		slug := Slug(loc.Title)
		if slug == "" {
			return nil, fmt.Errorf("location %q: title has no usable characters", loc.Title)
		}
		if slug == CurrentSlug {
			return nil, fmt.Errorf("location %q: %w", loc.Title, ErrReservedSlug)
		}
		if _, exists := c.bySlug[slug]; exists {
			return nil, fmt.Errorf("location %q: %w: %s", loc.Title, ErrDuplicateSlug, slug)
		}

		c.bySlug[slug] = len(c.entries)
		c.entries = append(c.entries, Entry{Slug: slug, Location: loc})
	}

	return c, nil
}

// All returns the entries in catalog order
func (c *Catalog) All() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup returns the entry for slug
func (c *Catalog) Lookup(slug string) (Entry, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return c.entries[i], nil
}

// Current builds the synthetic location for the browser's position
func Current(coords types.Coords) types.Location {
	return types.NewLocation(CurrentTitle, coords)
}

// Validate checks that loc has a title and coordinates in range
func Validate(loc types.Location) error {
	if err := validate.Struct(loc); err != nil {
		return fmt.Errorf("invalid location %q: %w", loc.Title, err)
	}
	return nil
}

// ValidateCoords checks that c is within latitude and longitude range
func ValidateCoords(c types.Coords) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid coordinates (%v, %v): %w", c.Latitude, c.Longitude, err)
	}
	return nil
}

// Icelandic letters that have no canonical decomposition
var letterReplacer = strings.NewReplacer(
	"ð", "d", "Ð", "d",
	"þ", "th", "Þ", "th",
	"æ", "ae", "Æ", "ae",
	"ö", "o", "Ö", "o",
	"ø", "o", "Ø", "o",
)

// Slug turns a title into a lowercase ASCII identifier, e.g.
// "Reykjavík" -> "reykjavik", "New York" -> "new-york".
func Slug(title string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		letterReplacer.Replace(title),
	)
	if err != nil {
		folded = title
	}

	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sb.WriteRune(r)
			dash = false
		case sb.Len() > 0 && !dash:
			sb.WriteByte('-')
			dash = true
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

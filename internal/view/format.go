package view

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// Date and time layouts per supported locale, 24-hour clock, no comma.
// The first entry is the fallback for unmatched locales.
var (
	supportedLocales = []language.Tag{
		language.MustParse("is-IS"),
		language.AmericanEnglish,
		language.BritishEnglish,
		language.German,
		language.Danish,
		language.MustParse("nb"),
		language.Swedish,
	}

	localeLayouts = []string{
		"02.01.2006 15:04",
		"01/02/2006 15:04",
		"02/01/2006 15:04",
		"02.01.2006 15:04",
		"02.01.2006 15:04",
		"02.01.2006 15:04",
		"2006-01-02 15:04",
	}

	localeMatcher = language.NewMatcher(supportedLocales)
)

// Formatter renders forecast times for one locale
type Formatter struct {
	locale   language.Tag
	layout   string
	location *time.Location // nil keeps the time's own zone
}

// NewFormatter matches locale against the supported locales. An empty
// displayTimezone shows each time in the zone it carries.
func NewFormatter(locale, displayTimezone string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	_, idx, _ := localeMatcher.Match(tag)

	f := &Formatter{
		locale: supportedLocales[idx],
		layout: localeLayouts[idx],
	}

	if displayTimezone != "" {
		loc, err := time.LoadLocation(displayTimezone)
		if err != nil {
			return nil, fmt.Errorf("invalid display timezone %q: %w", displayTimezone, err)
		}
		f.location = loc
	}

	return f, nil
}

// Locale returns the matched locale
func (f *Formatter) Locale() language.Tag {
	return f.locale
}

// Format returns t as a date and time string, e.g. "15.01.2024 13:05" for is-IS
func (f *Formatter) Format(t time.Time) string {
	if f.location != nil {
		t = t.In(f.location)
	}
	return t.Format(f.layout)
}

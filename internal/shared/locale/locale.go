// Package locale renders values the way the admin console shows them, so
// filters match what the user sees rather than raw backend values.
package locale

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type dateLayout struct {
	tag    language.Tag
	layout string
}

// Calendar date layouts, numeric and without zero padding where the
// locale's short date format omits it.
var layouts = []dateLayout{
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.German, "2.1.2006"},
	{language.French, "02/01/2006"},
	{language.Spanish, "2/1/2006"},
	{language.Italian, "2/1/2006"},
	{language.Dutch, "2-1-2006"},
	{language.Russian, "02.01.2006"},
	{language.Indonesian, "2/1/2006"},
	{language.Japanese, "2006/1/2"},
	{language.Chinese, "2006/1/2"},
	{language.Korean, "2006. 1. 2."},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(layouts))
	for i, l := range layouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

type Locale struct {
	tag    language.Tag
	layout string
}

// Default is en-US.
var Default = New(language.AmericanEnglish)

func New(tag language.Tag) Locale {
	_, idx, _ := matcher.Match(tag)
	return Locale{tag: tag, layout: layouts[idx].layout}
}

// Parse accepts a BCP 47 tag such as "en-GB". An empty string yields Default.
func Parse(s string) (Locale, error) {
	if s == "" {
		return Default, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Locale{}, err
	}
	return New(tag), nil
}

// IsZero reports whether l is the unusable zero Locale.
func (l Locale) IsZero() bool {
	return l.layout == ""
}

func (l Locale) Tag() language.Tag {
	return l.tag
}

// Lower lower-cases s with the locale's rules. A Caser keeps state, so one
// is built per call instead of being shared between goroutines.
func (l Locale) Lower(s string) string {
	return cases.Lower(l.tag).String(s)
}

// FormatDate renders t as a calendar date; the zero time renders as "".
func (l Locale) FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(l.layout)
}

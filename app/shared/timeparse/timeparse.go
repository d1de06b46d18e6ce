package timeparse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Clock abstracts time.Now for deterministic tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

var ErrUnrecognized = errors.New("could not recognize time format")

// layouts tried before natural language parsing. The second is what an
// HTML datetime-local input submits.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

var compactTime = regexp.MustCompile(`\b(\d{1,2})(\d{2})(am|pm)\b`)

// fillers may surround a recognized phrase without changing its meaning.
var fillers = map[string]bool{"at": true, "on": true, "the": true, "of": true, "from": true}

// Parser turns event start and end inputs into absolute times.
type Parser struct {
	loc   *time.Location
	clock Clock
	w     *when.Parser
}

// New builds a parser resolving relative phrases in loc.
func New(loc *time.Location, clock Clock) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = RealClock{}
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{loc: loc, clock: clock, w: w}
}

// Parse accepts RFC 3339, a few fixed layouts, or English phrases such as
// "next friday at 6pm". The result is in UTC.
func (p *Parser) Parse(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, ErrUnrecognized
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, input, p.loc); err == nil {
			return t.UTC(), nil
		}
	}

	normalized := strings.ToLower(input)
	normalized = compactTime.ReplaceAllString(normalized, "$1:$2 $3")

	r, err := p.w.Parse(normalized, p.clock.Now().In(p.loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", ErrUnrecognized, input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnrecognized, input)
	}
	if rest := leftover(normalized, r.Index, r.Text); rest != "" {
		return time.Time{}, fmt.Errorf("%w: %s: unexpected %q", ErrUnrecognized, input, rest)
	}
	return r.Time.In(p.loc).Truncate(time.Minute).UTC(), nil
}

// leftover returns the words of text outside the matched span, ignoring
// punctuation and fillers.
func leftover(text string, index int, matched string) string {
	end := index + len(matched)
	if index < 0 || end > len(text) {
		return text
	}
	var rest []string
	for _, word := range strings.FieldsFunc(text[:index]+" "+text[end:], func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if !fillers[word] {
			rest = append(rest, word)
		}
	}
	return strings.Join(rest, " ")
}

// Package querystate maps a filter selection to and from the query string of
// the board's address, so a selection survives reloads and can be shared as a
// link.
//
// The format is two optional keys:
//
//	owners=101,102&types=bug,feature
//
// Values are sorted ascending and a key is omitted when its set is empty.
// Decoding is lenient: unknown keys are ignored and each malformed entry is
// dropped on its own.
package querystate

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/h0rv/storyboard/internal/domain"
	"github.com/h0rv/storyboard/internal/filter"
)

// Query keys.
const (
	OwnersKey = "owners"
	TypesKey  = "types"
)

const listSeparator = ","

// Dropped describes a query entry that Parse discarded.
type Dropped struct {
	Key    string
	Value  string
	Reason string
}

func (d Dropped) String() string {
	return fmt.Sprintf("%s=%q: %s", d.Key, d.Value, d.Reason)
}

// Encode serializes sel into a query string without a leading "?".
// The empty selection encodes to "".
func Encode(sel filter.Selection) string {
	var parts []string

	if owners := sel.Owners(); len(owners) > 0 {
		ids := make([]string, len(owners))
		for i, id := range owners {
			ids[i] = strconv.Itoa(id)
		}
		parts = append(parts, OwnersKey+"="+strings.Join(ids, listSeparator))
	}

	if types := sel.Types(); len(types) > 0 {
		tokens := make([]string, len(types))
		for i, t := range types {
			tokens[i] = string(t)
		}
		parts = append(parts, TypesKey+"="+strings.Join(tokens, listSeparator))
	}

	return strings.Join(parts, "&")
}

// Decode parses raw into a selection. The owner universe is accepted for
// symmetry with the reducer but is not used for validation: owners missing
// from it are kept and simply match no story.
func Decode(raw string, universe []int) filter.Selection {
	sel, _ := Parse(raw)
	return sel
}

// Parse parses raw into a selection and reports every entry it dropped.
// It never fails; the worst case is the empty selection.
func Parse(raw string) (filter.Selection, []Dropped) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return filter.Selection{}, nil
	}

	// ParseQuery returns every pair it could decode alongside the first
	// error, so a bad escape sequence only loses its own pair.
	values, err := url.ParseQuery(raw)

	var dropped []Dropped
	if err != nil {
		dropped = append(dropped, Dropped{Key: "", Value: raw, Reason: err.Error()})
	}

	var owners []int
	for _, entry := range splitEntries(values[OwnersKey]) {
		id, convErr := strconv.Atoi(entry)
		if convErr != nil {
			dropped = append(dropped, Dropped{Key: OwnersKey, Value: entry, Reason: "not an integer"})
			continue
		}
		owners = append(owners, id)
	}

	var types []domain.StoryType
	for _, entry := range splitEntries(values[TypesKey]) {
		t, ok := domain.ParseStoryType(entry)
		if !ok {
			dropped = append(dropped, Dropped{Key: TypesKey, Value: entry, Reason: "unknown story type"})
			continue
		}
		types = append(types, t)
	}

	return filter.NewSelection(owners, types), dropped
}

// splitEntries flattens repeated keys and comma lists into trimmed,
// non-empty entries.
func splitEntries(values []string) []string {
	var entries []string
	for _, v := range values {
		for _, entry := range strings.Split(v, listSeparator) {
			entry = strings.TrimSpace(entry)
			if entry != "" {
				entries = append(entries, entry)
			}
		}
	}
	return entries
}

// Link returns base with its query replaced by the encoded selection.
// Any fragment on base is kept.
func Link(base string, sel filter.Selection) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	u.RawQuery = Encode(sel)
	return u.String(), nil
}

// Package complete suggests markup keywords from a fixed lookup table.
// The table is static and tiny; everything here is plain filtering keyed
// by the scan context the tokenizer reports for the cursor position.
package complete

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/go-json-experiment/json"
	"github.com/lithammer/fuzzysearch/fuzzy"

	livemark "github.com/livemark/preview/internal"
)

//go:embed keywords.json
var keywordTable []byte

// A Keyword is one entry of the static lookup table.
type Keyword struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type table struct {
	Tags       []Keyword `json:"tags"`
	Attributes []Keyword `json:"attributes"`
}

// A Suggestion is one completion candidate. Lower Rank is a closer
// match; candidates matched with an empty prefix rank 0.
type Suggestion struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Rank        int    `json:"rank"`
}

// A Completer filters the keyword table by scan context. It is
// read-only after construction and safe for concurrent use.
type Completer struct {
	tags       []Keyword
	attributes []Keyword
}

func NewCompleter() (*Completer, error) {
	var t table
	if err := json.Unmarshal(keywordTable, &t); err != nil {
		return nil, fmt.Errorf("complete: decode keyword table: %w", err)
	}
	return &Completer{tags: t.Tags, attributes: t.Attributes}, nil
}

// Suggest returns the keywords matching prefix in the given context,
// ordered by match rank then name. Comments and raw-text bodies never
// complete.
func (c *Completer) Suggest(ctx livemark.ScanContext, prefix string) []Suggestion {
	var pool []Keyword
	switch ctx {
	case livemark.ContextTag:
		pool = c.tags
	case livemark.ContextAttribute:
		pool = c.attributes
	default:
		return nil
	}

	suggestions := make([]Suggestion, 0, len(pool))
	for _, k := range pool {
		rank := 0
		if prefix != "" {
			rank = fuzzy.RankMatchNormalizedFold(prefix, k.Name)
			if rank < 0 {
				continue
			}
		}
		suggestions = append(suggestions, Suggestion{
			Name:        k.Name,
			Description: k.Description,
			Rank:        rank,
		})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Rank != suggestions[j].Rank {
			return suggestions[i].Rank < suggestions[j].Rank
		}
		return suggestions[i].Name < suggestions[j].Name
	})
	return suggestions
}

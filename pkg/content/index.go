package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Kind selects a section of the manifest.
type Kind string

const (
	KindArticles  Kind = "articles"
	KindShowcases Kind = "showcases"
)

// Kinds lists every content kind in display order.
var Kinds = []Kind{KindArticles, KindShowcases}

// ParseKind accepts "articles", "showcases", and "projects" as an alias of showcases.
func ParseKind(s string) (Kind, error) {
	switch s {
	case string(KindArticles):
		return KindArticles, nil
	case string(KindShowcases), "projects":
		return KindShowcases, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Item is one manifest entry. Name is the object path, e.g. "articles/intro.en.md".
type Item struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// UnmarshalJSON accepts an object or a bare path string, as written by
// older manifests.
func (it *Item) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*it = Item{Name: name}
		return nil
	}

	type plain Item
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*it = Item(p)
	return nil
}

// Index is the content manifest. It is never mutated after decoding.
type Index struct {
	GeneratedAt string `json:"generated_at,omitempty"`
	Articles    []Item `json:"articles"`
	Showcases   []Item `json:"showcases"`
}

// Items returns the entries for kind.
func (idx *Index) Items(kind Kind) []Item {
	if idx == nil {
		return nil
	}
	switch kind {
	case KindArticles:
		return idx.Articles
	case KindShowcases:
		return idx.Showcases
	default:
		return nil
	}
}

// DecodeIndex parses a manifest document.
func DecodeIndex(data []byte) (*Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%w: index: %v", ErrDecode, err)
	}
	return &idx, nil
}

// Snapshot is a fetched Index with its fetch time.
type Snapshot struct {
	Index     *Index    `json:"index"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Age reports how old the snapshot is at now.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

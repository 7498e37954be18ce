package content

import (
	"fmt"
	"slices"
)

// Problem is a manifest defect reported by Check.
type Problem struct {
	Kind    Kind   `json:"kind"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s: %s", p.Kind, p.Name, p.Message)
}

// Check reports items the strategy cannot resolve, items in a language
// outside langs, and slugs used twice within one language.
func Check(idx *Index, s Strategy, langs []string) []Problem {
	var problems []Problem
	for _, kind := range Kinds {
		seen := make(map[string]string) // lang/slug -> first item name
		for _, it := range idx.Items(kind) {
			slug, lang, ok := s.Classify(it)
			if !ok {
				problems = append(problems, Problem{
					Kind: kind, Name: it.Name,
					Message: fmt.Sprintf("not resolvable by the %s strategy", s.Name()),
				})
				continue
			}
			if !slices.Contains(langs, lang) {
				problems = append(problems, Problem{
					Kind: kind, Name: it.Name,
					Message: fmt.Sprintf("unsupported language %q", lang),
				})
				continue
			}
			key := lang + "/" + slug
			if first, dup := seen[key]; dup {
				problems = append(problems, Problem{
					Kind: kind, Name: it.Name,
					Message: fmt.Sprintf("slug %q in %s already used by %s", slug, lang, first),
				})
				continue
			}
			seen[key] = it.Name
		}
	}
	return problems
}

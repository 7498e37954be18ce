package i18n

import (
	"fmt"
	"maps"
	"strings"
)

// M holds placeholder values.
type M map[string]any

// ReplacePlaceholders substitutes {{name}} markers. Unknown markers stay as is.
func ReplacePlaceholders(template string, values M) string {
	if len(values) == 0 || !strings.Contains(template, "{{") {
		return template
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func merge(all []M) M {
	if len(all) == 0 {
		return nil
	}
	out := make(M)
	for _, m := range all {
		maps.Copy(out, m)
	}
	return out
}

package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/doclens/doclens/internal/model"
)

// highlightLimit caps the highlighted excerpt returned to clients.
const highlightLimit = 200

// Explain builds the human-readable rationale for a match: the category
// keywords found in the content, a templated reasoning sentence, and an
// excerpt of the source with matches wrapped in <mark> tags.
func Explain(content string, category *model.Category) model.Explanation {
	folded := fold.String(content)
	var found []string
	for _, kw := range category.Keywords {
		if strings.Contains(folded, fold.String(kw)) {
			found = append(found, kw)
		}
	}

	highlighted := content
	for _, kw := range found {
		re, err := regexp.Compile(`(?i)(` + regexp.QuoteMeta(kw) + `)`)
		if err != nil {
			continue
		}
		highlighted = re.ReplaceAllString(highlighted, "<mark>$1</mark>")
	}
	if runes := []rune(highlighted); len(runes) > highlightLimit {
		highlighted = string(runes[:highlightLimit]) + "..."
	}

	reasoning := fmt.Sprintf("Classified as %q: no category keywords found, matched on overall content similarity.", category.Name)
	if len(found) > 0 {
		reasoning = fmt.Sprintf("Classified as %q because the following keywords were detected: %s.", category.Name, strings.Join(found, ", "))
	}

	return model.Explanation{
		Keywords:        found,
		Reasoning:       reasoning,
		HighlightedText: highlighted,
	}
}

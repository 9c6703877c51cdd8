package classify

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/doclens/doclens/internal/model"
)

// Keyword scoring weights. An exact phrase hit is worth exactPhraseWeight;
// each individual word of a multi-word keyword found as a whole word adds
// partialWordWeight split across the keyword's words. The accumulated score
// is normalized by keyword count, then the Jaccard similarity between
// content and category description is added scaled by descriptionBonus.
const (
	exactPhraseWeight = 0.8
	partialWordWeight = 0.3
	descriptionBonus  = 0.2
)

// fold performs Unicode case folding, so case-insensitive comparisons work
// for the bilingual Turkish/English keyword tables (İ/i, I/ı).
var fold = cases.Fold()

// MatchScore computes how well content matches a category, in [0,1].
// Categories with no keywords never match.
func MatchScore(content string, category *model.Category) float64 {
	if len(category.Keywords) == 0 {
		return 0
	}

	folded := fold.String(content)
	contentWords := make(map[string]bool)
	for _, w := range strings.Fields(folded) {
		contentWords[w] = true
	}

	var score float64
	for _, keyword := range category.Keywords {
		kw := fold.String(keyword)

		if strings.Contains(folded, kw) {
			score += exactPhraseWeight
		}

		// Partial credit per whole-word hit. Full phrase matches also earn
		// this, matching the reference scoring.
		kwWords := strings.Fields(kw)
		for _, w := range kwWords {
			if contentWords[w] {
				score += partialWordWeight / float64(len(kwWords))
			}
		}
	}

	normalized := score / float64(len(category.Keywords))
	if normalized > 1.0 {
		normalized = 1.0
	}

	normalized += descriptionBonus * jaccardSimilarity(folded, fold.String(category.Description))
	if normalized > 1.0 {
		normalized = 1.0
	}
	return normalized
}

// Matches reports whether content clears the category's threshold. The
// boundary is inclusive: a score exactly equal to the threshold matches.
func Matches(content string, category *model.Category) (float64, bool) {
	score := MatchScore(content, category)
	return score, score >= category.ConfidenceThreshold
}

// jaccardSimilarity is |A∩B| / |A∪B| over whitespace-split word sets.
// Inputs are expected to be case-folded already.
func jaccardSimilarity(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 0
	}

	setA := make(map[string]bool, len(wordsA))
	for _, w := range wordsA {
		setA[w] = true
	}
	setB := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		setB[w] = true
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// FirstMatch evaluates categories in order and returns the first one whose
// score clears its threshold, along with every category's score. The
// first-match (not best-match) policy is deliberate: callers control
// priority through category order (custom categories first, then the
// built-in cascade), and reproducing that order is required for
// deterministic results.
func FirstMatch(content string, categories []*model.Category) (*model.Category, float64, model.CategoryScores) {
	scores := make(model.CategoryScores, 0, len(categories))

	var winner *model.Category
	var winnerScore float64
	for _, cat := range categories {
		score, ok := Matches(content, cat)
		scores = append(scores, model.CategoryScore{
			Category: cat.Name,
			Score:    score,
			Matched:  ok,
		})
		if ok && winner == nil {
			winner = cat
			winnerScore = score
		}
	}

	scores.Sort()
	return winner, winnerScore, scores
}

package classify

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/doclens/doclens/internal/model"
)

// Feedback is a user verdict on a classification result.
type Feedback string

const (
	FeedbackCorrect   Feedback = "correct"
	FeedbackIncorrect Feedback = "incorrect"
)

// maxThreshold caps how far negative feedback can push a category's
// confidence threshold.
const maxThreshold = 0.95

// keywordCandidateLimit bounds how many frequent words a single confirmed
// document can contribute as new keywords.
const keywordCandidateLimit = 10

// IncorporateFeedback adjusts a category in response to a user verdict and
// returns the adjusted copy; the input category is not modified. A correct
// verdict counts as a new training example and mines the document for
// candidate keywords. An incorrect verdict tightens the confidence
// threshold so near-miss content stops matching.
func IncorporateFeedback(category model.Category, content string, verdict Feedback) (model.Category, error) {
	switch verdict {
	case FeedbackCorrect:
		category.Keywords = append([]string(nil), category.Keywords...)
		category.TrainingExamples++
		for _, kw := range PotentialKeywords(content) {
			category.AddKeyword(kw)
		}
	case FeedbackIncorrect:
		category.ConfidenceThreshold += 0.05
		if category.ConfidenceThreshold > maxThreshold {
			category.ConfidenceThreshold = maxThreshold
		}
	default:
		return category, eris.Errorf("feedback: unknown verdict %q", verdict)
	}
	return category, nil
}

var nonWordRe = regexp.MustCompile(`[^\wçğıiöşü]+`)

// PotentialKeywords mines a document for keyword candidates: the ten most
// frequent words longer than three characters, ties broken alphabetically.
func PotentialKeywords(content string) []string {
	words := nonWordRe.Split(strings.ToLower(content), -1)

	frequency := map[string]int{}
	for _, w := range words {
		if len([]rune(w)) > 3 {
			frequency[w]++
		}
	}

	candidates := make([]string, 0, len(frequency))
	for w := range frequency {
		candidates = append(candidates, w)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if frequency[candidates[i]] != frequency[candidates[j]] {
			return frequency[candidates[i]] > frequency[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})

	if len(candidates) > keywordCandidateLimit {
		candidates = candidates[:keywordCandidateLimit]
	}
	return candidates
}

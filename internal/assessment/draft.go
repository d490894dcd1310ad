package assessment

import (
	"math"
	"strconv"
	"strings"
)

// DraftValidation is the outcome of reconciling a persisted draft against
// the current question bank. Stale entries are dropped, never repaired;
// the counts let the caller tell the user exactly what was discarded.
type DraftValidation struct {
	Answers          AnswerSet `json:"answers"`
	InvalidAnswers   int       `json:"invalidAnswersCount"`
	RemovedQuestions int       `json:"removedQuestionsCount"`
}

func (v DraftValidation) Clean() bool {
	return v.InvalidAnswers == 0 && v.RemovedQuestions == 0
}

// ValidateDraftAnswers filters a draft's answers down to those that still
// reference the current bank. Question ids that no longer exist count as
// removed; values that no longer fit the question's shape (out-of-range
// indices, unparsable prerequisite numbers) count as invalid. The function
// is pure and idempotent: re-running it on its own output against the same
// bank yields zero additional counts.
func ValidateDraftAnswers(draft AnswerSet, bank *Bank) DraftValidation {
	result := DraftValidation{Answers: NewAnswerSet()}

	for cat, entries := range draft {
		if bank.Count(cat) == 0 {
			result.RemovedQuestions += len(entries)
			continue
		}

		for id, value := range entries {
			q, ok := bank.Lookup(cat, id)
			if !ok {
				result.RemovedQuestions++
				continue
			}

			if cat == CategoryPrerequisites {
				if v, ok := validatePrerequisite(value); ok {
					result.Answers.Set(cat, id, v)
				} else {
					result.InvalidAnswers++
				}
				continue
			}

			if v, ok := validateScored(value, q); ok {
				result.Answers.Set(cat, id, v)
			} else {
				result.InvalidAnswers++
			}
		}
	}

	return result
}

// validatePrerequisite accepts values that parse to a finite number >= 0.
func validatePrerequisite(v AnswerValue) (AnswerValue, bool) {
	switch v.Kind() {
	case KindNumeric:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Raw()), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f < 0 {
			return AnswerValue{}, false
		}
		return v, true
	case KindSingle:
		// Drafts written by older clients stored the number unquoted.
		if v.Index() < 0 {
			return AnswerValue{}, false
		}
		return Numeric(strconv.Itoa(v.Index())), true
	}
	return AnswerValue{}, false
}

func validateScored(v AnswerValue, q Question) (AnswerValue, bool) {
	maxIndex := len(q.Options) - 1

	switch v.Kind() {
	case KindMulti:
		kept := make([]int, 0, len(v.Indices()))
		for _, i := range v.Indices() {
			if i >= 0 && i <= maxIndex {
				kept = append(kept, i)
			}
		}
		if len(kept) == 0 {
			return AnswerValue{}, false
		}
		return MultiChoice(kept), true
	case KindSingle:
		if v.Index() < 0 || v.Index() > maxIndex {
			return AnswerValue{}, false
		}
		return v, true
	case KindNumeric:
		i, err := strconv.Atoi(strings.TrimSpace(v.Raw()))
		if err != nil || i < 0 || i > maxIndex {
			return AnswerValue{}, false
		}
		return SingleChoice(i), true
	}
	return AnswerValue{}, false
}

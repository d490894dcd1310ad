package assessment

// QuestionScore computes the weighted score of one scored question:
// the proportion of its available sub-marks captured by the selection,
// scaled by the question weight. A question whose options carry no
// sub-marks at all contributes exactly zero. Prerequisites questions
// are not scored; their responses pass through as raw numbers.
func QuestionScore(q Question, v AnswerValue) float64 {
	if !q.Category.Scored() {
		return 0
	}

	totalPossible := q.TotalSubMarks()
	if totalPossible <= 0 {
		return 0
	}

	selected := 0.0
	for _, i := range v.Indices() {
		if i >= 0 && i < len(q.Options) {
			selected += q.Options[i].SubMark
		}
	}

	return selected / totalPossible * q.Weight
}

// CategoryProgress is the answered percentage of one category. A category
// without questions counts as complete.
func CategoryProgress(bank *Bank, answers AnswerSet, cat Category) float64 {
	total := bank.Count(cat)
	if total == 0 {
		return 100
	}
	return float64(answers.CountAnswered(bank, cat)) / float64(total) * 100
}

// ResponseRecord is one per-question entry of a submission, carrying the
// resolved score contribution.
type ResponseRecord struct {
	QuestionID  string      `json:"questionId"`
	Category    Category    `json:"category"`
	SubCategory string      `json:"subCategory"`
	Value       AnswerValue `json:"value"`
	Score       float64     `json:"score"`
	MaxScore    float64     `json:"maxScore"`
}

// SubmissionTotals aggregates the scored part of a submission.
type SubmissionTotals struct {
	TotalScore float64 `json:"totalScore"`
	MaxScore   float64 `json:"maxScore"`
}

// BuildSubmission turns the current answers into the final response
// records, in bank order. Prerequisites records carry the raw value with
// a zero score contribution.
func BuildSubmission(bank *Bank, answers AnswerSet) ([]ResponseRecord, SubmissionTotals) {
	var records []ResponseRecord
	var totals SubmissionTotals

	for _, cat := range Categories() {
		for _, q := range bank.Questions(cat) {
			v, ok := answers.Get(cat, q.ID)
			if !ok {
				continue
			}
			rec := ResponseRecord{
				QuestionID:  q.ID,
				Category:    cat,
				SubCategory: q.SubCategory,
				Value:       v,
			}
			if cat.Scored() {
				rec.Score = QuestionScore(q, v)
				rec.MaxScore = q.Weight
				totals.TotalScore += rec.Score
				totals.MaxScore += rec.MaxScore
			}
			records = append(records, rec)
		}
	}

	return records, totals
}

package assessment

import "github.com/pkg/errors"

// ErrNoMatchingRange means the scoring table does not cover a computed
// total. It is an authoring bug in the configuration, not a taker error.
var ErrNoMatchingRange = errors.New("no score range matches total score")

// TotalScore sums the scores of every selected answer. Answers whose
// question id or answer id is unknown contribute nothing; a selected id
// listed twice counts once. The total is rounded the same way as
// AttainableScores so fractional scores land on the validated totals.
func TotalScore(answers []UserAnswer, questions []Question) float64 {
	byID := make(map[int]*Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	total := 0.0
	for _, ua := range answers {
		q, ok := byID[ua.QuestionID]
		if !ok {
			continue
		}
		selected := make(map[string]struct{}, len(ua.SelectedAnswerIDs))
		for _, id := range ua.SelectedAnswerIDs {
			selected[id] = struct{}{}
		}
		for _, a := range q.Answers {
			if _, ok := selected[a.ID]; ok {
				total += a.Score
			}
		}
	}
	return round(total)
}

// Lookup returns the first range containing score.
func (s Scoring) Lookup(score float64) (ScoreRange, bool) {
	for _, r := range s.Ranges {
		if r.Contains(score) {
			return r, true
		}
	}
	return ScoreRange{}, false
}

// Resolve computes the total score of an attempt and maps it to a band.
func Resolve(answers []UserAnswer, q Quiz) (TestResult, error) {
	total := TotalScore(answers, q.Questions)

	band, ok := q.Scoring.Lookup(total)
	if !ok {
		return TestResult{}, errors.Wrapf(ErrNoMatchingRange, "total score %g", total)
	}

	recs := make([]string, len(band.Recommendations))
	copy(recs, band.Recommendations)

	return TestResult{
		TotalScore:      total,
		Level:           band.Level,
		Color:           band.Color,
		Interpretation:  band.Interpretation,
		Recommendations: recs,
	}, nil
}

package assessment

import (
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/eduquiz/backend/internal/domain/quiz"
)

const (
	// Above this many answers a multi-select question only contributes its
	// extreme subset sums instead of every subset.
	maxSubsetAnswers = 12
	// Above this many distinct totals only the bounds are tracked.
	maxAttainable = 10000
)

// Validate checks the quiz and its scoring table before any session is
// started against it: every question must be answerable with unique ids,
// ranges must be well-formed and non-overlapping, and every attainable total
// must fall inside some range.
func (q Quiz) Validate() error {
	var result *multierror.Error

	if len(q.Questions) == 0 {
		result = multierror.Append(result, fmt.Errorf("quiz %q has no questions", q.Title))
	}

	seenQuestions := make(map[int]bool, len(q.Questions))
	for _, question := range q.Questions {
		if seenQuestions[question.ID] {
			result = multierror.Append(result, fmt.Errorf("duplicate question id %d", question.ID))
		}
		seenQuestions[question.ID] = true

		if !question.Type.Valid() {
			result = multierror.Append(result, fmt.Errorf("question %d: unknown type %q", question.ID, question.Type))
		}
		if len(question.Answers) == 0 {
			result = multierror.Append(result, fmt.Errorf("question %d has no answers", question.ID))
		}
		seenAnswers := make(map[string]bool, len(question.Answers))
		for _, a := range question.Answers {
			if seenAnswers[a.ID] {
				result = multierror.Append(result, fmt.Errorf("question %d: duplicate answer id %q", question.ID, a.ID))
			}
			seenAnswers[a.ID] = true
		}
	}

	if err := q.Scoring.validateRanges(); err != nil {
		result = multierror.Append(result, err)
	}

	totals, _ := AttainableScores(q.Questions)
	for _, total := range totals {
		if _, ok := q.Scoring.Lookup(total); !ok {
			result = multierror.Append(result, fmt.Errorf("attainable total %g is not covered by any score range", total))
		}
	}

	return result.ErrorOrNil()
}

func (s Scoring) validateRanges() error {
	var result *multierror.Error

	if len(s.Ranges) == 0 {
		return multierror.Append(result, fmt.Errorf("scoring table has no ranges"))
	}
	for i, r := range s.Ranges {
		if r.Min > r.Max {
			result = multierror.Append(result, fmt.Errorf("range %d (%s): min %g is greater than max %g", i, r.Level, r.Min, r.Max))
		}
		for j := i + 1; j < len(s.Ranges); j++ {
			o := s.Ranges[j]
			if r.Min <= o.Max && o.Min <= r.Max {
				result = multierror.Append(result, fmt.Errorf("ranges %d (%s) and %d (%s) overlap", i, r.Level, j, o.Level))
			}
		}
	}
	return result.ErrorOrNil()
}

// AttainableScores returns every total a taker can reach by answering each
// question with a non-empty selection, sorted ascending. When the space is
// too large to enumerate, only the minimum and maximum totals are returned
// and exact is false.
func AttainableScores(questions []Question) (totals []float64, exact bool) {
	exact = true
	current := map[float64]struct{}{0: {}}

	for _, q := range questions {
		sums, ok := questionSums(q)
		if !ok {
			exact = false
		}
		if len(sums) == 0 {
			continue
		}
		next := make(map[float64]struct{}, len(current)*len(sums))
		for t := range current {
			for _, s := range sums {
				next[round(t+s)] = struct{}{}
			}
		}
		if len(next) > maxAttainable {
			exact = false
			next = bounds(next)
		}
		current = next
	}

	totals = make([]float64, 0, len(current))
	for t := range current {
		totals = append(totals, t)
	}
	sort.Float64s(totals)
	return totals, exact
}

func questionSums(q Question) ([]float64, bool) {
	n := len(q.Answers)
	if n == 0 {
		return nil, true
	}

	if q.Type != quiz.Multiple {
		sums := make([]float64, n)
		for i, a := range q.Answers {
			sums[i] = a.Score
		}
		return sums, true
	}

	if n > maxSubsetAnswers {
		lo, hi := subsetExtremes(q.Answers)
		return []float64{lo, hi}, false
	}

	sums := make([]float64, 0, (1<<n)-1)
	for mask := 1; mask < 1<<n; mask++ {
		s := 0.0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				s += q.Answers[i].Score
			}
		}
		sums = append(sums, round(s))
	}
	return sums, true
}

// subsetExtremes returns the smallest and largest non-empty subset sums.
func subsetExtremes(answers []Answer) (float64, float64) {
	var neg, pos float64
	minScore, maxScore := math.Inf(1), math.Inf(-1)
	for _, a := range answers {
		if a.Score < 0 {
			neg += a.Score
		} else {
			pos += a.Score
		}
		minScore = math.Min(minScore, a.Score)
		maxScore = math.Max(maxScore, a.Score)
	}
	lo, hi := neg, pos
	if neg == 0 {
		lo = minScore
	}
	if pos == 0 {
		hi = maxScore
	}
	return lo, hi
}

func bounds(set map[float64]struct{}) map[float64]struct{} {
	lo, hi := math.Inf(1), math.Inf(-1)
	for v := range set {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return map[float64]struct{}{lo: {}, hi: {}}
}

// round trims float noise so sums like 0.1+0.2 compare equal to 0.3.
func round(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

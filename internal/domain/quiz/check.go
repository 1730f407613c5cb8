package quiz

// CheckResult is the outcome of the self-check flow: a binary pass/fail per
// question, independent of any weighted score.
type CheckResult struct {
	Correct int
	Total   int
	Passed  map[string]bool // questionID → exact match
}

// Check compares the taker's selections against the options marked correct.
// A question passes only when both id sets are equal; order is irrelevant and
// duplicate selections collapse.
func Check(q *Quiz, selections map[string][]string) CheckResult {
	res := CheckResult{
		Total:  len(q.Questions),
		Passed: make(map[string]bool, len(q.Questions)),
	}
	for i := range q.Questions {
		question := &q.Questions[i]
		ok := sameSet(question.CorrectIDs(), selections[question.ID])
		res.Passed[question.ID] = ok
		if ok {
			res.Correct++
		}
	}
	return res
}

func sameSet(a, b []string) bool {
	left := toSet(a)
	right := toSet(b)
	if len(left) != len(right) {
		return false
	}
	for k := range left {
		if _, ok := right[k]; !ok {
			return false
		}
	}
	return true
}

func toSet(ids []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, s := range ids {
		m[s] = struct{}{}
	}
	return m
}

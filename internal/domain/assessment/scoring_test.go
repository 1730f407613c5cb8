package assessment_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/eduquiz/backend/internal/domain/assessment"
	"github.com/eduquiz/backend/internal/domain/quiz"
)

func lowHigh() assessment.Scoring {
	return assessment.Scoring{Ranges: []assessment.ScoreRange{
		{Min: 0, Max: 4, Level: "Low", Color: "#4caf50", Interpretation: "Low risk", Recommendations: []string{"Keep going"}},
		{Min: 5, Max: 10, Level: "High", Color: "#f44336", Interpretation: "High risk", Recommendations: []string{"See a doctor"}},
	}}
}

func singleQuiz() assessment.Quiz {
	return assessment.Quiz{
		Title: "Fever check",
		Questions: []assessment.Question{
			{ID: 1, Type: quiz.Single, Text: "How often?", Answers: []assessment.Answer{
				{ID: "never", Score: 0},
				{ID: "often", Score: 5},
			}},
		},
		Scoring: lowHigh(),
	}
}

func multiQuiz() assessment.Quiz {
	return assessment.Quiz{
		Title: "Symptom check",
		Questions: []assessment.Question{
			{ID: 1, Type: quiz.Multiple, Answers: []assessment.Answer{{ID: "a", Score: 2}, {ID: "b", Score: 3}}},
			{ID: 2, Type: quiz.Multiple, Answers: []assessment.Answer{{ID: "c", Score: 1}, {ID: "d", Score: 4}}},
		},
		Scoring: lowHigh(),
	}
}

func TestResolve_SingleQuestionHighBand(t *testing.T) {
	answers := []assessment.UserAnswer{{QuestionID: 1, SelectedAnswerIDs: []string{"often"}}}

	res, err := assessment.Resolve(answers, singleQuiz())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalScore != 5 {
		t.Errorf("expected total 5, got %g", res.TotalScore)
	}
	if res.Level != "High" {
		t.Errorf("expected level High, got %q", res.Level)
	}
}

func TestTotalScore_MultipleQuestions(t *testing.T) {
	answers := []assessment.UserAnswer{
		{QuestionID: 1, SelectedAnswerIDs: []string{"a", "b"}},
		{QuestionID: 2, SelectedAnswerIDs: []string{"d"}},
	}

	if got := assessment.TotalScore(answers, multiQuiz().Questions); got != 9 {
		t.Errorf("expected total 9, got %g", got)
	}
}

func TestTotalScore_SkipsStaleIDs(t *testing.T) {
	answers := []assessment.UserAnswer{
		{QuestionID: 1, SelectedAnswerIDs: []string{"a", "a", "ghost"}},
		{QuestionID: 99, SelectedAnswerIDs: []string{"c", "d"}},
	}

	if got := assessment.TotalScore(answers, multiQuiz().Questions); got != 2 {
		t.Errorf("expected total 2, got %g", got)
	}
}

func TestResolve_NoMatchingRange(t *testing.T) {
	q := multiQuiz()
	answers := []assessment.UserAnswer{
		{QuestionID: 1, SelectedAnswerIDs: []string{"a", "b"}},
		{QuestionID: 2, SelectedAnswerIDs: []string{"c", "d"}},
	}

	_, err := assessment.Resolve(answers, q)
	if !errors.Is(err, assessment.ErrNoMatchingRange) {
		t.Errorf("expected ErrNoMatchingRange, got %v", err)
	}
}

func TestResolve_FirstMatchWinsOnOverlap(t *testing.T) {
	q := singleQuiz()
	q.Scoring.Ranges = append([]assessment.ScoreRange{{Min: 3, Max: 7, Level: "Overlap"}}, q.Scoring.Ranges...)
	answers := []assessment.UserAnswer{{QuestionID: 1, SelectedAnswerIDs: []string{"often"}}}

	res, err := assessment.Resolve(answers, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Level != "Overlap" {
		t.Errorf("expected first matching range, got %q", res.Level)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	q := multiQuiz()
	answers := []assessment.UserAnswer{
		{QuestionID: 1, SelectedAnswerIDs: []string{"a"}},
		{QuestionID: 2, SelectedAnswerIDs: []string{"c"}},
	}

	first, err := assessment.Resolve(answers, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := assessment.Resolve(answers, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestResolve_ResultDoesNotAliasConfig(t *testing.T) {
	q := singleQuiz()
	answers := []assessment.UserAnswer{{QuestionID: 1, SelectedAnswerIDs: []string{"never"}}}

	res, err := assessment.Resolve(answers, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q.Scoring.Ranges[0].Recommendations[0] = "mutated"

	if res.Recommendations[0] != "Keep going" {
		t.Error("expected result recommendations to be a copy")
	}
}

func TestResolve_FractionalScoresMatchValidatedTotals(t *testing.T) {
	q := assessment.Quiz{
		Title: "Fractions",
		Questions: []assessment.Question{
			{ID: 1, Type: quiz.Multiple, Answers: []assessment.Answer{{ID: "a", Score: 0.1}, {ID: "b", Score: 0.2}}},
		},
		Scoring: assessment.Scoring{Ranges: []assessment.ScoreRange{
			{Min: 0, Max: 0.3, Level: "Low"},
		}},
	}
	if err := q.Validate(); err != nil {
		t.Fatalf("expected valid quiz, got %v", err)
	}

	answers := []assessment.UserAnswer{{QuestionID: 1, SelectedAnswerIDs: []string{"a", "b"}}}
	res, err := assessment.Resolve(answers, q)
	if err != nil {
		t.Fatalf("expected every validated total to resolve, got %v", err)
	}
	if res.TotalScore != 0.3 {
		t.Errorf("expected total 0.3, got %v", res.TotalScore)
	}
	if res.Level != "Low" {
		t.Errorf("expected level Low, got %q", res.Level)
	}
}

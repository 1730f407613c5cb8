package assessment

import "github.com/eduquiz/backend/internal/domain/quiz"

// Answer is a weighted choice: selecting it adds Score to the total.
type Answer struct {
	ID          string  `json:"id" yaml:"id"`
	Text        string  `json:"text" yaml:"text"`
	Score       float64 `json:"score" yaml:"score"`
	Explanation string  `json:"explanation" yaml:"explanation"`
}

type Question struct {
	ID      int               `json:"id" yaml:"id"`
	Text    string            `json:"text" yaml:"text"`
	Type    quiz.QuestionType `json:"type" yaml:"type"`
	Answers []Answer          `json:"answers" yaml:"answers"`
}

// Answer returns the answer with the given id, or nil.
func (q *Question) Answer(answerID string) *Answer {
	for i := range q.Answers {
		if q.Answers[i].ID == answerID {
			return &q.Answers[i]
		}
	}
	return nil
}

// ScoreRange maps the closed interval [Min, Max] to a result band.
type ScoreRange struct {
	Min             float64  `json:"min" yaml:"min"`
	Max             float64  `json:"max" yaml:"max"`
	Level           string   `json:"level" yaml:"level"`
	Color           string   `json:"color" yaml:"color"`
	Interpretation  string   `json:"interpretation" yaml:"interpretation"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

func (r ScoreRange) Contains(score float64) bool {
	return score >= r.Min && score <= r.Max
}

type Scoring struct {
	Ranges []ScoreRange `json:"ranges" yaml:"ranges"`
}

// Quiz is the taking-side quiz: weighted questions plus the scoring table.
// Question order defines presentation order.
type Quiz struct {
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
	Scoring   Scoring    `json:"scoring" yaml:"scoring"`
}

// Question returns the question with the given id, or nil.
func (q *Quiz) Question(questionID int) *Question {
	for i := range q.Questions {
		if q.Questions[i].ID == questionID {
			return &q.Questions[i]
		}
	}
	return nil
}

type DiseaseInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Causes      []string `json:"causes" yaml:"causes"`
	Symptoms    []string `json:"symptoms" yaml:"symptoms"`
	Diagnosis   []string `json:"diagnosis" yaml:"diagnosis"`
	Treatment   []string `json:"treatment" yaml:"treatment"`
}

// AppConfig is the immutable configuration a test session is built from.
type AppConfig struct {
	Disease    DiseaseInfo `json:"disease" yaml:"disease"`
	Quiz       Quiz        `json:"quiz" yaml:"quiz"`
	DoctorLink string      `json:"doctor_link,omitempty" yaml:"doctor_link,omitempty"`
}

// UserAnswer is the selection recorded for one question in one attempt.
type UserAnswer struct {
	QuestionID        int      `json:"question_id"`
	SelectedAnswerIDs []string `json:"selected_answer_ids"`
}

// TestResult is the resolved outcome of an attempt. It is never modified
// after Resolve returns it.
type TestResult struct {
	TotalScore      float64  `json:"total_score"`
	Level           string   `json:"level"`
	Color           string   `json:"color"`
	Interpretation  string   `json:"interpretation"`
	Recommendations []string `json:"recommendations"`
}

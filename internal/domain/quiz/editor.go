package quiz

import "github.com/eduquiz/backend/internal/id"

// Default texts for newly created entities.
const (
	DefaultQuestionText = "New question"
	DefaultOptionText   = "New option"
)

// Editor applies authoring mutations to a single quiz.
//
// None of the operations fail on a missing question or option: the id is
// assumed to have been removed by a concurrent edit and the call is ignored.
// Each mutating method reports whether it changed anything so callers can
// log ignored edits.
type Editor struct {
	quiz *Quiz
	ids  id.Generator
}

// NewEditor binds an editor to q. A nil generator falls back to id.Random.
func NewEditor(q *Quiz, ids id.Generator) *Editor {
	if ids == nil {
		ids = id.Random
	}
	return &Editor{quiz: q, ids: ids}
}

// Quiz returns the quiz being edited.
func (e *Editor) Quiz() *Quiz {
	return e.quiz
}

// AddQuestion appends a question with two default options, the second one
// marked correct. Unknown types are treated as Single.
func (e *Editor) AddQuestion(t QuestionType) string {
	if !t.Valid() {
		t = Single
	}
	q := Question{
		ID:   e.ids.NewID(),
		Type: t,
		Text: DefaultQuestionText,
		Options: []Option{
			{ID: e.ids.NewID(), Text: "Option 1", Correct: false},
			{ID: e.ids.NewID(), Text: "Option 2", Correct: true},
		},
	}
	e.quiz.Questions = append(e.quiz.Questions, q)
	return q.ID
}

func (e *Editor) RemoveQuestion(questionID string) bool {
	for i := range e.quiz.Questions {
		if e.quiz.Questions[i].ID == questionID {
			e.quiz.Questions = append(e.quiz.Questions[:i], e.quiz.Questions[i+1:]...)
			return true
		}
	}
	return false
}

func (e *Editor) SetQuestionText(questionID, text string) bool {
	q := e.quiz.Question(questionID)
	if q == nil {
		return false
	}
	q.Text = text
	return true
}

// SetOptionText looks the option up across every question, since option ids
// are unique within the quiz.
func (e *Editor) SetOptionText(optionID, text string) bool {
	for i := range e.quiz.Questions {
		if o := e.quiz.Questions[i].Option(optionID); o != nil {
			o.Text = text
			return true
		}
	}
	return false
}

// AddOption appends a non-correct option and returns its id, or "" when the
// question no longer exists.
func (e *Editor) AddOption(questionID string) string {
	q := e.quiz.Question(questionID)
	if q == nil {
		return ""
	}
	o := Option{ID: e.ids.NewID(), Text: DefaultOptionText}
	q.Options = append(q.Options, o)
	return o.ID
}

func (e *Editor) RemoveOption(questionID, optionID string) bool {
	q := e.quiz.Question(questionID)
	if q == nil {
		return false
	}
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			q.Options = append(q.Options[:i], q.Options[i+1:]...)
			return true
		}
	}
	return false
}

// SetOptionCorrectness marks an option correct or not.
//
// For Single questions checked is ignored: the target always becomes the one
// correct option and every sibling is cleared first. For Multiple questions
// only the target flag changes.
func (e *Editor) SetOptionCorrectness(questionID, optionID string, checked bool) bool {
	q := e.quiz.Question(questionID)
	if q == nil {
		return false
	}
	target := q.Option(optionID)
	if target == nil {
		return false
	}

	if q.Type == Multiple {
		target.Correct = checked
		return true
	}

	for i := range q.Options {
		q.Options[i].Correct = false
	}
	target.Correct = true
	return true
}

func (e *Editor) SetTitle(title string) {
	e.quiz.Title = title
}

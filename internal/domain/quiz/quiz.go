package quiz

// QuestionType decides how many options may be marked correct and how
// a taker selects answers.
type QuestionType string

const (
	Single   QuestionType = "single"
	Multiple QuestionType = "multiple"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	return t == Single || t == Multiple
}

// InputKind returns the form control a question of this type is answered with.
func (t QuestionType) InputKind() string {
	if t == Multiple {
		return "checkbox"
	}
	return "radio"
}

// Option is a markable choice: it is either correct or not.
type Option struct {
	ID      string
	Text    string
	Correct bool
}

type Question struct {
	ID      string
	Type    QuestionType
	Text    string
	Options []Option
}

// Quiz is an ordered list of questions owned by exactly one lesson.
type Quiz struct {
	Title     string
	Questions []Question
}

const DefaultTitle = "New quiz"

// New creates an empty quiz. An empty title falls back to DefaultTitle.
func New(title string) *Quiz {
	if title == "" {
		title = DefaultTitle
	}
	return &Quiz{
		Title:     title,
		Questions: []Question{},
	}
}

// Question returns the question with the given id, or nil.
func (q *Quiz) Question(questionID string) *Question {
	for i := range q.Questions {
		if q.Questions[i].ID == questionID {
			return &q.Questions[i]
		}
	}
	return nil
}

// HasQuestions reports whether the quiz can be taken.
func (q *Quiz) HasQuestions() bool {
	return q != nil && len(q.Questions) > 0
}

// Clone returns a deep copy that shares no slices with q.
func (q *Quiz) Clone() *Quiz {
	if q == nil {
		return nil
	}
	out := &Quiz{
		Title:     q.Title,
		Questions: make([]Question, len(q.Questions)),
	}
	for i, question := range q.Questions {
		out.Questions[i] = question.clone()
	}
	return out
}

func (q Question) clone() Question {
	options := make([]Option, len(q.Options))
	copy(options, q.Options)
	q.Options = options
	return q
}

// Option returns the option with the given id, or nil.
func (q *Question) Option(optionID string) *Option {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i]
		}
	}
	return nil
}

// CorrectIDs returns the ids of all options marked correct, in option order.
func (q *Question) CorrectIDs() []string {
	var ids []string
	for _, o := range q.Options {
		if o.Correct {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// Answerable reports whether the question has at least one option.
func (q *Question) Answerable() bool {
	return len(q.Options) > 0
}

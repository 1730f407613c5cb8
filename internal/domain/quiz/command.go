package quiz

// Command is one discrete authoring action coming from an editor surface.
type Command interface {
	// Name is the wire name of the command, e.g. "add_question".
	Name() string
	apply(e *Editor) bool
}

type AddQuestion struct{ Type QuestionType }

type RemoveQuestion struct{ QuestionID string }

type SetQuestionText struct {
	QuestionID string
	Text       string
}

type SetOptionText struct {
	OptionID string
	Text     string
}

type AddOption struct{ QuestionID string }

type RemoveOption struct {
	QuestionID string
	OptionID   string
}

type SetOptionCorrectness struct {
	QuestionID string
	OptionID   string
	Checked    bool
}

type SetTitle struct{ Title string }

func (AddQuestion) Name() string          { return "add_question" }
func (RemoveQuestion) Name() string       { return "remove_question" }
func (SetQuestionText) Name() string      { return "set_question_text" }
func (SetOptionText) Name() string        { return "set_option_text" }
func (AddOption) Name() string            { return "add_option" }
func (RemoveOption) Name() string         { return "remove_option" }
func (SetOptionCorrectness) Name() string { return "set_option_correctness" }
func (SetTitle) Name() string             { return "set_title" }

func (c AddQuestion) apply(e *Editor) bool     { e.AddQuestion(c.Type); return true }
func (c RemoveQuestion) apply(e *Editor) bool  { return e.RemoveQuestion(c.QuestionID) }
func (c SetQuestionText) apply(e *Editor) bool { return e.SetQuestionText(c.QuestionID, c.Text) }
func (c SetOptionText) apply(e *Editor) bool   { return e.SetOptionText(c.OptionID, c.Text) }
func (c AddOption) apply(e *Editor) bool       { return e.AddOption(c.QuestionID) != "" }
func (c RemoveOption) apply(e *Editor) bool    { return e.RemoveOption(c.QuestionID, c.OptionID) }
func (c SetTitle) apply(e *Editor) bool        { e.SetTitle(c.Title); return true }

func (c SetOptionCorrectness) apply(e *Editor) bool {
	return e.SetOptionCorrectness(c.QuestionID, c.OptionID, c.Checked)
}

// Apply runs cmd against the quiz. It returns false when the command
// referenced an entity that no longer exists and therefore did nothing.
func (e *Editor) Apply(cmd Command) bool {
	if cmd == nil {
		return false
	}
	return cmd.apply(e)
}

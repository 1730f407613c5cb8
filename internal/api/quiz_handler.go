package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/eduquiz/backend/internal/domain/quiz"
)

// ── Request / Response types ────────────────────────────────────────────────

type OptionResponse struct {
	ID      string `json:"id" example:"o1p2q3r4s5t6u7v8"`
	Text    string `json:"text" example:"Option 2"`
	Correct bool   `json:"correct" example:"true"`
}

type QuizQuestionResponse struct {
	ID      string           `json:"id" example:"q1w2e3r4t5y6u7i8"`
	Type    string           `json:"type" example:"single"`
	Text    string           `json:"text" example:"New question"`
	Options []OptionResponse `json:"options"`
}

type QuizResponse struct {
	Title     string                 `json:"title" example:"New quiz"`
	Questions []QuizQuestionResponse `json:"questions"`
}

func newQuizResponse(q *quiz.Quiz) QuizResponse {
	resp := QuizResponse{
		Title:     q.Title,
		Questions: make([]QuizQuestionResponse, len(q.Questions)),
	}
	for i, question := range q.Questions {
		qr := QuizQuestionResponse{
			ID:      question.ID,
			Type:    string(question.Type),
			Text:    question.Text,
			Options: make([]OptionResponse, len(question.Options)),
		}
		for j, o := range question.Options {
			qr.Options[j] = OptionResponse{ID: o.ID, Text: o.Text, Correct: o.Correct}
		}
		resp.Questions[i] = qr
	}
	return resp
}

// QuizCommandRequest is the envelope for one authoring command. Which of the
// optional fields are read depends on Type.
type QuizCommandRequest struct {
	Type         string `json:"type" validate:"required,oneof=add_question remove_question set_question_text set_option_text add_option remove_option set_option_correctness set_title" example:"set_option_correctness"`
	QuestionType string `json:"question_type,omitempty" validate:"omitempty,oneof=single multiple" example:"single"`
	QuestionID   string `json:"question_id,omitempty" example:"q1w2e3r4t5y6u7i8"`
	OptionID     string `json:"option_id,omitempty" example:"o1p2q3r4s5t6u7v8"`
	Text         string `json:"text,omitempty" example:"Which gas do plants absorb?"`
	Checked      bool   `json:"checked,omitempty" example:"true"`
}

func (r *QuizCommandRequest) Validate() error {
	switch r.Type {
	case "remove_question", "set_question_text", "add_option":
		if r.QuestionID == "" {
			return errors.New("question_id is required")
		}
	case "set_option_text":
		if r.OptionID == "" {
			return errors.New("option_id is required")
		}
	case "remove_option", "set_option_correctness":
		if r.QuestionID == "" || r.OptionID == "" {
			return errors.New("question_id and option_id are required")
		}
	}
	return nil
}

// Command converts the envelope into a typed authoring command.
func (r *QuizCommandRequest) Command() quiz.Command {
	switch r.Type {
	case "add_question":
		return quiz.AddQuestion{Type: quiz.QuestionType(r.QuestionType)}
	case "remove_question":
		return quiz.RemoveQuestion{QuestionID: r.QuestionID}
	case "set_question_text":
		return quiz.SetQuestionText{QuestionID: r.QuestionID, Text: r.Text}
	case "set_option_text":
		return quiz.SetOptionText{OptionID: r.OptionID, Text: r.Text}
	case "add_option":
		return quiz.AddOption{QuestionID: r.QuestionID}
	case "remove_option":
		return quiz.RemoveOption{QuestionID: r.QuestionID, OptionID: r.OptionID}
	case "set_option_correctness":
		return quiz.SetOptionCorrectness{QuestionID: r.QuestionID, OptionID: r.OptionID, Checked: r.Checked}
	case "set_title":
		return quiz.SetTitle{Title: r.Text}
	}
	return nil
}

type QuizCommandResponse struct {
	Applied bool         `json:"applied" example:"true"`
	Quiz    QuizResponse `json:"quiz"`
}

type SheetOptionResponse struct {
	ID   string `json:"id" example:"o1p2q3r4s5t6u7v8"`
	Text string `json:"text" example:"Carbon dioxide"`
}

type SheetQuestionResponse struct {
	Number  int                   `json:"number" example:"1"`
	ID      string                `json:"id" example:"q1w2e3r4t5y6u7i8"`
	Text    string                `json:"text" example:"Which gas do plants absorb?"`
	Input   string                `json:"input" example:"radio"`
	Options []SheetOptionResponse `json:"options"`
}

type PreviewResponse struct {
	Title     string                  `json:"title" example:"Knowledge check"`
	Questions []SheetQuestionResponse `json:"questions"`
}

type CheckRequest struct {
	Selections map[string][]string `json:"selections" validate:"required"`
}

type CheckResponse struct {
	Correct int             `json:"correct" example:"2"`
	Total   int             `json:"total" example:"3"`
	Passed  map[string]bool `json:"passed"`
	Message string          `json:"message" example:"correct 2 of 3"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// ensureQuiz attaches an empty quiz to a lesson.
// @Summary      Create the lesson quiz
// @Description  Gives the lesson an empty quiz titled "New quiz" unless it already has one.
// @Tags         Quiz
// @Produce      json
// @Param        lessonID  path      string  true  "Lesson ID"
// @Success      200       {object}  QuizResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /lessons/{lessonID}/quiz [post]
func (h *Handler) ensureQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := h.lessons.EnsureQuiz(r.PathValue("lessonID"))
	if h.handleServiceError(w, err, "lesson") {
		return
	}
	respondJSON(w, http.StatusOK, newQuizResponse(q))
}

// applyQuizCommand runs one authoring command.
// @Summary      Edit the lesson quiz
// @Description  Applies one authoring command. Commands naming a question or option that no longer exists change nothing and return applied=false.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        lessonID  path      string              true  "Lesson ID"
// @Param        body      body      QuizCommandRequest  true  "Command"
// @Success      200       {object}  QuizCommandResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /lessons/{lessonID}/quiz/commands [post]
func (h *Handler) applyQuizCommand(w http.ResponseWriter, r *http.Request) {
	var req QuizCommandRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	q, applied, err := h.lessons.ApplyQuizCommand(r.PathValue("lessonID"), req.Command())
	if h.handleServiceError(w, err, "lesson") {
		return
	}
	respondJSON(w, http.StatusOK, QuizCommandResponse{Applied: applied, Quiz: newQuizResponse(q)})
}

// previewQuiz returns the quiz as the taker sees it.
// @Summary      Preview the lesson quiz
// @Description  Numbered questions with option texts and input kind; correctness is not included.
// @Tags         Quiz
// @Produce      json
// @Param        lessonID  path      string  true  "Lesson ID"
// @Success      200       {object}  PreviewResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /lessons/{lessonID}/quiz/preview [get]
func (h *Handler) previewQuiz(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.lessons.Preview(r.PathValue("lessonID"))
	if h.handleServiceError(w, err, "lesson") {
		return
	}

	resp := PreviewResponse{
		Title:     sheet.Title,
		Questions: make([]SheetQuestionResponse, len(sheet.Questions)),
	}
	for i, q := range sheet.Questions {
		sq := SheetQuestionResponse{
			Number:  q.Number,
			ID:      q.ID,
			Text:    q.Text,
			Input:   q.Input,
			Options: make([]SheetOptionResponse, len(q.Options)),
		}
		for j, o := range q.Options {
			sq.Options[j] = SheetOptionResponse{ID: o.ID, Text: o.Text}
		}
		resp.Questions[i] = sq
	}
	respondJSON(w, http.StatusOK, resp)
}

// checkQuiz marks a self-test submission.
// @Summary      Check answers
// @Description  A question passes when the selected option ids equal the correct ones, in any order.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        lessonID  path      string        true  "Lesson ID"
// @Param        body      body      CheckRequest  true  "Selected option ids per question id"
// @Success      200       {object}  CheckResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /lessons/{lessonID}/quiz/check [post]
func (h *Handler) checkQuiz(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.lessons.Check(r.PathValue("lessonID"), req.Selections)
	if h.handleServiceError(w, err, "lesson") {
		return
	}
	respondJSON(w, http.StatusOK, CheckResponse{
		Correct: result.Correct,
		Total:   result.Total,
		Passed:  result.Passed,
		Message: fmt.Sprintf("correct %d of %d", result.Correct, result.Total),
	})
}

package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/eduquiz/backend/internal/domain/assessment"
	"github.com/eduquiz/backend/internal/domain/testsession"
	"github.com/eduquiz/backend/internal/service"
	"github.com/eduquiz/backend/internal/transfer"
)

// ── Request / Response types ────────────────────────────────────────────────

// TestCommandRequest is the envelope for one taker command.
type TestCommandRequest struct {
	Type     string `json:"type" validate:"required,oneof=select advance retreat continue" example:"select"`
	AnswerID string `json:"answer_id,omitempty" example:"b"`
	Checked  bool   `json:"checked,omitempty" example:"true"`
}

func (r *TestCommandRequest) Validate() error {
	if r.Type == "select" && r.AnswerID == "" {
		return errors.New("answer_id is required")
	}
	return nil
}

// Command converts the envelope into a typed session command.
func (r *TestCommandRequest) Command() testsession.Command {
	switch r.Type {
	case "select":
		return testsession.SelectAnswer{AnswerID: r.AnswerID, Checked: r.Checked}
	case "advance":
		return testsession.Advance{}
	case "retreat":
		return testsession.Retreat{}
	case "continue":
		return testsession.Continue{}
	}
	return nil
}

type AnswerResponse struct {
	ID   string `json:"id" example:"b"`
	Text string `json:"text" example:"Yes, for more than a week"`
}

type TestQuestionResponse struct {
	ID        int              `json:"id" example:"1"`
	Text      string           `json:"text" example:"Do you have a fever?"`
	Type      string           `json:"type" example:"single"`
	InputKind string           `json:"input_kind" example:"radio"`
	Answers   []AnswerResponse `json:"answers"`
}

type TestResponse struct {
	SessionID   string                 `json:"session_id" example:"6f1c2b9e-8d4a-4c1e-9a43-1d2f3e4a5b6c"`
	Phase       string                 `json:"phase" example:"presenting"`
	Index       int                    `json:"index" example:"0"`
	Total       int                    `json:"total" example:"5"`
	Progress    float64                `json:"progress" example:"20"`
	Question    *TestQuestionResponse  `json:"question,omitempty"`
	Selection   []string               `json:"selection"`
	Explanation string                 `json:"explanation,omitempty" example:"The correct answer is highlighted"`
	Exit        bool                   `json:"exit,omitempty"`
	Result      *assessment.TestResult `json:"result,omitempty"`
}

type ResultResponse struct {
	Result     assessment.TestResult `json:"result"`
	DoctorLink string                `json:"doctor_link,omitempty" example:"https://example.com/appointment"`
}

func newTestResponse(v service.TestView) TestResponse {
	resp := TestResponse{
		SessionID:   v.SessionID,
		Phase:       string(v.Phase),
		Index:       v.Index,
		Total:       v.Total,
		Progress:    v.Progress,
		Selection:   v.Selection,
		Explanation: v.Explanation,
		Exit:        v.Exit,
		Result:      v.Result,
	}
	if resp.Selection == nil {
		resp.Selection = []string{}
	}
	if v.Question != nil {
		q := &TestQuestionResponse{
			ID:        v.Question.ID,
			Text:      v.Question.Text,
			Type:      v.Question.Type,
			InputKind: v.Question.InputKind,
			Answers:   make([]AnswerResponse, len(v.Question.Answers)),
		}
		for i, a := range v.Question.Answers {
			q.Answers[i] = AnswerResponse{ID: a.ID, Text: a.Text}
		}
		resp.Question = q
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getConfig returns the disease information and quiz.
// @Summary      Get the test configuration
// @Description  Loads the disease description, quiz and scoring table from the configured source.
// @Tags         Tests
// @Produce      json
// @Success      200  {object}  assessment.AppConfig
// @Failure      500  {object}  ErrorResponse  "configuration_error"
// @Failure      503  {object}  ErrorResponse  "config_unavailable"
// @Router       /config [get]
func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.tests.Config(r.Context())
	if h.handleServiceError(w, err, "config") {
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

// startTest starts a new test session.
// @Summary      Start a test
// @Tags         Tests
// @Produce      json
// @Success      201  {object}  TestResponse
// @Failure      500  {object}  ErrorResponse  "configuration_error"
// @Failure      503  {object}  ErrorResponse  "config_unavailable"
// @Router       /tests [post]
func (h *Handler) startTest(w http.ResponseWriter, r *http.Request) {
	v, err := h.tests.Start(r.Context())
	if h.handleServiceError(w, err, "test session") {
		return
	}
	respondJSON(w, http.StatusCreated, newTestResponse(v))
}

// getTest returns the current state of a session.
// @Summary      Get a test session
// @Tags         Tests
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  TestResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /tests/{sessionID} [get]
func (h *Handler) getTest(w http.ResponseWriter, r *http.Request) {
	v, err := h.tests.Get(r.PathValue("sessionID"))
	if h.handleServiceError(w, err, "test session") {
		return
	}
	respondJSON(w, http.StatusOK, newTestResponse(v))
}

// dispatchTestCommand runs one taker command.
// @Summary      Answer and navigate
// @Description  select changes the working selection, advance records it and moves on, retreat goes back one question (exit=true on the first), continue skips the explanation.
// @Tags         Tests
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string              true  "Session ID"
// @Param        body       body      TestCommandRequest  true  "Command"
// @Success      200        {object}  TestResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse  "selection locked or session completed"
// @Failure      422        {object}  ErrorResponse  "empty selection"
// @Failure      500        {object}  ErrorResponse  "configuration_error"
// @Router       /tests/{sessionID}/commands [post]
func (h *Handler) dispatchTestCommand(w http.ResponseWriter, r *http.Request) {
	var req TestCommandRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	v, err := h.tests.Dispatch(r.PathValue("sessionID"), req.Command())
	if h.handleServiceError(w, err, "test session") {
		return
	}
	respondJSON(w, http.StatusOK, newTestResponse(v))
}

// getTestResult returns the scored result.
// @Summary      Get the test result
// @Tags         Tests
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  ResultResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse  "not completed"
// @Router       /tests/{sessionID}/result [get]
func (h *Handler) getTestResult(w http.ResponseWriter, r *http.Request) {
	res, err := h.tests.Result(r.PathValue("sessionID"))
	if h.handleServiceError(w, err, "test session") {
		return
	}
	respondJSON(w, http.StatusOK, ResultResponse{Result: res.Result, DoctorLink: res.DoctorLink})
}

// exportTestResult downloads the result as a file.
// @Summary      Download the test result
// @Tags         Tests
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  assessment.TestResult
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse  "not completed"
// @Router       /tests/{sessionID}/result/export [get]
func (h *Handler) exportTestResult(w http.ResponseWriter, r *http.Request) {
	res, err := h.tests.Result(r.PathValue("sessionID"))
	if h.handleServiceError(w, err, "test session") {
		return
	}

	var buf bytes.Buffer
	if err := transfer.ExportResult(&buf, res.Result); err != nil {
		h.logger.Error("result export failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to export result")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+transfer.ResultFilename)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// restartTest discards a session and starts a new one.
// @Summary      Restart a test
// @Description  The old session and its answers are discarded; the response describes the new session.
// @Tags         Tests
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      201        {object}  TestResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /tests/{sessionID}/restart [post]
func (h *Handler) restartTest(w http.ResponseWriter, r *http.Request) {
	v, err := h.tests.Restart(r.Context(), r.PathValue("sessionID"))
	if h.handleServiceError(w, err, "test session") {
		return
	}
	respondJSON(w, http.StatusCreated, newTestResponse(v))
}

// abandonTest discards a session.
// @Summary      Abandon a test
// @Tags         Tests
// @Param        sessionID  path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /tests/{sessionID} [delete]
func (h *Handler) abandonTest(w http.ResponseWriter, r *http.Request) {
	err := h.tests.Abandon(r.PathValue("sessionID"))
	if h.handleServiceError(w, err, "test session") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

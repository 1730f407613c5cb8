package api

import (
	"errors"
	"net/http"

	"github.com/eduquiz/backend/internal/domain/lesson"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateLessonRequest struct {
	Title string `json:"title,omitempty" validate:"max=200" example:"Photosynthesis"`
}

type UpdateLessonRequest struct {
	Title   string `json:"title" validate:"max=200" example:"Photosynthesis"`
	Content string `json:"content" example:"<p>Plants turn light into sugar.</p>"`
}

func (r *UpdateLessonRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

type LessonSummary struct {
	ID            string `json:"id" example:"k3j4h5g6f7d8s9a0"`
	Title         string `json:"title" example:"Photosynthesis"`
	HasQuiz       bool   `json:"has_quiz" example:"true"`
	QuestionCount int    `json:"question_count" example:"3"`
}

type LessonResponse struct {
	ID      string        `json:"id" example:"k3j4h5g6f7d8s9a0"`
	Title   string        `json:"title" example:"Photosynthesis"`
	Content string        `json:"content" example:"<p>Start editing...</p>"`
	Quiz    *QuizResponse `json:"quiz"`
}

type StatsResponse struct {
	Lessons int `json:"lessons" example:"4"`
	Quizzes int `json:"quizzes" example:"2"`
}

func newLessonResponse(l *lesson.Lesson) LessonResponse {
	resp := LessonResponse{
		ID:      l.ID,
		Title:   l.Title,
		Content: l.Content,
	}
	if l.Quiz != nil {
		q := newQuizResponse(l.Quiz)
		resp.Quiz = &q
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listLessons lists all lessons.
// @Summary      List lessons
// @Description  Returns every lesson in collection order, without content.
// @Tags         Lessons
// @Produce      json
// @Success      200  {array}  LessonSummary
// @Router       /lessons [get]
func (h *Handler) listLessons(w http.ResponseWriter, r *http.Request) {
	lessons := h.lessons.List()

	response := make([]LessonSummary, len(lessons))
	for i, l := range lessons {
		response[i] = LessonSummary{
			ID:      l.ID,
			Title:   l.Title,
			HasQuiz: l.Quiz != nil,
		}
		if l.Quiz != nil {
			response[i].QuestionCount = len(l.Quiz.Questions)
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// createLesson creates a lesson with default content.
// @Summary      Create a lesson
// @Description  Appends a new lesson. An empty title becomes "New lesson".
// @Tags         Lessons
// @Accept       json
// @Produce      json
// @Param        body  body      CreateLessonRequest  false  "Lesson to create"
// @Success      201   {object}  LessonResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /lessons [post]
func (h *Handler) createLesson(w http.ResponseWriter, r *http.Request) {
	var req CreateLessonRequest
	if r.ContentLength != 0 && !decodeAndValidate(w, r, &req) {
		return
	}

	l := h.lessons.Create(req.Title)
	respondJSON(w, http.StatusCreated, newLessonResponse(l))
}

// getLesson returns one lesson with content and quiz.
// @Summary      Get a lesson
// @Tags         Lessons
// @Produce      json
// @Param        lessonID  path      string  true  "Lesson ID"
// @Success      200       {object}  LessonResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /lessons/{lessonID} [get]
func (h *Handler) getLesson(w http.ResponseWriter, r *http.Request) {
	l, err := h.lessons.Get(r.PathValue("lessonID"))
	if h.handleServiceError(w, err, "lesson") {
		return
	}
	respondJSON(w, http.StatusOK, newLessonResponse(l))
}

// updateLesson replaces a lesson's title and content.
// @Summary      Update a lesson
// @Tags         Lessons
// @Accept       json
// @Produce      json
// @Param        lessonID  path      string               true  "Lesson ID"
// @Param        body      body      UpdateLessonRequest  true  "New title and content"
// @Success      200       {object}  LessonResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /lessons/{lessonID} [put]
func (h *Handler) updateLesson(w http.ResponseWriter, r *http.Request) {
	var req UpdateLessonRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	l, err := h.lessons.Update(r.PathValue("lessonID"), req.Title, req.Content)
	if h.handleServiceError(w, err, "lesson") {
		return
	}
	respondJSON(w, http.StatusOK, newLessonResponse(l))
}

// deleteLesson removes a lesson.
// @Summary      Delete a lesson
// @Description  The last remaining lesson cannot be deleted.
// @Tags         Lessons
// @Param        lessonID  path  string  true  "Lesson ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse  "last lesson"
// @Router       /lessons/{lessonID} [delete]
func (h *Handler) deleteLesson(w http.ResponseWriter, r *http.Request) {
	err := h.lessons.Delete(r.PathValue("lessonID"))
	if h.handleServiceError(w, err, "lesson") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// getStats returns collection counters.
// @Summary      Lesson statistics
// @Description  Number of lessons and of lessons whose quiz has at least one question.
// @Tags         Lessons
// @Produce      json
// @Success      200  {object}  StatsResponse
// @Router       /stats [get]
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	s := h.lessons.Stats()
	respondJSON(w, http.StatusOK, StatsResponse{Lessons: s.Lessons, Quizzes: s.Quizzes})
}

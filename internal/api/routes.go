package api

import "net/http"

// RegisterRoutes wires every handler onto mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Lessons
	mux.HandleFunc("GET /lessons", h.listLessons)
	mux.HandleFunc("POST /lessons", h.createLesson)
	mux.HandleFunc("GET /lessons/{lessonID}", h.getLesson)
	mux.HandleFunc("PUT /lessons/{lessonID}", h.updateLesson)
	mux.HandleFunc("DELETE /lessons/{lessonID}", h.deleteLesson)
	mux.HandleFunc("GET /stats", h.getStats)

	// Quiz authoring
	mux.HandleFunc("POST /lessons/{lessonID}/quiz", h.ensureQuiz)
	mux.HandleFunc("POST /lessons/{lessonID}/quiz/commands", h.applyQuizCommand)
	mux.HandleFunc("GET /lessons/{lessonID}/quiz/preview", h.previewQuiz)
	mux.HandleFunc("POST /lessons/{lessonID}/quiz/check", h.checkQuiz)

	// Export / import
	mux.HandleFunc("GET /export", h.exportAll)
	mux.HandleFunc("POST /import", h.importAll)

	// Test taking
	mux.HandleFunc("GET /config", h.getConfig)
	mux.HandleFunc("POST /tests", h.startTest)
	mux.HandleFunc("GET /tests/{sessionID}", h.getTest)
	mux.HandleFunc("DELETE /tests/{sessionID}", h.abandonTest)
	mux.HandleFunc("POST /tests/{sessionID}/commands", h.dispatchTestCommand)
	mux.HandleFunc("GET /tests/{sessionID}/result", h.getTestResult)
	mux.HandleFunc("GET /tests/{sessionID}/result/export", h.exportTestResult)
	mux.HandleFunc("POST /tests/{sessionID}/restart", h.restartTest)
}

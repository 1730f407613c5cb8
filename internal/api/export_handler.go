package api

import (
	"bytes"
	"net/http"

	"github.com/eduquiz/backend/internal/transfer"
)

// ── Request / Response types ────────────────────────────────────────────────

type ImportResult struct {
	LessonsImported int `json:"lessons_imported" example:"4"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// exportAll downloads the whole lesson collection.
// @Summary      Export lessons
// @Description  Downloads every lesson with its quiz as one JSON backup document.
// @Tags         Transfer
// @Produce      json
// @Success      200  {object}  transfer.ExportData
// @Failure      500  {object}  ErrorResponse
// @Router       /export [get]
func (h *Handler) exportAll(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.lessons.Export(&buf); err != nil {
		h.logger.Error("export failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to export lessons")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+transfer.BackupFilename)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// importAll replaces the lesson collection with an uploaded backup.
// @Summary      Import lessons
// @Description  Replaces every lesson with the content of a backup document. Nothing changes if the document is invalid.
// @Tags         Transfer
// @Accept       json
// @Produce      json
// @Param        body  body      transfer.ExportData  true  "Backup document"
// @Success      200   {object}  ImportResult
// @Failure      400   {object}  ErrorResponse
// @Router       /import [post]
func (h *Handler) importAll(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)

	n, err := h.lessons.Import(body)
	if h.handleServiceError(w, err, "import") {
		return
	}
	respondJSON(w, http.StatusOK, ImportResult{LessonsImported: n})
}

package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"docufill/internal/export"
	"docufill/internal/service"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DocumentHandler handles final document download and placeholder exports.
type DocumentHandler struct {
	sessionService service.SessionService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(sessionService service.SessionService) *DocumentHandler {
	return &DocumentHandler{sessionService: sessionService}
}

// Download handles GET /api/v1/sessions/:id/document
// @Summary Download the completed document
// @Description Renders the filled .docx; only available once every placeholder has a value
// @Tags documents
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Success 200 {file} binary "Completed document"
// @Failure 404 {object} APIResponse "Session not found or expired"
// @Failure 409 {object} APIResponse "Placeholders still unfilled"
// @Security BearerAuth
// @Router /sessions/{id}/document [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := extractSessionID(c)
	if !ok {
		return
	}

	rendered, filename, err := h.sessionService.Render(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, docxContentType, rendered)
}

// Preview handles GET /api/v1/sessions/:id/document/preview
// @Summary Preview the completed document
// @Description Returns the opening paragraphs of the rendered document; gated like the download
// @Tags documents
// @Produce json
// @Success 200 {object} APIResponse "Rendered paragraph texts"
// @Failure 404 {object} APIResponse "Session not found or expired"
// @Failure 409 {object} APIResponse "Placeholders still unfilled"
// @Security BearerAuth
// @Router /sessions/{id}/document/preview [get]
func (h *DocumentHandler) Preview(c *gin.Context) {
	id, ok := extractSessionID(c)
	if !ok {
		return
	}

	paragraphs, err := h.sessionService.Preview(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"paragraphs": paragraphs})
}

// ExportCSV handles GET /api/v1/sessions/:id/export/csv
// @Summary Export the placeholder table as CSV
// @Tags documents
// @Produce text/csv
// @Success 200 {file} binary "Placeholder table"
// @Failure 404 {object} APIResponse "Session not found or expired"
// @Security BearerAuth
// @Router /sessions/{id}/export/csv [get]
func (h *DocumentHandler) ExportCSV(c *gin.Context) {
	id, ok := extractSessionID(c)
	if !ok {
		return
	}

	session, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	buf.Write(export.BOM)
	w := export.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WritePlaceholders(session.Placeholders); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(session.DocumentName, "csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX handles GET /api/v1/sessions/:id/export/xlsx
// @Summary Export the placeholder table as XLSX
// @Tags documents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "Placeholder table"
// @Failure 404 {object} APIResponse "Session not found or expired"
// @Security BearerAuth
// @Router /sessions/{id}/export/xlsx [get]
func (h *DocumentHandler) ExportXLSX(c *gin.Context) {
	id, ok := extractSessionID(c)
	if !ok {
		return
	}

	session, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, session.Placeholders); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(session.DocumentName, "xlsx")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

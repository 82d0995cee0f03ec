package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flowcase/internal/csvexport"
	"flowcase/internal/domain"
	"flowcase/internal/service"
	"flowcase/internal/xlsxexport"
)

// ExtractionHandler handles extraction run endpoints.
type ExtractionHandler struct {
	extractionService service.ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractionService service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService}
}

// Extract handles POST /api/v1/extractions. It accepts one multipart file
// (.txt, .md, .markdown) and runs a synchronous extraction.
func (h *ExtractionHandler) Extract(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.extractionService.ExtractFromUpload(c.Request.Context(), &service.ExtractInput{
		FileName: header.Filename,
		Size:     header.Size,
		File:     file,
	})
	if err != nil {
		h.handleExtractError(c, err)
		return
	}

	RespondCreated(c, result, result.Warning)
}

// handleExtractError keeps extraction failures verbatim: anything that is not
// a known domain error surfaces with its own message.
func (h *ExtractionHandler) handleExtractError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFileType),
		errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrMissingAPIKey),
		errors.Is(err, domain.ErrNoStructuredResponse):
		HandleError(c, err)
	default:
		RespondError(c, http.StatusBadGateway, "EXTRACTION_FAILED", err.Error())
	}
}

// List handles GET /api/v1/extractions.
func (h *ExtractionHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	runs, total, err := h.extractionService.ListRuns(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, runs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/extractions/:id.
func (h *ExtractionHandler) GetByID(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}
	result, err := h.extractionService.GetRun(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// ExportCSV handles GET /api/v1/extractions/:id/export/csv. The body is a
// UTF-8 BOM followed by a 5-column CSV.
func (h *ExtractionHandler) ExportCSV(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}
	result, err := h.extractionService.GetRun(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(result.Run.DocumentName)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteScenarios(result.Scenarios); err != nil {
		return
	}
	w.Flush()
}

// ExportXLSX handles GET /api/v1/extractions/:id/export/xlsx.
func (h *ExtractionHandler) ExportXLSX(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}
	result, err := h.extractionService.GetRun(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	wb, err := xlsxexport.BuildWorkbook(result.Scenarios)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer func() { _ = wb.Close() }()

	filename := xlsxexport.BuildFilename(result.Run.DocumentName)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)
	_ = wb.Write(c.Writer)
}

// DocumentURL handles GET /api/v1/extractions/:id/document.
func (h *ExtractionHandler) DocumentURL(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}
	url, err := h.extractionService.DocumentURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

func runID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid run id")
		return uuid.Nil, false
	}
	return id, true
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}

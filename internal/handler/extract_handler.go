package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"invex/internal/domain"
	"invex/internal/middleware"
	"invex/internal/service"
)

// InvoiceResponse is the payload of a successful invoice extraction.
type InvoiceResponse struct {
	Issuer domain.IssuerKind     `json:"issuer"`
	Record *domain.InvoiceRecord `json:"record"`
}

// ExtractHandler handles single-document extraction endpoints.
type ExtractHandler struct {
	docService service.DocumentService
	maxBytes   int64
}

// NewExtractHandler creates a new ExtractHandler. Uploads above maxUploadMB are rejected.
func NewExtractHandler(docService service.DocumentService, maxUploadMB int64) *ExtractHandler {
	return &ExtractHandler{docService: docService, maxBytes: maxUploadMB * 1024 * 1024}
}

// Invoice handles POST /api/v1/invoices/extract
func (h *ExtractHandler) Invoice(c *gin.Context) {
	name, data, ok := h.readUpload(c)
	if !ok {
		return
	}

	rec, failure, err := h.docService.Invoice(c.Request.Context(), name, data)
	if err != nil {
		HandleError(c, err)
		return
	}
	if failure != nil {
		code := "EXTRACTION_FAILED"
		if failure.Kind == domain.FailureUnrecognized {
			code = "UNRECOGNIZED_ISSUER"
		}
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"file":       failure.FileName,
			"reason":     failure.Reason,
		}).Info("upload produced no record")
		RespondError(c, http.StatusUnprocessableEntity, code, failure.Reason)
		return
	}

	RespondOK(c, InvoiceResponse{Issuer: rec.Issuer, Record: rec})
}

// Pages handles POST /api/v1/documents/pages
func (h *ExtractHandler) Pages(c *gin.Context) {
	name, data, ok := h.readUpload(c)
	if !ok {
		return
	}

	doc, err := h.docService.Pages(c.Request.Context(), name, data)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// readUpload reads the multipart "file" field. It writes the error response itself and
// returns false when the upload is missing or too large.
func (h *ExtractHandler) readUpload(c *gin.Context) (string, []byte, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return "", nil, false
	}
	defer func() { _ = file.Close() }()

	if h.maxBytes > 0 && header.Size > h.maxBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return "", nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		HandleError(c, fmt.Errorf("reading upload: %w", err))
		return "", nil, false
	}
	return header.Filename, data, true
}

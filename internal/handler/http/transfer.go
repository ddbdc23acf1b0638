package http

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/export"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/service"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/httputil"
)

// DefaultImportMaxBytes bounds an uploaded CSV file when no limit is configured.
const DefaultImportMaxBytes = 5 << 20

// TransferHandler handles CSV import and file export.
type TransferHandler struct {
	imports  *service.ImportService
	exports  *service.ExportService
	maxBytes int64
	logger   *slog.Logger
}

// NewTransferHandler creates a new import/export HTTP handler.
func NewTransferHandler(imports *service.ImportService, exports *service.ExportService, maxBytes int64, logger *slog.Logger) *TransferHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultImportMaxBytes
	}
	return &TransferHandler{
		imports:  imports,
		exports:  exports,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Import handles POST /api/v1/products/import
//
// The CSV is read either from a multipart form field named "file" or from the
// raw request body. The response carries the import result; it is 422 when
// no row could be imported.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	src, closeFn, err := h.source(r)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		httputil.WriteJSON(w, status, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "could not read upload: " + err.Error()},
		})
		return
	}
	defer closeFn()

	result := h.imports.Import(r.Context(), src)

	status := http.StatusOK
	if result.Failed() {
		status = http.StatusUnprocessableEntity
	}
	httputil.WriteJSON(w, status, httputil.Response{Data: result})
}

func (h *TransferHandler) source(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, func() {}, nil
	}

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		return nil, nil, err
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, nil, err
	}
	return file, func() { _ = file.Close() }, nil
}

// Export handles GET /api/v1/products/export
//
// Query parameters: format (csv, json or pdf; default csv) and scope (all,
// filtered or selected; default all).
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rawFormat := q.Get("format")
	if rawFormat == "" {
		rawFormat = string(export.FormatCSV)
	}
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	rawScope := q.Get("scope")
	if rawScope == "" {
		rawScope = string(service.ScopeAll)
	}
	scope, err := service.ParseExportScope(rawScope)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	file, err := h.exports.Export(r.Context(), format, scope)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteFile(w, file.Name, file.ContentType, file.Body)
}

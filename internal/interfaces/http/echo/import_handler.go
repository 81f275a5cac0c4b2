package echo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/contact-import/internal/application/contact"
)

const uploadField = "csv_file"

// uploadStore persists an uploaded file and returns the path the import
// source will later open.
type uploadStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, path string) error
}

type ImportHandler struct {
	uploads  uploadStore
	submit   app.SubmitImport
	list     app.ListImportSummaries
	maxBytes int64
	now      func() time.Time
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func NewImportHandler(uploads uploadStore, submit app.SubmitImport, list app.ListImportSummaries, maxBytes int64) *ImportHandler {
	return &ImportHandler{
		uploads:  uploads,
		submit:   submit,
		list:     list,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

func errorJSON(c echo.Context, status int, code, message string) error {
	return c.JSON(status, apiResponse{Error: &errorBody{Code: code, Message: message}})
}

// UploadContacts stores a multipart CSV upload and queues it for import.
func (h *ImportHandler) UploadContacts(c echo.Context) error {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "missing_file", "multipart field csv_file is required")
	}
	if !app.IsCSVFileName(fh.Filename) {
		return errorJSON(c, http.StatusBadRequest, "invalid_source", "csv_file must be a .csv or .txt file")
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return errorJSON(c, http.StatusRequestEntityTooLarge, "file_too_large",
			fmt.Sprintf("csv_file must not exceed %d bytes", h.maxBytes))
	}

	src, err := fh.Open()
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad_request", "failed to read uploaded file")
	}
	defer src.Close()

	ctx := c.Request().Context()
	originalName := filepath.Base(fh.Filename)
	storedName := fmt.Sprintf("%d_%s_%s", h.now().Unix(), uuid.NewString(), originalName)
	storedPath, err := h.uploads.Save(ctx, storedName, src, fh.Size)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "internal_error", "failed to store uploaded file")
	}

	out, err := h.submit.Execute(ctx, app.SubmitImportInput{
		FilePath: storedPath,
		FileName: originalName,
	})
	if err != nil {
		// no run will ever read the stored file
		if rmErr := h.uploads.Remove(context.WithoutCancel(ctx), storedPath); rmErr != nil {
			c.Logger().Warnf("failed to remove rejected upload %s: %v", storedPath, rmErr)
		}

		switch {
		case errors.Is(err, app.ErrInvalidImportSource):
			return errorJSON(c, http.StatusBadRequest, "invalid_source", "csv_file must be a .csv or .txt file")
		case errors.Is(err, app.ErrQueueFull), errors.Is(err, app.ErrWorkerStopped):
			return errorJSON(c, http.StatusServiceUnavailable, "queue_unavailable", "import queue is busy, retry later")
		default:
			return errorJSON(c, http.StatusInternalServerError, "internal_error", "failed to enqueue import run")
		}
	}

	return c.JSON(http.StatusAccepted, apiResponse{Data: out})
}

// ListImports returns import summaries, newest first.
func (h *ImportHandler) ListImports(c echo.Context) error {
	in := app.ListImportSummariesInput{FileName: c.QueryParam("file_name")}

	if raw := c.QueryParam("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid_since", "since must be an RFC3339 timestamp")
		}
		in.Since = since
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return errorJSON(c, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
		}
		in.Limit = limit
	}

	out, err := h.list.Execute(c.Request().Context(), in)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "internal_error", "failed to list imports")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/luxserv365/concierge/internal/application"
	"github.com/luxserv365/concierge/pkg/response"
	"github.com/luxserv365/concierge/pkg/storage"
	"github.com/luxserv365/concierge/pkg/validation"
)

// bindError answers a failed ShouldBind: rule violations are 422 with a
// readable message, anything else (malformed body) is 400.
func bindError(c *gin.Context, err error, labels map[string]string) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, response.ErrorResponse{Error: validation.Message(err, labels)})
		return
	}
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
}

func serviceError(c *gin.Context, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, response.ErrorResponse{Error: verr.Msg})
	case errors.Is(err, application.ErrInvalidStatus),
		errors.Is(err, application.ErrInvalidPriority):
		c.JSON(http.StatusUnprocessableEntity, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrNoChanges),
		errors.Is(err, application.ErrBulkNothingToApply),
		errors.Is(err, application.ErrNoPhotos),
		errors.Is(err, application.ErrTooManyPhotos):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrRequestNotFound),
		errors.Is(err, application.ErrMessageNotFound),
		errors.Is(err, application.ErrPropertyNotFound),
		errors.Is(err, application.ErrFileNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, application.ErrOwnerNotFound):
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrUnsupportedMedia):
		c.JSON(http.StatusUnsupportedMediaType, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrStorage),
		errors.Is(err, application.ErrMailDelivery):
		slog.Error("upstream failure", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Internal server error"})
	}
}

// formFiles opens the files posted under field. The returned closer must be
// called once the uploads have been consumed.
func formFiles(c *gin.Context, field string) ([]storage.Upload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	headers := form.File[field]
	return openUploads(headers)
}

func formFile(c *gin.Context, field string) (*storage.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	uploads, closeAll, err := openUploads([]*multipart.FileHeader{fh})
	if err != nil {
		return nil, closeAll, err
	}
	return &uploads[0], closeAll, nil
}

func openUploads(headers []*multipart.FileHeader) ([]storage.Upload, func(), error) {
	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	uploads := make([]storage.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		files = append(files, f)
		uploads = append(uploads, storage.Upload{Filename: fh.Filename, Size: fh.Size, Body: f})
	}
	return uploads, closeAll, nil
}

func streamFile(c *gin.Context, rc io.ReadCloser, obj storage.Object) {
	defer rc.Close()
	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, rc, map[string]string{
		"Cache-Control":          "public, max-age=86400",
		"X-Content-Type-Options": "nosniff",
	})
}

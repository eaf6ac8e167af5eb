package httpv1

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	logginghelper "github.com/Egor213/LogiStat/internal/controller/common/logging"
	"github.com/Egor213/LogiStat/internal/controller/validators"
	"github.com/Egor213/LogiStat/internal/domain"
	"github.com/Egor213/LogiStat/internal/repo/repotypes"
	"github.com/Egor213/LogiStat/internal/service"
	errorsUtils "github.com/Egor213/LogiStat/pkg/errors"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

const (
	formField = "logfile"
	source    = "http"
)

type UploadController struct {
	statsService service.Stats
	rules        validators.UploadRules
	stagingDir   string
}

func NewUploadController(s service.Stats, rules validators.UploadRules, stagingDir string) *UploadController {
	return &UploadController{
		statsService: s,
		rules:        rules,
		stagingDir:   stagingDir,
	}
}

func (c *UploadController) Upload(ctx echo.Context) error {
	fh, err := ctx.FormFile(formField)
	if err != nil {
		var httpErr *echo.HTTPError
		switch {
		case isBodyTooLarge(err):
			logginghelper.LogUploadFailed(source, "", err)
			return ctx.JSON(http.StatusBadRequest, failure("File upload error", validators.ErrFileTooLarge))
		case errors.As(err, &httpErr):
			return err
		case errors.Is(err, http.ErrMissingFile):
			return ctx.JSON(http.StatusBadRequest, failure("No file uploaded", nil))
		default:
			return ctx.JSON(http.StatusBadRequest, failure("File upload error", err))
		}
	}

	logginghelper.LogUploadReceived(source, fh.Filename, fh.Size)

	if err := c.rules.ValidateFile(fh.Filename, fh.Size); err != nil {
		logginghelper.LogUploadFailed(source, fh.Filename, err)
		return ctx.JSON(http.StatusBadRequest, failure("File upload error", err))
	}

	stagingPath, err := c.stage(fh)
	if err != nil {
		logginghelper.LogUploadFailed(source, fh.Filename, err)
		if errors.Is(err, validators.ErrNotText) {
			return ctx.JSON(http.StatusBadRequest, failure("File upload error", err))
		}
		return ctx.JSON(http.StatusInternalServerError, failure("Upload failed", err))
	}

	res, err := c.statsService.ProcessUpload(ctx.Request().Context(), domain.UploadInput{
		Filename:    fh.Filename,
		StagingPath: stagingPath,
	})
	if err != nil {
		logginghelper.LogUploadFailed(source, fh.Filename, err)
		return ctx.JSON(http.StatusInternalServerError, failure("Upload failed", err))
	}

	logginghelper.LogUploadProcessed(source, res)

	return ctx.JSON(http.StatusOK, uploadResponse{
		Success:  true,
		Stats:    res.Stats,
		Filename: res.Filename,
		JSONFile: res.JSONFile,
		S3Key:    res.ObjectKey,
	})
}

func (c *UploadController) ReadURL(ctx echo.Context) error {
	filename := ctx.QueryParam("filename")
	if filename == "" {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "Missing filename"})
	}

	url, err := c.statsService.ReadURL(ctx.Request().Context(), filename)
	if err != nil {
		log.WithField("filename", filename).Errorf("Failed to issue read URL: %v", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}

	return ctx.JSON(http.StatusOK, urlResponse{URL: url})
}

func (c *UploadController) ListUploads(ctx echo.Context) error {
	filter, err := uploadFilterFromQuery(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	uploads, err := c.statsService.ListUploads(ctx.Request().Context(), filter)
	if err != nil {
		log.Errorf("Failed to list uploads: %v", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
	if uploads == nil {
		uploads = []domain.Upload{}
	}

	return ctx.JSON(http.StatusOK, uploadsResponse{Uploads: uploads})
}

func uploadFilterFromQuery(ctx echo.Context) (repotypes.UploadFilter, error) {
	filter := repotypes.UploadFilter{Filename: ctx.QueryParam("filename")}

	if v := ctx.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return filter, errors.New("limit must be a non-negative integer")
		}
		filter.Limit = limit
	}

	for param, dst := range map[string]*time.Time{"from": &filter.From, "to": &filter.To} {
		v := ctx.QueryParam(param)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errors.New(param + " must be an RFC3339 timestamp")
		}
		*dst = t
	}

	return filter, nil
}

// stage copies the upload into the staging dir under a random name after
// checking that it starts like text.
func (c *UploadController) stage(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", errorsUtils.WrapPathErr(err)
	}
	defer src.Close()

	head := make([]byte, validators.SniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", errorsUtils.WrapPathErr(err)
	}
	head = head[:n]

	if err := validators.ValidateContent(head); err != nil {
		return "", err
	}

	if err := os.MkdirAll(c.stagingDir, 0o755); err != nil {
		return "", errorsUtils.WrapPathErr(err)
	}

	dstPath := filepath.Join(c.stagingDir, uuid.NewString())
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", errorsUtils.WrapPathErr(err)
	}

	_, err = io.Copy(dst, io.MultiReader(bytes.NewReader(head), src))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dstPath)
		return "", errorsUtils.WrapPathErr(err)
	}

	return dstPath, nil
}

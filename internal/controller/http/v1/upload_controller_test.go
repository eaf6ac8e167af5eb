package httpv1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	httpv1 "github.com/Egor213/LogiStat/internal/controller/http/v1"
	"github.com/Egor213/LogiStat/internal/controller/validators"
	"github.com/Egor213/LogiStat/internal/domain"
	service_mock "github.com/Egor213/LogiStat/internal/mocks/service"
	"github.com/Egor213/LogiStat/internal/repo/repotypes"
	"github.com/Egor213/LogiStat/internal/service"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const logContent = "[2024-01-01T10:00:00Z] INFO User alice logged in\n"

func newRouter(t *testing.T, stats service.Stats, stagingDir string) *echo.Echo {
	t.Helper()
	e := echo.New()
	httpv1.ConfigureRouter(e, &service.Services{Stats: stats}, httpv1.RouterConfig{
		Upload: validators.UploadRules{
			MaxSize:           1024,
			AllowedExtensions: []string{".log", ".txt"},
		},
		StagingDir:  stagingDir,
		CORSOrigins: []string{"http://localhost:3000"},
	})
	return e
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, w.WriteField("note", "nothing attached"))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUploadController_Upload(t *testing.T) {
	type mockBehavior func(s *service_mock.MockStats)

	testCases := []struct {
		name         string
		field        string
		filename     string
		content      []byte
		mockBehavior mockBehavior
		wantStatus   int
		wantMessage  string
	}{
		{
			name:     "success",
			field:    "logfile",
			filename: "app.log",
			content:  []byte(logContent),
			mockBehavior: func(s *service_mock.MockStats) {
				s.EXPECT().
					ProcessUpload(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, in domain.UploadInput) (domain.UploadResult, error) {
						data, err := os.ReadFile(in.StagingPath)
						if err != nil {
							return domain.UploadResult{}, err
						}
						if string(data) != logContent || in.Filename != "app.log" {
							return domain.UploadResult{}, errors.New("unexpected staged upload")
						}
						stats := domain.NewStats()
						stats.TotalLines = 1
						stats.InfoCount = 1
						return domain.UploadResult{
							Stats:     stats,
							Filename:  "app.log",
							JSONFile:  "app.json",
							ObjectKey: "results/app.json",
						}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:         "no file",
			mockBehavior: func(s *service_mock.MockStats) {},
			wantStatus:   http.StatusBadRequest,
			wantMessage:  "No file uploaded",
		},
		{
			name:         "unsupported extension",
			field:        "logfile",
			filename:     "app.exe",
			content:      []byte(logContent),
			mockBehavior: func(s *service_mock.MockStats) {},
			wantStatus:   http.StatusBadRequest,
			wantMessage:  "File upload error",
		},
		{
			name:         "binary content",
			field:        "logfile",
			filename:     "app.log",
			content:      []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00},
			mockBehavior: func(s *service_mock.MockStats) {},
			wantStatus:   http.StatusBadRequest,
			wantMessage:  "File upload error",
		},
		{
			name:         "file too large",
			field:        "logfile",
			filename:     "app.log",
			content:      bytes.Repeat([]byte("a"), 2048),
			mockBehavior: func(s *service_mock.MockStats) {},
			wantStatus:   http.StatusBadRequest,
			wantMessage:  "File upload error",
		},
		{
			name:         "body over limit",
			field:        "logfile",
			filename:     "app.log",
			content:      bytes.Repeat([]byte("a"), 2<<20),
			mockBehavior: func(s *service_mock.MockStats) {},
			wantStatus:   http.StatusBadRequest,
			wantMessage:  "File upload error",
		},
		{
			name:     "service error",
			field:    "logfile",
			filename: "app.log",
			content:  []byte(logContent),
			mockBehavior: func(s *service_mock.MockStats) {
				s.EXPECT().
					ProcessUpload(gomock.Any(), gomock.Any()).
					Return(domain.UploadResult{}, service.ErrCannotStoreResult)
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Upload failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			stats := service_mock.NewMockStats(ctrl)
			tc.mockBehavior(stats)

			e := newRouter(t, stats, t.TempDir())

			body, contentType := multipartBody(t, tc.field, tc.filename, tc.content)
			req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
			req.Header.Set(echo.HeaderContentType, contentType)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

			if tc.wantStatus != http.StatusOK {
				assert.Equal(t, false, resp["success"])
				assert.Equal(t, tc.wantMessage, resp["message"])
				return
			}

			assert.Equal(t, true, resp["success"])
			assert.Equal(t, "app.log", resp["filename"])
			assert.Equal(t, "app.json", resp["jsonFile"])
			assert.Equal(t, "results/app.json", resp["s3Key"])
			gotStats, ok := resp["stats"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, float64(1), gotStats["totalLines"])
		})
	}
}

func TestUploadController_Upload_BodyOverLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newRouter(t, service_mock.NewMockStats(ctrl), t.TempDir())

	body, contentType := multipartBody(t, "logfile", "app.log", bytes.Repeat([]byte("a"), 2<<20))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"File upload error","error":"file too large"}`, rec.Body.String())
}

func TestUploadController_ReadURL(t *testing.T) {
	testCases := []struct {
		name         string
		query        string
		mockBehavior func(s *service_mock.MockStats)
		wantStatus   int
		wantBody     string
	}{
		{
			name:  "success",
			query: "?filename=app.log",
			mockBehavior: func(s *service_mock.MockStats) {
				s.EXPECT().ReadURL(gomock.Any(), "app.log").Return("https://signed/app.json", nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"url":"https://signed/app.json"}`,
		},
		{
			name:         "missing filename",
			mockBehavior: func(s *service_mock.MockStats) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `{"error":"Missing filename"}`,
		},
		{
			name:  "storage error",
			query: "?filename=app.log",
			mockBehavior: func(s *service_mock.MockStats) {
				s.EXPECT().ReadURL(gomock.Any(), "app.log").Return("", service.ErrCannotIssueURL)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			stats := service_mock.NewMockStats(ctrl)
			tc.mockBehavior(stats)

			e := newRouter(t, stats, t.TempDir())
			req := httptest.NewRequest(http.MethodGet, "/api/get-log-data"+tc.query, nil)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}

func TestUploadController_ServiceErrorsAreLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hook := logtest.NewGlobal()
	defer hook.Reset()

	stats := service_mock.NewMockStats(ctrl)
	stats.EXPECT().ReadURL(gomock.Any(), "app.log").Return("", service.ErrCannotIssueURL)
	stats.EXPECT().ListUploads(gomock.Any(), gomock.Any()).Return(nil, service.ErrCannotListUploads)

	e := newRouter(t, stats, t.TempDir())

	for _, target := range []string{"/api/get-log-data?filename=app.log", "/api/uploads"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	}

	var messages []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.ErrorLevel {
			messages = append(messages, entry.Message)
		}
	}
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0], service.ErrCannotIssueURL.Error())
	assert.Contains(t, messages[1], service.ErrCannotListUploads.Error())
}

func TestUploadController_ListUploads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stats := service_mock.NewMockStats(ctrl)
	e := newRouter(t, stats, t.TempDir())

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	stats.EXPECT().
		ListUploads(gomock.Any(), repotypes.UploadFilter{Filename: "app.log", From: from, Limit: 5}).
		Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/uploads?filename=app.log&limit=5&from=2024-01-01T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"uploads":[]}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/uploads?limit=-1", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/uploads?to=yesterday", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CORS(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newRouter(t, service_mock.NewMockStats(ctrl), t.TempDir())

	req := httptest.NewRequest(http.MethodOptions, "/api/upload", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodPost)
}

func TestRouter_Healthz(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newRouter(t, service_mock.NewMockStats(ctrl), t.TempDir())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

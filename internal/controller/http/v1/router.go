package httpv1

import (
	"net/http"

	"github.com/Egor213/LogiStat/internal/controller/validators"
	"github.com/Egor213/LogiStat/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// multipart framing around the file itself
const multipartOverhead = 1 << 20

// ArtifactStore serves artifacts behind signed URLs; only the local storage
// driver provides one.
type ArtifactStore interface {
	Verify(key, expires, signature string) error
	Path(key string) (string, error)
}

type RouterConfig struct {
	Upload      validators.UploadRules
	StagingDir  string
	CORSOrigins []string
	Artifacts   ArtifactStore
}

func ConfigureRouter(handler *echo.Echo, services *service.Services, cfg RouterConfig) {
	handler.HideBanner = true
	handler.Use(middleware.Recover())
	handler.Use(requestLogger())
	handler.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	api := handler.Group("/api")

	uc := NewUploadController(services.Stats, cfg.Upload, cfg.StagingDir)
	uploadMiddleware := []echo.MiddlewareFunc{}
	if cfg.Upload.MaxSize > 0 {
		uploadMiddleware = append(uploadMiddleware, uploadBodyLimit(cfg.Upload.MaxSize+multipartOverhead))
	}
	api.POST("/upload", uc.Upload, uploadMiddleware...)
	api.GET("/get-log-data", uc.ReadURL)
	api.GET("/uploads", uc.ListUploads)

	if cfg.Artifacts != nil {
		ac := NewArtifactController(cfg.Artifacts)
		api.GET("/artifacts/*", ac.Get)
	}

	handler.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
}

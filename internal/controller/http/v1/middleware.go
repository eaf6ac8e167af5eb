package httpv1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Egor213/LogiStat/internal/controller/validators"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(log.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("Request failed")
				return nil
			}
			entry.Debug("Request handled")
			return nil
		},
	})
}

// uploadBodyLimit answers an oversized upload body like an oversized file.
func uploadBodyLimit(limit int64) echo.MiddlewareFunc {
	limiter := middleware.BodyLimit(strconv.FormatInt(limit, 10) + "B")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		h := limiter(next)
		return func(c echo.Context) error {
			err := h(c)
			if isBodyTooLarge(err) {
				return c.JSON(http.StatusBadRequest, failure("File upload error", validators.ErrFileTooLarge))
			}
			return err
		}
	}
}

func isBodyTooLarge(err error) bool {
	var httpErr *echo.HTTPError
	return errors.As(err, &httpErr) && httpErr.Code == http.StatusRequestEntityTooLarge
}

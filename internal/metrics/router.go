package metrics

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

const httpSubsystem = "logistat_http"

// ConfigureRouter mounts the scrape endpoint on the metrics server.
func ConfigureRouter(handler *echo.Echo) {
	handler.GET("/metrics", echoprometheus.NewHandler())
}

// InstrumentAPI records request counts and latencies of the API server.
// It registers collectors globally, so call it once per process.
func InstrumentAPI(handler *echo.Echo) {
	handler.Use(echoprometheus.NewMiddleware(httpSubsystem))
}

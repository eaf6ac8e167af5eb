package httpv1

import (
	"errors"
	"net/http"
	"net/url"
	"os"

	"github.com/Egor213/LogiStat/internal/storage"
	"github.com/labstack/echo/v4"
)

type ArtifactController struct {
	store ArtifactStore
}

func NewArtifactController(store ArtifactStore) *ArtifactController {
	return &ArtifactController{store: store}
}

// Get serves an artifact behind a URL issued by the local storage driver.
func (c *ArtifactController) Get(ctx echo.Context) error {
	key, err := url.PathUnescape(ctx.Param("*"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid key"})
	}

	err = c.store.Verify(key, ctx.QueryParam("expires"), ctx.QueryParam("signature"))
	switch {
	case errors.Is(err, storage.ErrURLExpired):
		return ctx.JSON(http.StatusForbidden, errorResponse{Error: "URL expired"})
	case err != nil:
		return ctx.JSON(http.StatusForbidden, errorResponse{Error: "Invalid signature"})
	}

	path, err := c.store.Path(key)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid key"})
	}
	if _, err := os.Stat(path); err != nil {
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: "Not found"})
	}

	ctx.Response().Header().Set(echo.HeaderContentType, storage.ContentTypeJSON)
	return ctx.File(path)
}

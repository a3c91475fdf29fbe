package search

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/andraskurtos/movie-recommender/internal/catalog"
)

// Handlers provides HTTP handlers for movie search.
type Handlers struct {
	service *Service
}

// NewHandlers creates new search handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the search route on the movies group.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
}

// Search returns ranked movies for a free-text query.
// GET /api/v1/movies/search?query=...
func (h *Handlers) Search(c echo.Context) error {
	results, err := h.service.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if results == nil {
		results = []catalog.Movie{}
	}
	return c.JSON(http.StatusOK, results)
}

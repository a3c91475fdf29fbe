package genres

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handlers provides HTTP handlers for genre operations.
type Handlers struct {
	service *Service
}

// NewHandlers creates new genre handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the genre routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
}

// List returns all genres.
// GET /api/v1/genres
func (h *Handlers) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if list == nil {
		list = []Genre{}
	}
	return c.JSON(http.StatusOK, list)
}

// Get returns a single genre.
// GET /api/v1/genres/:id
func (h *Handlers) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	genre, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrGenreNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, genre)
}

// Create creates a genre, resolving TMDB id collisions to the stored row
// with an X-Genre-Status: Existing header.
// POST /api/v1/genres
func (h *Handlers) Create(c echo.Context) error {
	var input CreateGenreInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	genre, existing, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, ErrInvalidGenre) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if existing {
		c.Response().Header().Set("X-Genre-Status", "Existing")
		return c.JSON(http.StatusOK, genre)
	}
	return c.JSON(http.StatusCreated, genre)
}

package recommender

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/andraskurtos/movie-recommender/internal/users"
)

// Handlers provides HTTP handlers for recommendations.
type Handlers struct {
	service *Service
}

// NewHandlers creates new recommendation handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the recommendation routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/:userId", h.Recommend)
}

// Recommend returns predicted ratings reconciled onto catalog entries.
// GET /api/v1/recommendations/:userId
func (h *Handlers) Recommend(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	recs, err := h.service.Recommend(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		// Predictor failures and storage errors are both request-level 500s.
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if recs == nil {
		recs = []RecommendedMovie{}
	}
	return c.JSON(http.StatusOK, recs)
}

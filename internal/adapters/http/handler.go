package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/app"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/domain"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/ratelimit"
)

type Handler struct {
	svc             *app.InterpretationService
	interpretWindow *ratelimit.Window
	dreamsWindow    *ratelimit.Window
}

func NewHandler(svc *app.InterpretationService, interpretWindow, dreamsWindow *ratelimit.Window) *Handler {
	return &Handler{
		svc:             svc,
		interpretWindow: interpretWindow,
		dreamsWindow:    dreamsWindow,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	interpretLimit := RateLimitMiddleware(h.interpretWindow)
	dreamsLimit := RateLimitMiddleware(h.dreamsWindow)

	e.POST("/api/interpret", h.Interpret, interpretLimit)
	e.POST("/api/dreams", h.SaveDream, dreamsLimit)
	e.GET("/api/dreams", h.ListDreams, dreamsLimit)
	e.DELETE("/api/dreams/:id", h.DeleteDream, dreamsLimit)
	e.PATCH("/api/dreams/:id/favorite", h.SetFavorite, dreamsLimit)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Interpret handles POST /api/interpret. Provider failures never surface
// here; after validation the response is always 200 with the canonical shape.
func (h *Handler) Interpret(c echo.Context) error {
	var req InterpretRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	text, err := domain.ValidateDreamText(req.DreamText)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	result, _ := h.svc.Interpret(c.Request().Context(), app.InterpretRequest{
		DreamText:  text,
		UserID:     req.UserID,
		PersonaKey: req.Persona,
		UserName:   req.UserName,
	})

	return c.JSON(http.StatusOK, toInterpretResponse(result))
}

func (h *Handler) SaveDream(c echo.Context) error {
	var req SaveDreamRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrUserIDRequired.Error()})
	}
	text, err := domain.ValidateDreamText(req.DreamText)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	if req.Interpretation == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "interpretation is required"})
	}
	if req.Energy < 0 || req.Energy > 100 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrInvalidEnergy.Error()})
	}

	saved, err := h.svc.SaveDream(c.Request().Context(), domain.Dream{
		UserID:         req.UserID,
		DreamText:      text,
		Interpretation: req.Interpretation,
		Energy:         req.Energy,
		Symbols:        req.Symbols,
		Date:           req.Date,
	})
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, SavedResponse{ID: saved.ID, Message: "dream saved"})
}

func (h *Handler) ListDreams(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrUserIDRequired.Error()})
	}

	dreams, err := h.svc.Dreams(c.Request().Context(), userID)
	if err != nil {
		return mapError(c, err)
	}
	if dreams == nil {
		dreams = []domain.Dream{}
	}
	return c.JSON(http.StatusOK, dreams)
}

func (h *Handler) DeleteDream(c echo.Context) error {
	id := c.Param("id")
	userID := c.QueryParam("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrUserIDRequired.Error()})
	}

	if err := h.svc.DeleteDream(c.Request().Context(), id, userID); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "dream deleted"})
}

func (h *Handler) SetFavorite(c echo.Context) error {
	var req FavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.IsFavorite == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "isFavorite must be a boolean"})
	}

	if err := h.svc.SetFavorite(c.Request().Context(), c.Param("id"), *req.IsFavorite); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "favorite updated"})
}

func mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrStoreDisabled):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrDreamNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

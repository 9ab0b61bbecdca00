package riders

import (
	"errors"
	"net/http"

	"parcel-delivery/internal/middleware"
	"parcel-delivery/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for riders.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new rider handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the rider routes. The review queue and status
// transitions are admin actions; applying and the per-district
// availability listing are public.
func (h *Handler) RegisterRoutes(e *echo.Echo, auth *middleware.Auth) {
	e.POST("/riders", h.CreateRider)
	e.GET("/riders/pending", h.ListPending, auth.RequireCredential(), auth.RequireAdmin())
	e.GET("/riders/active", h.ListActive, auth.RequireCredential(), auth.RequireAdmin())
	e.GET("/riders/available", h.ListAvailable)
	e.PATCH("/riders/:id", h.UpdateStatus, auth.RequireCredential(), auth.RequireAdmin())
}

func (h *Handler) CreateRider(c echo.Context) error {
	var req models.CreateRiderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	rider, err := h.svc.CreateRider(c.Request().Context(), req)
	if err != nil {
		c.Logger().Error("Handler.CreateRider: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to create rider"})
	}
	return c.JSON(http.StatusCreated, rider)
}

func (h *Handler) ListPending(c echo.Context) error {
	ridersFound, err := h.svc.ListPending(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ListPending: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to list pending riders"})
	}
	return c.JSON(http.StatusOK, ridersFound)
}

func (h *Handler) ListActive(c echo.Context) error {
	ridersFound, err := h.svc.ListActive(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ListActive: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to list active riders"})
	}
	return c.JSON(http.StatusOK, ridersFound)
}

func (h *Handler) ListAvailable(c echo.Context) error {
	ridersFound, err := h.svc.ListAvailable(c.Request().Context(), c.QueryParam("district"))
	if err != nil {
		c.Logger().Error("Handler.ListAvailable: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to list available riders"})
	}
	return c.JSON(http.StatusOK, ridersFound)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	riderID := c.Param("id")
	if _, err := uuid.Parse(riderID); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid rider id"})
	}

	var req models.UpdateRiderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	result, err := h.svc.UpdateStatus(c.Request().Context(), riderID, req.Status)
	if err != nil {
		if errors.Is(err, models.ErrInvalidStatus) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid status value"})
		}
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.UpdateRiderStatusResponse{Success: false, ModifiedCount: 0})
		}
		c.Logger().Error("Handler.UpdateStatus: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to update rider"})
	}
	return c.JSON(http.StatusOK, result)
}

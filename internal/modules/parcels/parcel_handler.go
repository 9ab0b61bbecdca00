package parcels

import (
	"errors"
	"net/http"

	"parcel-delivery/internal/middleware"
	"parcel-delivery/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for parcels.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new parcel handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the parcel routes. Listing a caller's parcels is
// self-only; creating and deleting require a verified credential.
func (h *Handler) RegisterRoutes(e *echo.Echo, auth *middleware.Auth) {
	e.GET("/parcels", h.ListParcels, auth.RequireCredential(), auth.RequireSelf())
	e.GET("/parcels/:id", h.GetParcel)
	e.POST("/parcels", h.CreateParcel, auth.RequireCredential())
	e.DELETE("/parcels/:id", h.DeleteParcel, auth.RequireCredential())
}

func (h *Handler) ListParcels(c echo.Context) error {
	filter := models.ParcelFilter{
		CreatedBy:      c.QueryParam("email"),
		PaymentStatus:  c.QueryParam("payment_status"),
		DeliveryStatus: c.QueryParam("delivery_status"),
	}

	parcels, err := h.svc.ListParcels(c.Request().Context(), filter)
	if err != nil {
		if errors.Is(err, models.ErrInvalidStatus) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid status filter"})
		}
		c.Logger().Error("Handler.ListParcels: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to list parcels"})
	}
	return c.JSON(http.StatusOK, parcels)
}

func (h *Handler) GetParcel(c echo.Context) error {
	parcelID := c.Param("id")
	if _, err := uuid.Parse(parcelID); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid parcel id"})
	}

	parcel, err := h.svc.GetParcel(c.Request().Context(), parcelID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "parcel not found"})
		}
		c.Logger().Error("Handler.GetParcel: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to retrieve parcel"})
	}
	return c.JSON(http.StatusOK, parcel)
}

func (h *Handler) CreateParcel(c echo.Context) error {
	var req models.CreateParcelRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	parcel, err := h.svc.CreateParcel(c.Request().Context(), req)
	if err != nil {
		c.Logger().Error("Handler.CreateParcel: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to create parcel"})
	}
	return c.JSON(http.StatusCreated, parcel)
}

func (h *Handler) DeleteParcel(c echo.Context) error {
	parcelID := c.Param("id")
	if _, err := uuid.Parse(parcelID); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid parcel id"})
	}
	callerEmail, _ := c.Get(middleware.ContextKeyEmail).(string)

	result, err := h.svc.DeleteParcel(c.Request().Context(), parcelID, callerEmail)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "parcel not found"})
		}
		if errors.Is(err, models.ErrForbidden) {
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "forbidden access"})
		}
		c.Logger().Error("Handler.DeleteParcel: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to delete parcel"})
	}
	return c.JSON(http.StatusOK, result)
}

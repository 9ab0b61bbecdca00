package payments

import (
	"errors"
	"net/http"

	"parcel-delivery/internal/middleware"
	"parcel-delivery/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for payments.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new payment handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the payment routes. Payment history is self-only;
// confirming a payment requires a verified credential; intent creation is
// called before sign-up completes and stays public, as the client drives
// the gateway flow with its own secret.
func (h *Handler) RegisterRoutes(e *echo.Echo, auth *middleware.Auth) {
	e.GET("/payments", h.ListPayments, auth.RequireCredential(), auth.RequireSelf())
	e.POST("/payments", h.ConfirmPayment, auth.RequireCredential())
	e.POST("/create-payment-intent", h.CreatePaymentIntent)
}

func (h *Handler) ListPayments(c echo.Context) error {
	email := c.QueryParam("email")

	payments, err := h.svc.ListPayments(c.Request().Context(), email)
	if err != nil {
		c.Logger().Error("Handler.ListPayments: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to list payments"})
	}
	return c.JSON(http.StatusOK, payments)
}

func (h *Handler) ConfirmPayment(c echo.Context) error {
	var req models.ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}
	if _, err := uuid.Parse(req.ParcelID); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid parcel id"})
	}

	result, err := h.svc.ConfirmPayment(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "parcel not found"})
		}
		c.Logger().Error("Handler.ConfirmPayment: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to record payment"})
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) CreatePaymentIntent(c echo.Context) error {
	var req models.PaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	secret, err := h.svc.CreatePaymentIntent(c.Request().Context(), req.Amount)
	if err != nil {
		c.Logger().Error("Handler.CreatePaymentIntent: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to create payment intent"})
	}
	return c.JSON(http.StatusOK, models.PaymentIntentResponse{ClientSecret: secret})
}

package users

import (
	"errors"
	"net/http"

	"parcel-delivery/internal/middleware"
	"parcel-delivery/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for users.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new user handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the user routes. Role changes are admin-only;
// registration, search and role lookup are called during sign-in before a
// session exists and stay public.
func (h *Handler) RegisterRoutes(e *echo.Echo, auth *middleware.Auth) {
	e.POST("/users", h.CreateUser)
	e.GET("/users/search", h.SearchUsers)
	e.PATCH("/users/:id/role", h.UpdateRole, auth.RequireCredential(), auth.RequireAdmin())
	e.GET("/users/:email/role", h.GetRole)
}

func (h *Handler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	result, err := h.svc.CreateUser(c.Request().Context(), req)
	if err != nil {
		c.Logger().Error("Handler.CreateUser: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to create user"})
	}
	if !result.Inserted {
		return c.JSON(http.StatusOK, result)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) SearchUsers(c echo.Context) error {
	fragment := c.QueryParam("email")
	if fragment == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "missing email query"})
	}

	found, err := h.svc.SearchUsers(c.Request().Context(), fragment)
	if err != nil {
		c.Logger().Error("Handler.SearchUsers: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to search users"})
	}
	return c.JSON(http.StatusOK, found)
}

func (h *Handler) UpdateRole(c echo.Context) error {
	userID := c.Param("id")
	if _, err := uuid.Parse(userID); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid user id"})
	}

	var req models.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	if err := h.svc.UpdateRole(c.Request().Context(), userID, req.Role); err != nil {
		if errors.Is(err, models.ErrInvalidRole) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "invalid role value"})
		}
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "user not found"})
		}
		c.Logger().Error("Handler.UpdateRole: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to update role"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "user role updated",
		"result":  map[string]int64{"modifiedCount": 1},
	})
}

func (h *Handler) GetRole(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "missing email"})
	}

	role, err := h.svc.GetRoleByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "user not found"})
		}
		c.Logger().Error("Handler.GetRole: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to get role"})
	}
	return c.JSON(http.StatusOK, models.RoleResponse{Role: role})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seniorlearn/bulletin-api/internal/api/metrics"
	"github.com/seniorlearn/bulletin-api/internal/core/domain"
	"github.com/seniorlearn/bulletin-api/internal/core/ports"
)

// IdentityHandler serves registration, login, logout and the profile.
type IdentityHandler struct {
	service ports.IdentityService
}

func NewIdentityHandler(service ports.IdentityService) *IdentityHandler {
	return &IdentityHandler{service: service}
}

// Register creates a new member account.
//
// @Summary      Register a new user
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User registration details"
// @Success      201   {object}  createUserResponse
// @Failure      400   {object}  messageResponse  "validation failure or email already in use"
// @Failure      429   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /createuser [post]
func (h *IdentityHandler) Register(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Age:      req.Age,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, createUserResponse{UserID: id})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      201   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      429   {object}  messageResponse
// @Router       /login [post]
func (h *IdentityHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, loginResponse{Token: token})
}

// Logout revokes the token used for this request.
//
// @Summary      Logout
// @Tags         identity
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /logout [post]
func (h *IdentityHandler) Logout(c echo.Context) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}
	if err := h.service.Logout(c.Request().Context(), session); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Profile returns the authenticated user's account.
//
// @Summary      Current user profile
// @Tags         identity
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  messageResponse  "missing or invalid token"
// @Failure      404  {object}  messageResponse
// @Router       /user/profile [get]
func (h *IdentityHandler) Profile(c echo.Context) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}
	user, err := h.service.Profile(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{User: toUserResponse(user)})
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wholesaleworks/marketplace/internal/hash"
	"github.com/wholesaleworks/marketplace/internal/models"
	"github.com/wholesaleworks/marketplace/internal/store"
	"github.com/wholesaleworks/marketplace/internal/token"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthHandler struct {
	Store     UserStore
	JWTSecret []byte
}

func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Photo    string `json:"photo"`
		Role     string `json:"role"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	user := models.User{
		Email: req.Email,
		Name:  req.Name,
		Photo: req.Photo,
		Role:  req.Role,
	}
	if user.Role == "" {
		user.Role = "buyer"
	}

	// OAuth-style signups carry no password; hash only when one is set.
	if req.Password != "" {
		passwordHash, err := hash.HashPassword(req.Password)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		user.PasswordHash = passwordHash
	}

	if err := h.Store.CreateUser(c.Request().Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			return echo.NewHTTPError(http.StatusConflict, "user already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	signed, exp, err := token.Issue(h.JWTSecret, req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.SetCookie(token.CreateCookie(token.CookieName, signed, "/", exp))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(token.CreateCookie(token.CookieName, "", "/", expired))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

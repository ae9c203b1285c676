package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Hbollas/LashTechBooking/internal/httperr"
	"github.com/Hbollas/LashTechBooking/internal/httpresp"
	"github.com/Hbollas/LashTechBooking/internal/infra/repository"
	"github.com/Hbollas/LashTechBooking/internal/models"
	"github.com/Hbollas/LashTechBooking/internal/timezone"
)

const tokenTTL = 12 * time.Hour

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

type AuthHandler struct {
	users  UserStore
	secret []byte
	clock  timezone.Clock
	log    *slog.Logger
}

func NewAuthHandler(users UserStore, secret string, clock timezone.Clock, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		users:  users,
		secret: []byte(secret),
		clock:  clock,
		log:    log.With(slog.String("component", "auth")),
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email and password are required.")
		return
	}

	ctx := c.Request.Context()

	user, err := h.users.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if !user.Active || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	now := h.clock.Now()
	token, expires, err := h.sign(user, now)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not sign in.")
		return
	}

	if err := h.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		h.log.WarnContext(ctx, "last login update failed", slog.Uint64("user_id", uint64(user.ID)), slog.Any("err", err))
	}

	httpresp.OK(c, LoginResponse{
		User:      *user,
		Token:     token,
		ExpiresAt: expires,
	})
}

func (h *AuthHandler) sign(user *models.User, now time.Time) (string, time.Time, error) {
	expires := now.Add(tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  expires.Unix(),
		"iat":  now.Unix(),
	})
	signed, err := token.SignedString(h.secret)
	return signed, expires, err
}

package app

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dut-ailab/advisor-go/internal/auth"
	"github.com/dut-ailab/advisor-go/internal/chatbot"
	"github.com/dut-ailab/advisor-go/internal/ctxutil"
	apperrors "github.com/dut-ailab/advisor-go/internal/errors"
	"github.com/dut-ailab/advisor-go/internal/logger"
	sentrywrap "github.com/dut-ailab/advisor-go/internal/sentry"
	"github.com/dut-ailab/advisor-go/internal/storage"
)

// msgInternalError is the generic failure reply; graph and model errors
// never leak details to the client.
const msgInternalError = "Hệ thống đang gặp sự cố, bạn vui lòng thử lại sau."

// UserStore is the slice of the storage layer the handlers use.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash, role string) (*storage.User, error)
	GetUserByUsername(ctx context.Context, username string) (*storage.User, error)
	GetUserByID(ctx context.Context, id int64) (*storage.User, error)
	ListUsers(ctx context.Context) ([]storage.User, error)
	UpdateUserRole(ctx context.Context, id int64, role string) error
	DeleteUser(ctx context.Context, id int64) error
}

// Answerer runs one question through the chat pipeline.
type Answerer interface {
	Answer(ctx context.Context, question string) (chatbot.Result, error)
}

// Handlers carries the dependencies of the HTTP endpoints.
type Handlers struct {
	users    UserStore
	tokens   *auth.Manager
	pipeline Answerer
	logger   *logger.Logger
}

// NewHandlers wires the endpoint dependencies.
func NewHandlers(users UserStore, tokens *auth.Manager, pipeline Answerer, log *logger.Logger) *Handlers {
	return &Handlers{users: users, tokens: tokens, pipeline: pipeline, logger: log}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func toUserResponse(u *storage.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Register creates an account with the default user role.
func (h *Handlers) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	username := strings.TrimSpace(req.Username)
	if len(username) < 3 || len(username) > 64 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username must be 3-64 characters"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 6 characters"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), username, hash, auth.RoleUser)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			c.JSON(http.StatusConflict, gin.H{"error": "username is taken"})
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login verifies credentials and issues an access token.
func (h *Handlers) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.users.GetUserByUsername(c.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.serverError(c, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated user's account.
func (h *Handlers) Me(c *gin.Context) {
	userID := ctxutil.GetUserID(c.Request.Context())
	user, err := h.users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
			return
		}
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat answers one question through the full pipeline.
func (h *Handlers) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	res, err := h.pipeline.Answer(c.Request.Context(), strings.TrimSpace(req.Message))
	if err != nil {
		if h.logger != nil {
			h.logger.WithError(err).WithIntent(string(res.Intent)).Error("chat pipeline failed")
		}
		sentrywrap.CaptureExceptionWithContext(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":  res.Reply,
		"intent": string(res.Intent),
	})
}

// ListUsers returns every account. Admin only.
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateUserRole changes one account's role. Admin only.
func (h *Handlers) UpdateUserRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return
	}
	if req.Role != auth.RoleUser && req.Role != auth.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be user or admin"})
		return
	}

	if err := h.users.UpdateUserRole(c.Request.Context(), id, req.Role); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteUser removes one account. Admin only, and admins cannot delete
// themselves.
func (h *Handlers) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if id == ctxutil.GetUserID(c.Request.Context()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete your own account"})
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handlers) serverError(c *gin.Context, err error) {
	if h.logger != nil {
		h.logger.WithError(err).Error("request handling failed")
	}
	sentrywrap.CaptureExceptionWithContext(c.Request.Context(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
}

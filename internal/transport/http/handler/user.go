package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pinboard/internal/app"
	"pinboard/internal/transport/http/response"
)

// UserHandler covers registration and account verification.
type UserHandler struct {
	authService *app.AuthService
}

type RegisterRequest struct {
	Username string `json:"userName" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email,max=128"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

func NewUserHandler(authService *app.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	response.Created(c, "User registration successful", gin.H{
		"id":       user.ID,
		"userName": user.Username,
		"email":    user.Email,
	})
}

func (h *UserHandler) VerifyAccount(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	token := c.Param("token")

	if err := h.authService.VerifyAccount(userID, token); err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Account verified successfully", nil)
}

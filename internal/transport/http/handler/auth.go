package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pinboard/internal/app"
	"pinboard/internal/transport/http/middleware"
	"pinboard/internal/transport/http/response"
)

// AuthHandler covers login, token-mediated password flows, profiles and the
// social graph.
type AuthHandler struct {
	authService *app.AuthService
	userService *app.UserService
}

type LoginRequest struct {
	Username string `json:"userName" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type RecoverPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type UpdateUserRequest struct {
	Username       string `json:"userName" binding:"omitempty,min=3,max=64"`
	Email          string `json:"email" binding:"omitempty,email,max=128"`
	Bio            string `json:"bio" binding:"omitempty,max=512"`
	ProfilePicture string `json:"profilePicture" binding:"omitempty,max=512"`
	Password       string `json:"password" binding:"omitempty,min=8,max=128"`
}

func NewAuthHandler(authService *app.AuthService, userService *app.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.Login(app.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, "", gin.H{
		"accessToken": result.Token,
		"user":        result.User,
	})
}

// Authenticate echoes the account behind the presented access token.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	if user == nil {
		response.Error(c, http.StatusNotFound, "user not found")
		return
	}
	response.OK(c, "User authenticated successfully", user)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Param("userName"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "", profile)
}

func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	actingUserID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.userService.UpdateProfile(id, actingUserID, app.UpdateUserInput{
		Username:       req.Username,
		Email:          req.Email,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
		Password:       req.Password,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "User updated successfully", user)
}

func (h *AuthHandler) RecoverPassword(c *gin.Context) {
	var req RecoverPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.authService.RecoverPassword(c.Request.Context(), req.Email); err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Password reset link sent to email", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	token := c.Param("token")

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.authService.ResetPassword(userID, token, req.Password); err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Password updated successfully", nil)
}

func (h *AuthHandler) Follow(c *gin.Context) {
	targetID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	actingUserID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.userService.Follow(actingUserID, targetID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Following user successful", result)
}

func (h *AuthHandler) Unfollow(c *gin.Context) {
	targetID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	actingUserID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.userService.Unfollow(actingUserID, targetID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "User unfollowed successfully", result)
}

func (h *AuthHandler) Followers(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	followers, err := h.userService.Followers(userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Followers retrieved successfully", gin.H{"followers": followers})
}

func (h *AuthHandler) Following(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	following, err := h.userService.Following(userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Following list retrieved successfully", gin.H{"following": following})
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pinboard/internal/app"
	"pinboard/internal/transport/http/response"
)

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		response.Error(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(parsed), true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

// serviceError maps service sentinels onto the HTTP envelope.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput),
		errors.Is(err, app.ErrEmailExists),
		errors.Is(err, app.ErrUsernameExists),
		errors.Is(err, app.ErrInvalidCredential),
		errors.Is(err, app.ErrAlreadyLiked),
		errors.Is(err, app.ErrCommentLiked),
		errors.Is(err, app.ErrNotLiked),
		errors.Is(err, app.ErrSelfFollow),
		errors.Is(err, app.ErrTagIndex),
		errors.Is(err, app.ErrTokenInvalid),
		errors.Is(err, app.ErrMailDelivery),
		errors.Is(err, app.ErrImageUpload):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrUserNotFound),
		errors.Is(err, app.ErrPinNotFound),
		errors.Is(err, app.ErrCommentNotFound),
		errors.Is(err, app.ErrNoComments):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrNotOwner):
		response.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, app.ErrNotVerified):
		response.Error(c, http.StatusUnauthorized, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "something went wrong, please try again")
	}
}

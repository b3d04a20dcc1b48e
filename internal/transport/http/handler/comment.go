package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pinboard/internal/app"
	"pinboard/internal/transport/http/middleware"
	"pinboard/internal/transport/http/response"
)

type CommentHandler struct {
	commentService *app.CommentService
}

type AddCommentRequest struct {
	Comment string `json:"comment" binding:"required,max=512"`
}

type UpdateCommentRequest struct {
	Comment string `json:"comment" binding:"required,max=512"`
}

func NewCommentHandler(commentService *app.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Add(c *gin.Context) {
	pinID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "comment is missing")
		return
	}

	comment, err := h.commentService.Add(pinID, userID, req.Comment)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Created(c, "Comment created successfully", comment)
}

func (h *CommentHandler) ByPin(c *gin.Context) {
	pinID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.ListByPin(pinID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Comments retrieved successfully", comments)
}

func (h *CommentHandler) Like(c *gin.Context) {
	commentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	comment, err := h.commentService.Like(commentID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Comment liked", comment)
}

func (h *CommentHandler) Dislike(c *gin.Context) {
	commentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	comment, err := h.commentService.Dislike(commentID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Comment disliked", comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	comment, err := h.commentService.UpdateText(commentID, userID, req.Comment)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Comment updated successfully", comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	comment, err := h.commentService.Delete(commentID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Comment deleted", comment)
}

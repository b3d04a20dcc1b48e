package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pinboard/internal/app"
	"pinboard/internal/transport/http/middleware"
	"pinboard/internal/transport/http/response"
)

type SearchHandler struct {
	searchService *app.SearchService
}

func NewSearchHandler(searchService *app.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, http.StatusBadRequest, "search parameter is missing")
		return
	}

	result, err := h.searchService.Search(query)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Search results", result.Flatten())
}

func (h *SearchHandler) Tags(c *gin.Context) {
	tags, fromCache, err := h.searchService.Tags(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}

	message := "Tags retrieved successfully"
	if fromCache {
		message = "Tags retrieved from cache"
	}
	response.OK(c, message, tags)
}

func (h *SearchHandler) DeleteTag(c *gin.Context) {
	pinID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.Error(c, http.StatusBadRequest, "invalid tag index")
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	pin, err := h.searchService.DeleteTag(pinID, userID, index)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Tag deleted", pin)
}

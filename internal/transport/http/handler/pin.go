package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pinboard/internal/app"
	"pinboard/internal/repository"
	"pinboard/internal/transport/http/middleware"
	"pinboard/internal/transport/http/response"
)

type PinHandler struct {
	pinService *app.PinService
}

type CreatePinRequest struct {
	Image       string   `json:"image" binding:"required"`
	Title       string   `json:"title" binding:"required,max=30"`
	Description string   `json:"description" binding:"required,max=300"`
	Tags        []string `json:"tags"`
}

type UpdatePinRequest struct {
	Image       string   `json:"image"`
	Title       string   `json:"title" binding:"omitempty,max=30"`
	Description string   `json:"description" binding:"omitempty,max=300"`
	Tags        []string `json:"tags"`
}

func NewPinHandler(pinService *app.PinService) *PinHandler {
	return &PinHandler{pinService: pinService}
}

func (h *PinHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req CreatePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	pin, err := h.pinService.Create(c.Request.Context(), userID, app.CreatePinInput{
		Image:       req.Image,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Created(c, "Pin created successfully", pin)
}

// Fetch lists pins with pagination, sorting, title search and free column
// filters drawn from the remaining query parameters.
func (h *PinHandler) Fetch(c *gin.Context) {
	params := repository.PaginateParams{
		PageNumber: queryInt(c, "pageNumber", 0),
		PageSize:   queryInt(c, "pageSize", 0),
		SortField:  c.Query("sortField"),
		SortDir:    c.Query("sortType"),
		Search:     c.Query("search"),
		Filter:     map[string]string{},
	}
	reserved := map[string]bool{
		"pageNumber": true, "pageSize": true,
		"sortField": true, "sortType": true, "search": true,
	}
	for key, values := range c.Request.URL.Query() {
		if !reserved[key] && len(values) > 0 {
			params.Filter[key] = values[0]
		}
	}

	pins, err := h.pinService.Paginate(params)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "pins retrieved successfully", pins)
}

func (h *PinHandler) RandomExplore(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	data, fromCache, err := h.pinService.RandomExplore(c.Request.Context(), page, limit)
	if err != nil {
		serviceError(c, err)
		return
	}

	message := "Pins retrieved successfully"
	if fromCache {
		message = "Pins retrieved from cache"
	}
	response.OK(c, message, data)
}

func (h *PinHandler) FollowedFeed(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.pinService.FollowedFeed(userID, queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Pins retrieved successfully", result)
}

func (h *PinHandler) ByUser(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	result, err := h.pinService.ListByUser(userID, queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Pins retrieved successfully", result)
}

func (h *PinHandler) LikedByUser(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	result, err := h.pinService.ListLikedBy(userID, queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Pins retrieved successfully", result)
}

func (h *PinHandler) GetSingle(c *gin.Context) {
	pinID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	pin, err := h.pinService.Get(pinID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Pin retrieved successfully", pin)
}

func (h *PinHandler) Related(c *gin.Context) {
	pinID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	related, err := h.pinService.Related(pinID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Pins retrieved successfully", related)
}

func (h *PinHandler) Like(c *gin.Context) {
	pinID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	pin, err := h.pinService.Like(pinID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Pin liked", pin)
}

func (h *PinHandler) Dislike(c *gin.Context) {
	pinID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	pin, err := h.pinService.Dislike(pinID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Pin disliked", pin)
}

func (h *PinHandler) Update(c *gin.Context) {
	pinID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req UpdatePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	pin, err := h.pinService.Update(pinID, userID, app.UpdatePinInput{
		Image:       req.Image,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Pin updated successfully", pin)
}

func (h *PinHandler) Delete(c *gin.Context) {
	pinID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	pin, err := h.pinService.Delete(pinID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, "Pin deleted", pin)
}

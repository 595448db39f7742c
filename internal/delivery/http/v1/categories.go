package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskflow/internal/model"
	"taskflow/internal/service"
)

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

func newCategoryResponse(category *model.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		CreatedAt: category.CreatedAt,
	}
}

type createCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Color string `json:"color" binding:"omitempty,len=7"`
}

func (h *handlerImpl) HandleCreateCategory(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, newBadRequestError("invalid request body"))
		return
	}

	category, err := h.categories.CreateCategory(c.Request.Context(), userID, req.Name, req.Color)
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCategoryResponse(category))
}

func (h *handlerImpl) HandleGetCategories(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	categories, err := h.categories.ListCategories(c.Request.Context(), userID)
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}

	resp := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, newCategoryResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, resp)
}

type updateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (h *handlerImpl) HandleUpdateCategory(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, newBadRequestError("invalid request body"))
		return
	}

	category, err := h.categories.UpdateCategory(c.Request.Context(), userID, c.Param("id"), service.CategoryPatch{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponse(category))
}

func (h *handlerImpl) HandleDeleteCategory(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	if err := h.categories.DeleteCategory(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

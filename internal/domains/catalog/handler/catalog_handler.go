package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recipebook-backend/internal/domains/catalog/model"
	"recipebook-backend/internal/domains/catalog/service"
	"recipebook-backend/internal/shared/response"
)

// Handler handles HTTP requests for tags and ingredients
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateTag handles POST /tags (admin seeding)
func (h *Handler) CreateTag(c *gin.Context) {
	var req model.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	tag, err := h.service.CreateTag(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, tag)
}

// ListTags handles GET /tags
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.service.ListTags(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tags)
}

// GetTag handles GET /tags/:id
func (h *Handler) GetTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tag id")
		return
	}

	tag, err := h.service.GetTag(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tag)
}

// CreateIngredient handles POST /ingredients (admin seeding)
func (h *Handler) CreateIngredient(c *gin.Context) {
	var req model.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	ingredient, err := h.service.CreateIngredient(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, model.NewIngredientResponse(ingredient))
}

// ListIngredients handles GET /ingredients
func (h *Handler) ListIngredients(c *gin.Context) {
	var req model.ListIngredientsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	ingredients, err := h.service.ListIngredients(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	result := make([]model.IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		result = append(result, model.NewIngredientResponse(&ingredients[i]))
	}

	response.Success(c, http.StatusOK, result)
}

// GetIngredient handles GET /ingredients/:id
func (h *Handler) GetIngredient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid ingredient id")
		return
	}

	ingredient, err := h.service.GetIngredient(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.NewIngredientResponse(ingredient))
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recipebook-backend/internal/domains/relation/model"
	"recipebook-backend/internal/domains/relation/service"
	"recipebook-backend/internal/shared/middleware"
	"recipebook-backend/internal/shared/response"
)

// Handler handles HTTP requests for favorites, cart marks and
// subscriptions
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// AddFavorite handles POST /recipes/:id/favorite
func (h *Handler) AddFavorite(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid recipe id")
		return
	}

	card, err := h.service.AddFavorite(c.Request.Context(), middleware.CallerIdentity(c), recipeID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, card)
}

// RemoveFavorite handles DELETE /recipes/:id/favorite
func (h *Handler) RemoveFavorite(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid recipe id")
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), middleware.CallerIdentity(c), recipeID); err != nil {
		response.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddCartItem handles POST /recipes/:id/shopping_cart
func (h *Handler) AddCartItem(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid recipe id")
		return
	}

	card, err := h.service.AddCartItem(c.Request.Context(), middleware.CallerIdentity(c), recipeID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, card)
}

// RemoveCartItem handles DELETE /recipes/:id/shopping_cart
func (h *Handler) RemoveCartItem(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid recipe id")
		return
	}

	if err := h.service.RemoveCartItem(c.Request.Context(), middleware.CallerIdentity(c), recipeID); err != nil {
		response.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Subscribe handles POST /users/:id/subscribe
func (h *Handler) Subscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	recipesLimit := 0
	if raw := c.Query("recipes_limit"); raw != "" {
		recipesLimit, err = strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "invalid recipes_limit")
			return
		}
		if recipesLimit < 0 {
			recipesLimit = 0
		}
	}

	sub, err := h.service.Subscribe(c.Request.Context(), middleware.CallerIdentity(c), authorID, recipesLimit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sub)
}

// Unsubscribe handles DELETE /users/:id/subscribe
func (h *Handler) Unsubscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), middleware.CallerIdentity(c), authorID); err != nil {
		response.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSubscriptions handles GET /users/subscriptions
func (h *Handler) ListSubscriptions(c *gin.Context) {
	var req model.ListSubscriptionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	subs, total, err := h.service.ListSubscriptions(c.Request.Context(), middleware.CallerIdentity(c), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, subs, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

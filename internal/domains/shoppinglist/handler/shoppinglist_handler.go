package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recipebook-backend/internal/domains/shoppinglist/model"
	"recipebook-backend/internal/domains/shoppinglist/service"
	"recipebook-backend/internal/shared/middleware"
	"recipebook-backend/internal/shared/response"
)

// Handler handles shopping list reads and export
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetShoppingList handles GET /recipes/shopping_list
func (h *Handler) GetShoppingList(c *gin.Context) {
	rows, err := h.service.BuildList(c.Request.Context(), middleware.CallerIdentity(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows)
}

// DownloadShoppingList handles GET /recipes/download_shopping_cart and
// streams the aggregated list as a CSV attachment.
func (h *Handler) DownloadShoppingList(c *gin.Context) {
	rows, err := h.service.BuildList(c.Request.Context(), middleware.CallerIdentity(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	data, err := renderCSV(rows)
	if err != nil {
		response.InternalServerError(c, "failed to render shopping list")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func renderCSV(rows []model.ShoppingListRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Ingredient", "Amount", "Unit"}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{row.Name, strconv.Itoa(row.TotalAmount), row.Unit}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

package controllers

import (
	"net/http"
	"strings"

	"foodgram/metrics"
	"foodgram/services"

	"github.com/gin-gonic/gin"
)

const shoppingListFilename = "shopping_list.txt"

// DownloadShoppingCart: GET /api/recipes/download_shopping_cart
func DownloadShoppingCart(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}

	list, err := services.BuildShoppingList(db, user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	metrics.RecordShoppingList(len(list.Items))

	c.Header("Content-Disposition", `attachment; filename="`+shoppingListFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(renderShoppingList(list)))
}

// renderShoppingList: "shopping list:" e uma linha "nome: total unidade" por item.
func renderShoppingList(list services.ShoppingList) string {
	if list.Empty() {
		return "cart is empty"
	}
	var b strings.Builder
	b.WriteString("shopping list:\n")
	for _, item := range list.Items {
		b.WriteString(item.Name)
		b.WriteString(": ")
		b.WriteString(item.Total.String())
		b.WriteString(" ")
		b.WriteString(item.MeasurementUnit)
		b.WriteString("\n")
	}
	return b.String()
}

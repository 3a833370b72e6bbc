package controllers

import (
	"net/http"
	"strings"

	dbpkg "foodgram/db"
	"foodgram/models"

	"github.com/gin-gonic/gin"
)

type CreateIngredientRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" binding:"required,max=200"`
}

// GetIngredients: GET /api/ingredients?name=<prefixo>, sem diferenciar maiúsculas.
func GetIngredients(c *gin.Context) {
	db, ok := mustDB(c)
	if !ok {
		return
	}

	q := db.Order("name asc, id asc")
	if prefix := strings.TrimSpace(c.Query("name")); prefix != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\'", escapeLike(strings.ToLower(prefix))+"%")
	}

	ingredients := []models.Ingredient{}
	if err := q.Find(&ingredients).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, ingredients)
}

func GetIngredientByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}
	var ingredient models.Ingredient
	if err := db.First(&ingredient, id).Error; err != nil {
		if dbpkg.IsNotFound(err) {
			RespondError(c, "ingredient not found", http.StatusNotFound)
			return
		}
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, ingredient)
}

// CreateIngredient (admin). O par nome+unidade é único.
func CreateIngredient(c *gin.Context) {
	var req CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}

	ingredient := models.Ingredient{
		Name:            strings.TrimSpace(req.Name),
		MeasurementUnit: strings.TrimSpace(req.MeasurementUnit),
	}
	if err := db.Create(&ingredient).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			RespondError(c, "ingredient already exists", http.StatusBadRequest)
			return
		}
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondCreated(c, ingredient)
}

// escapeLike neutraliza % e _ vindos do usuário.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

package controllers

import (
	"net/http"
	"strings"

	dbpkg "foodgram/db"
	"foodgram/models"

	"github.com/gin-gonic/gin"
)

type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Color string `json:"color" binding:"required,hexcolor"`
	Slug  string `json:"slug" binding:"required,max=200,slug"`
}

func GetTags(c *gin.Context) {
	db, ok := mustDB(c)
	if !ok {
		return
	}
	tags := []models.Tag{}
	if err := db.Order("id asc").Find(&tags).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, tags)
}

func GetTagByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}
	var tag models.Tag
	if err := db.First(&tag, id).Error; err != nil {
		if dbpkg.IsNotFound(err) {
			RespondError(c, "tag not found", http.StatusNotFound)
			return
		}
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, tag)
}

// CreateTag (admin). Cor e slug são únicos.
func CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}

	tag := models.Tag{
		Name:  strings.TrimSpace(req.Name),
		Color: strings.ToUpper(req.Color),
		Slug:  req.Slug,
	}
	if err := db.Create(&tag).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			RespondError(c, "a tag with this color or slug already exists", http.StatusBadRequest)
			return
		}
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondCreated(c, tag)
}

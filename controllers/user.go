package controllers

import (
	"net/http"

	dbpkg "foodgram/db"
	"foodgram/logging"
	"foodgram/models"
	"foodgram/services"
	"foodgram/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150,username"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=6,max=150"`
}

// CheckUserExists procura conflito de email ou username.
func CheckUserExists(db *gorm.DB, email, username string) (bool, error) {
	var count int
	err := db.Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	db, ok := mustDB(c)
	if !ok {
		return
	}

	exists, err := CheckUserExists(db, req.Email, req.Username)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	} else if exists {
		RespondError(c, "a user with this email or username already exists", http.StatusBadRequest)
		return
	}

	hash, err := tools.HashPassword(req.Password, configuration.Security.BcryptCost)
	if err != nil {
		RespondError(c, "failed to hash password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hash,
		Status:    models.USER_STATUS_AVAILABLE,
	}
	if err := db.Create(&user).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			RespondError(c, "a user with this email or username already exists", http.StatusBadRequest)
			return
		}
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	logging.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	RespondCreated(c, services.UserView{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

func GetUsers(c *gin.Context) {
	db, ok := mustDB(c)
	if !ok {
		return
	}

	users := []models.User{}
	if err := db.Order("id asc").Find(&users).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	viewer := viewerID(c)
	out := make([]services.UserView, 0, len(users))
	for _, u := range users {
		view, err := services.ViewUser(db, viewer, u)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		out = append(out, view)
	}
	RespondSuccess(c, out)
}

func GetUserByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db, ok := mustDB(c)
	if !ok {
		return
	}

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if dbpkg.IsNotFound(err) {
			RespondError(c, "user not found", http.StatusNotFound)
			return
		}
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	view, err := services.ViewUser(db, viewerID(c), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondSuccess(c, view)
}

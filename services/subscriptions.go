package services

import (
	"fmt"

	dbpkg "foodgram/db"
	"foodgram/models"

	"github.com/jinzhu/gorm"
)

// Subscribe cria a assinatura userID -> authorID e devolve o autor.
// Assinar a si mesmo é sempre ConflictError, antes de qualquer consulta.
func Subscribe(db *gorm.DB, userID, authorID int64) (models.User, error) {
	if userID == authorID {
		return models.User{}, &ConflictError{Message: "cannot subscribe to yourself"}
	}

	author, err := findUser(db, authorID)
	if err != nil {
		return models.User{}, err
	}

	subscribed, err := IsSubscribed(db, userID, authorID)
	if err != nil {
		return models.User{}, err
	}
	if subscribed {
		return models.User{}, &DuplicateError{What: "subscription"}
	}

	if err := insertSubscription(db, userID, authorID); err != nil {
		return models.User{}, err
	}
	return author, nil
}

// insertSubscription grava a assinatura; o índice único vira DuplicateError.
func insertSubscription(db *gorm.DB, userID, authorID int64) error {
	sub := models.Subscription{UserID: userID, AuthorID: authorID}
	if err := db.Create(&sub).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			return &DuplicateError{What: "subscription"}
		}
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	return nil
}

// Unsubscribe remove a assinatura ou devolve NotFoundError.
func Unsubscribe(db *gorm.DB, userID, authorID int64) error {
	if _, err := findUser(db, authorID); err != nil {
		return err
	}

	res := db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Subscription{})
	if res.Error != nil {
		return fmt.Errorf("failed to unsubscribe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{What: "subscription", Entry: true}
	}
	return nil
}

func IsSubscribed(db *gorm.DB, userID, authorID int64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var count int
	err := db.Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Subscriptions lista os autores seguidos por userID, na ordem de assinatura.
func Subscriptions(db *gorm.DB, userID int64) ([]models.User, error) {
	var authors []models.User
	err := db.Table("users").
		Select("users.*").
		Joins("join subscriptions on subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Order("subscriptions.id asc").
		Find(&authors).Error
	if err != nil {
		return nil, err
	}
	return authors, nil
}

func findUser(db *gorm.DB, userID int64) (models.User, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return models.User{}, &NotFoundError{What: "user"}
		}
		return models.User{}, err
	}
	return user, nil
}

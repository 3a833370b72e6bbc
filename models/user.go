package models

import "time"

/************************************************
/**** MARK: USER STATUS ****/
/************************************************/
const USER_STATUS_AVAILABLE = 0
const USER_STATUS_BLOCKED = 2

// User representa um usuario no sistema
type User struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Email     string     `gorm:"not null;unique_index" json:"email"`
	Username  string     `gorm:"not null;unique_index" json:"username"`
	FirstName string     `gorm:"not null;default:''" json:"first_name"`
	LastName  string     `gorm:"not null;default:''" json:"last_name"`
	Password  string     `gorm:"not null" json:"-"`
	Status    int        `gorm:"not null;default:0" json:"-"`
	Admin     bool       `gorm:"not null;default:false" json:"-"`
	CreatedAt *time.Time `json:"-"`
	UpdatedAt *time.Time `json:"-"`
}

func (user User) IsBlocked() bool {
	return user.Status == USER_STATUS_BLOCKED
}

package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

type User struct {
	gorm.Model
	UserID           string     `json:"userID" gorm:"uniqueIndex;size:64"`
	UserName         string     `json:"userName" gorm:"uniqueIndex;size:64"`
	Email            string     `json:"email" gorm:"uniqueIndex;size:255"`
	Password         string     `json:"-"`
	Role             string     `json:"role" gorm:"size:16;default:buyer"`
	Name             string     `json:"name"`
	DisplayName      string     `json:"displayName"`
	Address          string     `json:"address"`
	PhoneNumber      string     `json:"phoneNumber"`
	DOB              *time.Time `json:"dob"`
	Gender           string     `json:"gender"`
	ProfileImage     string     `json:"profileImage"`
	ProfileCompleted bool       `json:"profileCompleted"`
	OnboardingShown  bool       `json:"onboardingShown"`
}

type RegisterData struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phoneNumber"`
	DOB         string `json:"dob"`
	Gender      string `json:"gender"`
	Role        string `json:"role"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// MissingProfileFields returns the profile fields still required before the
// user is allowed to check out.
func (u *User) MissingProfileFields() []string {
	missing := []string{}
	if u.Name == "" {
		missing = append(missing, "name")
	}
	if u.Email == "" {
		missing = append(missing, "email")
	}
	if u.PhoneNumber == "" {
		missing = append(missing, "phoneNumber")
	}
	if u.Address == "" {
		missing = append(missing, "address")
	}
	return missing
}

package models

import "gorm.io/gorm"

type Cart struct {
	gorm.Model
	UserID string     `json:"userID" gorm:"uniqueIndex;size:64"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

type CartItem struct {
	gorm.Model
	CartID   uint   `json:"-"`
	FoodID   string `json:"foodID" gorm:"size:64"`
	Quantity int    `json:"quantity"`
}

type CartUpdateData struct {
	FoodID   string `json:"foodID" binding:"required"`
	Quantity int    `json:"quantity"`
}

package models

import "gorm.io/gorm"

type Food struct {
	gorm.Model
	FoodID      string  `json:"foodID" gorm:"uniqueIndex;size:64"`
	SellerID    string  `json:"sellerID" gorm:"index;size:64"`
	FoodName    string  `json:"foodName"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	FoodImage   string  `json:"foodImage"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock" gorm:"default:0"`
	// No column default: a false value would be dropped on insert. The
	// menu controller sets the initial value explicitly.
	IsAvailable bool `json:"isAvailable"`
	// Denormalized rating summary, recomputed whenever a rating is inserted.
	AverageRating float64 `json:"averageRating" gorm:"default:0"`
	TotalRatings  int     `json:"totalRatings" gorm:"default:0"`
}

package models

import "gorm.io/gorm"

// Rating is one review of a food by a user. A user may rate a given food at
// most once; the composite index backs the application-level check.
type Rating struct {
	gorm.Model
	RatingID  string `json:"ratingID" gorm:"uniqueIndex;size:64"`
	UserID    string `json:"userID" gorm:"uniqueIndex:idx_user_food;size:64"`
	FoodID    string `json:"foodID" gorm:"uniqueIndex:idx_user_food;size:64"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	UserName  string `json:"userName"`
	UserImage string `json:"userImage"`
}

type RatingData struct {
	FoodID  string `json:"foodID" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Seller struct {
	gorm.Model
	SellerID         string         `json:"sellerID" gorm:"uniqueIndex;size:64"`
	UserID           string         `json:"userID" gorm:"index;size:64"`
	StoreName        string         `json:"storeName"`
	StoreDescription string         `json:"storeDescription"`
	StoreAddress     string         `json:"storeAddress"`
	StoreImage       string         `json:"storeImage"`
	StorePhone       string         `json:"storePhone"`
	StoreEmail       string         `json:"storeEmail"`
	Categories       datatypes.JSON `json:"categories"`
	OpenTime         string         `json:"openTime"`
	CloseTime        string         `json:"closeTime"`
	BankName         string         `json:"bankName"`
	BankAccount      string         `json:"bankAccount"`
	TaxID            string         `json:"taxID"`
	CommissionRate   float64        `json:"commissionRate"`
	IsActive         bool           `json:"isActive"`
	IsComplete       bool           `json:"isComplete"`
}

// Completeness reports whether a store can operate fully: all required
// storefront fields present and at least one item on the menu.
type Completeness struct {
	IsComplete    bool     `json:"isComplete"`
	MissingFields []string `json:"missingFields"`
}

func (s *Seller) CheckCompleteness(menuCount int64) Completeness {
	missing := []string{}
	if s.StoreName == "" {
		missing = append(missing, "storeName")
	}
	if s.StoreAddress == "" {
		missing = append(missing, "storeAddress")
	}
	if s.StorePhone == "" {
		missing = append(missing, "storePhone")
	}
	if len(s.Categories) == 0 || string(s.Categories) == "[]" || string(s.Categories) == "null" {
		missing = append(missing, "categories")
	}
	if menuCount == 0 {
		missing = append(missing, "menuItems")
	}
	return Completeness{IsComplete: len(missing) == 0, MissingFields: missing}
}

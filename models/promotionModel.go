package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"

	PromotionStatusActive  = "active"
	PromotionStatusExpired = "expired"
	PromotionStatusPaused  = "paused"
)

type Promotion struct {
	gorm.Model
	PromotionID          string         `json:"promotionID" gorm:"uniqueIndex;size:64"`
	SellerID             string         `json:"sellerID" gorm:"index;size:64"`
	PromotionTitle       string         `json:"promotionTitle"`
	DiscountCode         string         `json:"discountCode" gorm:"uniqueIndex;size:64"`
	DiscountType         string         `json:"discountType" gorm:"size:16"`
	DiscountValue        float64        `json:"discountValue"`
	MinOrderAmount       float64        `json:"minOrderAmount"`
	MaxUsage             *int           `json:"maxUsage"`
	UsageCount           int            `json:"usageCount"`
	ExpiryDate           time.Time      `json:"expiryDate"`
	Status               string         `json:"status" gorm:"size:16;default:active"`
	Description          string         `json:"description"`
	ApplicableCategories datatypes.JSON `json:"applicableCategories"`
	MaxDiscountAmount    *float64       `json:"maxDiscountAmount"`
}

// BeforeSave flips the status to expired once the expiry date has passed.
func (p *Promotion) BeforeSave(tx *gorm.DB) error {
	if !p.ExpiryDate.IsZero() && p.ExpiryDate.Before(time.Now()) && p.Status != PromotionStatusExpired {
		p.Status = PromotionStatusExpired
	}
	return nil
}

// DiscountFor computes the discount for an order amount: percentage
// discounts are clamped to the optional cap, and the final amount never
// goes below zero.
func (p *Promotion) DiscountFor(orderAmount float64) (discount, final float64) {
	switch p.DiscountType {
	case DiscountTypePercentage:
		discount = orderAmount * p.DiscountValue / 100
		if p.MaxDiscountAmount != nil && discount > *p.MaxDiscountAmount {
			discount = *p.MaxDiscountAmount
		}
	case DiscountTypeFixed:
		discount = p.DiscountValue
	}
	final = orderAmount - discount
	if final < 0 {
		final = 0
	}
	return discount, final
}

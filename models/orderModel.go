package models

import "gorm.io/gorm"

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusShipping  = "shipping"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidTransitions is the order status graph. Terminal states have no
// outgoing edges.
var ValidTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusShipping, OrderStatusCancelled},
	OrderStatusShipping:  {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// CanTransition reports whether status `to` is reachable from `from`.
func CanTransition(from, to string) bool {
	for _, next := range ValidTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	gorm.Model
	OrderID         string      `json:"orderID" gorm:"uniqueIndex;size:64"`
	UserID          string      `json:"userID" gorm:"index;size:64"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderRef;constraint:OnDelete:CASCADE"`
	TotalPrice      float64     `json:"totalPrice"`
	DeliveryAddress string      `json:"deliveryAddress"`
	Phone           string      `json:"phone"`
	Payment         bool        `json:"payment"`
	Status          string      `json:"status" gorm:"size:16;default:pending"`
	Note            string      `json:"note"`
}

// OrderItem is an immutable snapshot of one cart line taken at checkout:
// the unit price and name are captured from the catalog at that moment.
type OrderItem struct {
	gorm.Model
	OrderRef uint    `json:"-" gorm:"index"`
	OrderID  string  `json:"orderID" gorm:"index;size:64"`
	FoodID   string  `json:"foodID" gorm:"size:64"`
	FoodName string  `json:"foodName"`
	SellerID string  `json:"sellerID" gorm:"index;size:64"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

// Package orderrepo reads eligible orders from and writes reconciliation status back to
// the order tables of the storefront database.
package orderrepo

import (
	"time"
)

// Fulfillment status values stored in orders.fulfillment_status. Pending orders have
// an empty status.
const (
	statusPending   = ""
	statusProcessed = "Processed"
	statusHold      = "Hold"
)

// OrderDTO is one storefront order tagged for a delivery lane.
type OrderDTO struct {
	ID                string        `gorm:"primaryKey"`
	OrderNumber       string        `gorm:"index"`
	StoreTag          string        `gorm:"index"`
	Location          string        `gorm:"index"`
	DeliveryDate      time.Time     `gorm:"type:date;index"`
	DeliveryType      string        `gorm:"index"`
	FulfillmentStatus string        `gorm:"index;not null;default:''"`
	LineItems         []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	UpdatedAt         time.Time
}

// TableName specifies the database table name for orders.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is one product line of an order.
type LineItemDTO struct {
	ID       uint   `gorm:"primaryKey"`
	OrderID  string `gorm:"index"`
	Position int
	Title    string
}

// TableName specifies the database table name for order lines.
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

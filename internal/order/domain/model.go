package domain

import (
	"time"

	catalogdomain "github.com/warungkita/pos/internal/catalog/domain"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusPending OrderStatus = "pending"
	StatusSuccess OrderStatus = "success"
	StatusCancel  OrderStatus = "cancel"
)

// Order is a completed sale. OrderNo is the human-facing key and the
// join key for its line items; monetary amounts are minor units.
type Order struct {
	ID           int64          `json:"-" gorm:"primaryKey"`
	UUID         string         `json:"uuid" gorm:"type:uuid;uniqueIndex:ux_orders_uuid;not null"`
	OrderNo      string         `json:"orderno" gorm:"column:orderno;uniqueIndex:ux_orders_orderno;not null"`
	Status       OrderStatus    `json:"status" gorm:"type:text;not null;default:pending"`
	Qty          int64          `json:"qty" gorm:"not null;default:0"`
	TotalPayment int64          `json:"total_payment" gorm:"not null;default:0"`
	GrandTotal   int64          `json:"grand_total" gorm:"not null;default:0"`
	Change       int64          `json:"change" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Details []OrderDetail `json:"order_details" gorm:"foreignKey:OrderNo;references:OrderNo"`
}

func (Order) TableName() string { return "orders" }

// OrderDetail is one product line on an order, keyed by the parent
// orderno rather than the surrogate id.
type OrderDetail struct {
	ID        int64     `json:"-" gorm:"primaryKey"`
	OrderNo   string    `json:"orderno" gorm:"column:orderno;index:ix_order_details_orderno;not null"`
	ProductID int64     `json:"-" gorm:"column:product_id;index:ix_order_details_product_id;not null"`
	Qty       int64     `json:"qty" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *catalogdomain.Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (OrderDetail) TableName() string { return "order_details" }

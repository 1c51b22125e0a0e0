package domain

import "time"

// Order is a persisted, user-owned purchase composed of line items.
// There is no declared FK cascade: deleting an order must remove its
// items first.
type Order struct {
	ID        int64     `json:"id,string" form:"id"`
	UserId    int64     `gorm:"index" json:"user_id" form:"user_id"`
	Status    string    `gorm:"size:64" json:"status" form:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderId" json:"items,omitempty"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "pedidos"
}

// Total sums the loaded line item subtotals.
func (o *Order) Total() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Subtotal()
	}
	return total
}

// OrderItem is one product-quantity-price tuple within an order.
// UnitPrice is frozen at purchase time and does not follow the product.
type OrderItem struct {
	ID        int64   `json:"id,string" form:"id"`
	OrderId   int64   `gorm:"index" json:"order_id" form:"order_id"`
	ProductId int64   `gorm:"index" json:"product_id" form:"product_id"`
	Quantity  int     `gorm:"default:1" json:"quantity" form:"quantity"`
	UnitPrice float64 `json:"unit_price" form:"unit_price"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "pedido_itens"
}

func (i OrderItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

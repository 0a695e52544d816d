package order

import "time"

type Order struct {
	ID        int       `json:"id" db:"order_id"`
	UserID    int       `json:"userId" db:"user_id"`
	Total     float64   `json:"total" db:"total"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Items     []Item    `json:"items" db:"-"`
}

// Item freezes the price at checkout time; the cart view always shows
// current prices instead.
type Item struct {
	OrderID   int     `json:"-" db:"order_id"`
	ProductID int     `json:"productId" db:"product_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unitPrice" db:"unit_price"`
}

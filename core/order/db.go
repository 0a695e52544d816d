package order

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, ord Order) (Order, error) {
	const q = `
	INSERT INTO orders
		(user_id, total, created_at)
	VALUES
		(:user_id, :total, :created_at)
	RETURNING order_id`

	rows, err := sqlx.NamedQueryContext(ctx, db, q, ord)
	if err != nil {
		return Order{}, fmt.Errorf("inserting order: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return Order{}, fmt.Errorf("inserting order: no id returned")
	}
	if err := rows.Scan(&ord.ID); err != nil {
		return Order{}, fmt.Errorf("scanning order id: %w", err)
	}

	return ord, nil
}

func CreateItem(ctx context.Context, db sqlx.ExtContext, it Item) error {
	const q = `
	INSERT INTO order_items
		(order_id, product_id, quantity, unit_price)
	VALUES
		(:order_id, :product_id, :quantity, :unit_price)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, it); err != nil {
		return fmt.Errorf("inserting order item: %w", err)
	}

	return nil
}

// FetchByUser returns the user's orders, most recent first, each with
// its items attached.
func FetchByUser(ctx context.Context, db sqlx.ExtContext, userID int) ([]Order, error) {
	const q = `SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	orders := []Order{}
	if err := sqlx.SelectContext(ctx, db, &orders, q, userID); err != nil {
		return nil, fmt.Errorf("selecting orders of user[%d]: %w", userID, err)
	}

	const qi = `SELECT * FROM order_items WHERE order_id = $1`
	for i := range orders {
		items := []Item{}
		if err := sqlx.SelectContext(ctx, db, &items, qi, orders[i].ID); err != nil {
			return nil, fmt.Errorf("selecting items of order[%d]: %w", orders[i].ID, err)
		}
		orders[i].Items = items
	}

	return orders, nil
}

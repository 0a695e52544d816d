package cart

import (
	"context"
	"fmt"

	"storefront/core/product"

	"github.com/jmoiron/sqlx"
)

type row struct {
	UserID    int `db:"user_id"`
	ProductID int `db:"product_id"`
	Quantity  int `db:"quantity"`
}

// Fetch materializes the user's cart, joining each stored row against
// the current product catalog.
func Fetch(ctx context.Context, db sqlx.ExtContext, userID int) (Cart, error) {
	const q = `SELECT * FROM shopping_cart WHERE user_id = $1`

	rows := []row{}
	if err := sqlx.SelectContext(ctx, db, &rows, q, userID); err != nil {
		return Cart{}, fmt.Errorf("selecting cart rows of user[%d]: %w", userID, err)
	}

	products := make([]product.Product, 0, len(rows))
	quantities := make(map[int]int, len(rows))
	for _, r := range rows {
		prd, err := product.Fetch(ctx, db, r.ProductID)
		if err != nil {
			return Cart{}, fmt.Errorf("fetching cart product[%d]: %w", r.ProductID, err)
		}
		products = append(products, prd)
		quantities[prd.ID] = r.Quantity
	}

	return Build(userID, products, quantities), nil
}

// Add inserts the product with quantity 1 or bumps the stored
// quantity by 1 if the row already exists. Concurrent adds of the
// same pair never lose an update.
func Add(ctx context.Context, db sqlx.ExtContext, userID int, productID int) error {
	in := row{UserID: userID, ProductID: productID}

	const q = `
	INSERT INTO shopping_cart
		(user_id, product_id, quantity)
	VALUES
		(:user_id, :product_id, 1)
	ON CONFLICT (user_id, product_id)
	DO UPDATE SET quantity = shopping_cart.quantity + 1`

	if _, err := sqlx.NamedExecContext(ctx, db, q, in); err != nil {
		return fmt.Errorf("adding product[%d] to cart of user[%d]: %w", productID, userID, err)
	}

	return nil
}

// UpdateQuantity sets the stored quantity for an existing pair. The
// value is written as given; a pair that does not exist is a no-op.
func UpdateQuantity(ctx context.Context, db sqlx.ExtContext, userID int, productID int, quantity int) error {
	in := row{UserID: userID, ProductID: productID, Quantity: quantity}

	const q = `
	UPDATE shopping_cart
	SET quantity = :quantity
	WHERE user_id = :user_id AND product_id = :product_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, in); err != nil {
		return fmt.Errorf("updating product[%d] in cart of user[%d]: %w", productID, userID, err)
	}

	return nil
}

// Clear removes every row of the user's cart. An already empty cart
// is a no-op success.
func Clear(ctx context.Context, db sqlx.ExtContext, userID int) error {
	const q = `DELETE FROM shopping_cart WHERE user_id = $1`

	if _, err := db.ExecContext(ctx, q, userID); err != nil {
		return fmt.Errorf("clearing cart of user[%d]: %w", userID, err)
	}

	return nil
}

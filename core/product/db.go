package product

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func List(ctx context.Context, db sqlx.ExtContext) ([]Product, error) {
	const q = `SELECT * FROM products`

	products := []Product{}
	if err := sqlx.SelectContext(ctx, db, &products, q); err != nil {
		return nil, fmt.Errorf("selecting products: %w", err)
	}

	return products, nil
}

// FetchByCategory returns the products of a category. The result is
// an empty slice, never nil, when there are no matches.
func FetchByCategory(ctx context.Context, db sqlx.ExtContext, categoryID int) ([]Product, error) {
	const q = `SELECT * FROM products WHERE category_id = $1`

	products := []Product{}
	if err := sqlx.SelectContext(ctx, db, &products, q, categoryID); err != nil {
		return nil, fmt.Errorf("selecting products of category[%d]: %w", categoryID, err)
	}

	return products, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id int) (Product, error) {
	const q = `SELECT * FROM products WHERE product_id = $1`

	var prd Product
	if err := sqlx.GetContext(ctx, db, &prd, q, id); err != nil {
		return Product{}, fmt.Errorf("selecting product[%d]: %w", id, err)
	}

	return prd, nil
}

// Create inserts the product and reads it back by its generated id.
func Create(ctx context.Context, db sqlx.ExtContext, pn ProductNew) (Product, error) {
	prd := Product{
		Name:        pn.Name,
		Price:       pn.Price,
		CategoryID:  pn.CategoryID,
		Description: pn.Description,
		Color:       pn.Color,
		ImageURL:    pn.ImageURL,
		Stock:       pn.Stock,
		Featured:    pn.Featured,
	}

	const q = `
	INSERT INTO products
		(name, price, category_id, description, color, image_url, stock, featured)
	VALUES
		(:name, :price, :category_id, :description, :color, :image_url, :stock, :featured)
	RETURNING product_id`

	rows, err := sqlx.NamedQueryContext(ctx, db, q, prd)
	if err != nil {
		return Product{}, fmt.Errorf("inserting product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return Product{}, fmt.Errorf("inserting product: no id returned")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return Product{}, fmt.Errorf("scanning product id: %w", err)
	}
	rows.Close()

	return Fetch(ctx, db, id)
}

// Update overwrites every field of the product. Updating an id that
// does not exist is a no-op, not an error.
func Update(ctx context.Context, db sqlx.ExtContext, id int, pu ProductUp) error {
	prd := Product{
		ID:          id,
		Name:        pu.Name,
		Price:       pu.Price,
		CategoryID:  pu.CategoryID,
		Description: pu.Description,
		Color:       pu.Color,
		ImageURL:    pu.ImageURL,
		Stock:       pu.Stock,
		Featured:    pu.Featured,
	}

	const q = `
	UPDATE products
	SET
		name = :name,
		price = :price,
		category_id = :category_id,
		description = :description,
		color = :color,
		image_url = :image_url,
		stock = :stock,
		featured = :featured
	WHERE
		product_id = :product_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, prd); err != nil {
		return fmt.Errorf("updating product[%d]: %w", id, err)
	}

	return nil
}

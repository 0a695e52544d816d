package category

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func List(ctx context.Context, db sqlx.ExtContext) ([]Category, error) {
	const q = `SELECT * FROM categories`

	categories := []Category{}
	if err := sqlx.SelectContext(ctx, db, &categories, q); err != nil {
		return nil, fmt.Errorf("selecting categories: %w", err)
	}

	return categories, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id int) (Category, error) {
	const q = `SELECT * FROM categories WHERE category_id = $1`

	var cat Category
	if err := sqlx.GetContext(ctx, db, &cat, q, id); err != nil {
		return Category{}, fmt.Errorf("selecting category[%d]: %w", id, err)
	}

	return cat, nil
}

// Create inserts the category and reads it back by its generated id.
func Create(ctx context.Context, db sqlx.ExtContext, cn CategoryNew) (Category, error) {
	const q = `
	INSERT INTO categories
		(name, description)
	VALUES
		(:name, :description)
	RETURNING category_id`

	rows, err := sqlx.NamedQueryContext(ctx, db, q, cn)
	if err != nil {
		return Category{}, fmt.Errorf("inserting category: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return Category{}, fmt.Errorf("inserting category: no id returned")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return Category{}, fmt.Errorf("scanning category id: %w", err)
	}
	rows.Close()

	return Fetch(ctx, db, id)
}

// Update overwrites every field of the category. Updating an id that
// does not exist is a no-op, not an error.
func Update(ctx context.Context, db sqlx.ExtContext, id int, cu CategoryUp) error {
	data := struct {
		ID int `db:"category_id"`
		CategoryUp
	}{ID: id, CategoryUp: cu}

	const q = `
	UPDATE categories
	SET
		name = :name,
		description = :description
	WHERE
		category_id = :category_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, data); err != nil {
		return fmt.Errorf("updating category[%d]: %w", id, err)
	}

	return nil
}

// Delete removes the category. Deleting an id that does not exist is
// a no-op, not an error.
func Delete(ctx context.Context, db sqlx.ExtContext, id int) error {
	const q = `DELETE FROM categories WHERE category_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting category[%d]: %w", id, err)
	}

	return nil
}

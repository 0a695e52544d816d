package user

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Create inserts the user and returns it with its generated id.
func Create(ctx context.Context, db sqlx.ExtContext, usr User) (User, error) {
	const q = `
	INSERT INTO users
		(username, password_hash, role)
	VALUES
		(:username, :password_hash, :role)
	RETURNING user_id`

	rows, err := sqlx.NamedQueryContext(ctx, db, q, usr)
	if err != nil {
		return User{}, fmt.Errorf("inserting user: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return User{}, fmt.Errorf("inserting user: no id returned")
	}
	if err := rows.Scan(&usr.ID); err != nil {
		return User{}, fmt.Errorf("scanning user id: %w", err)
	}

	return usr, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id int) (User, error) {
	const q = `SELECT * FROM users WHERE user_id = $1`

	var usr User
	if err := sqlx.GetContext(ctx, db, &usr, q, id); err != nil {
		return User{}, fmt.Errorf("selecting user[%d]: %w", id, err)
	}

	return usr, nil
}

func FetchByUsername(ctx context.Context, db sqlx.ExtContext, username string) (User, error) {
	const q = `SELECT * FROM users WHERE username = $1`

	var usr User
	if err := sqlx.GetContext(ctx, db, &usr, q, username); err != nil {
		return User{}, fmt.Errorf("selecting user[%s]: %w", username, err)
	}

	return usr, nil
}

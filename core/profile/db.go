package profile

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Create inserts the profile and returns the submitted value as-is,
// with no read-back. Profiles have no generated columns.
func Create(ctx context.Context, db sqlx.ExtContext, prf Profile) (Profile, error) {
	const q = `
	INSERT INTO profiles
		(user_id, first_name, last_name, phone, email, address, city, state, zip)
	VALUES
		(:user_id, :first_name, :last_name, :phone, :email, :address, :city, :state, :zip)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, prf); err != nil {
		return Profile{}, fmt.Errorf("inserting profile for user[%d]: %w", prf.UserID, err)
	}

	return prf, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, userID int) (Profile, error) {
	const q = `SELECT * FROM profiles WHERE user_id = $1`

	var prf Profile
	if err := sqlx.GetContext(ctx, db, &prf, q, userID); err != nil {
		return Profile{}, fmt.Errorf("selecting profile of user[%d]: %w", userID, err)
	}

	return prf, nil
}

// Update overwrites every field of the profile keyed by userID. The
// userID comes from the resolved session claims, never from the
// request body.
func Update(ctx context.Context, db sqlx.ExtContext, userID int, pu ProfileUp) error {
	prf := Profile{
		UserID:    userID,
		FirstName: pu.FirstName,
		LastName:  pu.LastName,
		Phone:     pu.Phone,
		Email:     pu.Email,
		Address:   pu.Address,
		City:      pu.City,
		State:     pu.State,
		Zip:       pu.Zip,
	}

	const q = `
	UPDATE profiles
	SET
		first_name = :first_name,
		last_name = :last_name,
		phone = :phone,
		email = :email,
		address = :address,
		city = :city,
		state = :state,
		zip = :zip
	WHERE
		user_id = :user_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, prf); err != nil {
		return fmt.Errorf("updating profile of user[%d]: %w", userID, err)
	}

	return nil
}

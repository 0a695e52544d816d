package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"storefront/api/web"
	"storefront/api/weberr"
	"storefront/core/claims"
	"storefront/validate"

	"github.com/jmoiron/sqlx"
)

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		prf, err := Fetch(ctx, db, clm.UserID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return weberr.NotFound(err)
		case err != nil:
			return fmt.Errorf("fetching profile of user[%d]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, prf, http.StatusOK)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var pu ProfileUp
		if err := web.Decode(w, r, &pu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(pu); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		// The body may carry any userId it likes: the session wins.
		if err := Update(ctx, db, clm.UserID, pu); err != nil {
			return fmt.Errorf("updating profile of user[%d]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

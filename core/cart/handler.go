package cart

import (
	"context"
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

		crt, err := Fetch(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching cart of user[%d]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, crt, http.StatusOK)
	}
}

func HandleAdd(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		productID, err := validate.ParseID(web.Param(r, "product_id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		if err := Add(ctx, db, clm.UserID, productID); err != nil {
			return fmt.Errorf("adding product[%d] to cart of user[%d]: %w", productID, clm.UserID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleUpdateItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		productID, err := validate.ParseID(web.Param(r, "product_id"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		var iu ItemUp
		if err := web.Decode(w, r, &iu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		// The quantity is written as given, including non-positive
		// values.
		if err := UpdateQuantity(ctx, db, clm.UserID, productID, iu.Quantity); err != nil {
			return fmt.Errorf("updating product[%d] in cart of user[%d]: %w", productID, clm.UserID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleClear(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		if err := Clear(ctx, db, clm.UserID); err != nil {
			return fmt.Errorf("clearing cart of user[%d]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

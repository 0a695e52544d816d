package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront/api/web"
	"storefront/api/weberr"
	"storefront/core/cart"
	"storefront/core/claims"
	"storefront/database"

	"github.com/jmoiron/sqlx"
)

// HandleCheckout turns the caller's cart into an order. The order,
// its items and the cart flush commit in one transaction.
func HandleCheckout(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		crt, err := cart.Fetch(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching cart of user[%d]: %w", clm.UserID, err)
		}

		if len(crt.Items) == 0 {
			err := errors.New("no items to checkout")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		ord := Order{
			UserID:    clm.UserID,
			Total:     crt.Total,
			CreatedAt: time.Now().UTC(),
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			var err error
			if ord, err = Create(ctx, tx, ord); err != nil {
				return fmt.Errorf("creating order: %w", err)
			}

			for productID, item := range crt.Items {
				it := Item{
					OrderID:   ord.ID,
					ProductID: productID,
					Quantity:  item.Quantity,
					UnitPrice: item.Product.Price,
				}

				if err := CreateItem(ctx, tx, it); err != nil {
					return fmt.Errorf("creating item for product[%d]: %w", productID, err)
				}

				ord.Items = append(ord.Items, it)
			}

			if err := cart.Clear(ctx, tx, clm.UserID); err != nil {
				return fmt.Errorf("flushing cart: %w", err)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("checking out cart of user[%d]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, ord, http.StatusCreated)
	}
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		orders, err := FetchByUser(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("listing orders of user[%d]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, orders, http.StatusOK)
	}
}

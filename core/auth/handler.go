package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"storefront/api/web"
	"storefront/api/weberr"
	"storefront/core/claims"
	"storefront/core/profile"
	"storefront/core/user"
	"storefront/database"
	"storefront/validate"

	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// HandleSignup registers a new user together with its empty profile.
func HandleSignup(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var un user.UserNew
		if err := web.Decode(w, r, &un); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(un); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(un.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		usr := user.User{
			Username:     un.Username,
			Role:         claims.RoleUser,
			PasswordHash: hash,
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			var err error
			if usr, err = user.Create(ctx, tx, usr); err != nil {
				return fmt.Errorf("creating user: %w", err)
			}

			if _, err := profile.Create(ctx, tx, profile.Profile{UserID: usr.ID}); err != nil {
				return fmt.Errorf("creating profile: %w", err)
			}

			return nil
		})
		if err != nil {
			if database.IsUniqueViolation(err) {
				return weberr.NewError(err, "username already taken", http.StatusUnprocessableEntity)
			}
			return fmt.Errorf("signing up user[%s]: %w", un.Username, err)
		}

		return web.Respond(ctx, w, usr, http.StatusCreated)
	}
}

// HandleLogin verifies the credentials and binds the username to a
// fresh session token.
func HandleLogin(db *sqlx.DB, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var ul user.UserLogin
		if err := web.Decode(w, r, &ul); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(ul); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		usr, err := user.FetchByUsername(ctx, db, ul.Username)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return weberr.NewError(err, "invalid credentials", http.StatusUnauthorized)
		case err != nil:
			return fmt.Errorf("fetching user[%s]: %w", ul.Username, err)
		}

		if err := bcrypt.CompareHashAndPassword(usr.PasswordHash, []byte(ul.Password)); err != nil {
			return weberr.NewError(err, "invalid credentials", http.StatusUnauthorized)
		}

		// Fresh token on every login.
		if err := session.RenewToken(ctx); err != nil {
			return fmt.Errorf("renewing session token: %w", err)
		}
		session.Put(ctx, usernameKey, usr.Username)

		return web.Respond(ctx, w, usr, http.StatusOK)
	}
}

func HandleLogout(session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := session.Destroy(ctx); err != nil {
			return fmt.Errorf("destroying session: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

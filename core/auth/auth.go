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
	"storefront/core/user"

	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
)

// Authenticate resolves the session principal to a database user and
// threads the resulting claims through the request context. A session
// that cannot be resolved fails closed with a 401, never a 500.
func Authenticate(session *scs.SessionManager, db *sqlx.DB) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			clm, err := resolve(ctx, session, db)
			if err != nil {
				return err
			}

			ctx = claims.Set(ctx, clm)
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

// Admin behaves like Authenticate and additionally requires the
// admin role.
func Admin(session *scs.SessionManager, db *sqlx.DB) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			clm, err := resolve(ctx, session, db)
			if err != nil {
				return err
			}

			if clm.Role != claims.RoleAdmin {
				return weberr.Forbidden(fmt.Errorf("user[%d] is not an admin", clm.UserID))
			}

			ctx = claims.Set(ctx, clm)
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

func resolve(ctx context.Context, session *scs.SessionManager, db *sqlx.DB) (claims.Claims, error) {
	username := session.GetString(ctx, usernameKey)
	if username == "" {
		return claims.Claims{}, weberr.NotAuthorized(errors.New("user not authenticated"))
	}

	usr, err := user.FetchByUsername(ctx, db, username)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return claims.Claims{}, weberr.NotAuthorized(fmt.Errorf("session user[%s] no longer exists", username))
	case err != nil:
		return claims.Claims{}, fmt.Errorf("resolving session user[%s]: %w", username, err)
	}

	clm := claims.Claims{
		UserID:   usr.ID,
		Username: usr.Username,
		Role:     usr.Role,
	}
	return clm, nil
}

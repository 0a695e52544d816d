package auth

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"storefront/api/web"

	"github.com/alexedwards/scs/v2"
)

// usernameKey is the session entry holding the authenticated
// principal. Everything else about the user is looked up per request.
const usernameKey = "username"

// LoadAndSave adapts the scs middleware to the ctx-aware handler
// chain. The response is buffered so the session cookie can still be
// written after the handler has produced its body.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			var token string
			if cookie, err := r.Cookie(session.Cookie.Name); err == nil {
				token = cookie.Value
			}

			ctx, err := session.Load(ctx, token)
			if err != nil {
				return fmt.Errorf("loading session: %w", err)
			}

			bw := &bufferedWriter{ResponseWriter: w}
			if err := handler(ctx, bw, r); err != nil {
				return err
			}

			switch session.Status(ctx) {
			case scs.Modified:
				token, expiry, err := session.Commit(ctx)
				if err != nil {
					return fmt.Errorf("committing session: %w", err)
				}
				session.WriteSessionCookie(ctx, w, token, expiry)

			case scs.Destroyed:
				session.WriteSessionCookie(ctx, w, "", time.Time{})
			}

			w.Header().Add("Vary", "Cookie")

			if bw.code != 0 {
				w.WriteHeader(bw.code)
			}
			if _, err := w.Write(bw.buf.Bytes()); err != nil {
				return fmt.Errorf("flushing buffered response: %w", err)
			}

			return nil
		}
		return h
	}
	return m
}

type bufferedWriter struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	return bw.buf.Write(b)
}

func (bw *bufferedWriter) WriteHeader(code int) {
	bw.code = code
}

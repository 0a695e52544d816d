package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"storefront/api"
	"storefront/random"
	"storefront/rate"

	"github.com/alexedwards/scs/v2"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/sirupsen/logrus"
)

var pgHostPort string

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

// run spins up one postgres container shared by every test in the
// package. Each test env then gets its own database inside it.
func run(m *testing.M) int {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("connecting to docker: %v", err)
	}

	resource, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_USER=postgres",
		"POSTGRES_PASSWORD=postgres",
	})
	if err != nil {
		log.Fatalf("starting postgres container: %v", err)
	}
	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Printf("purging postgres container: %v", err)
		}
	}()

	pgHostPort = resource.GetHostPort("5432/tcp")

	if err := pool.Retry(func() error {
		db, err := sqlx.Open("postgres", connString("postgres"))
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Ping()
	}); err != nil {
		log.Fatalf("waiting for postgres: %v", err)
	}

	return m.Run()
}

func connString(dbName string) string {
	return fmt.Sprintf("postgres://postgres:postgres@%s/%s?sslmode=disable", pgHostPort, dbName)
}

type TestEnv struct {
	DB     *sqlx.DB
	URL    string
	Server *httptest.Server

	AdminUsername string
	AdminPass     string
	UserUsername  string
	UserPass      string
}

// NewTestEnv creates a fresh database named after the test, migrates
// it, starts an API server on it and registers one plain user plus
// one admin.
func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	t.Helper()

	dbName := fmt.Sprintf("%s_%s", name, random.String(6))

	admin, err := sqlx.Open("postgres", connString("postgres"))
	if err != nil {
		return nil, fmt.Errorf("opening admin connection: %w", err)
	}
	defer admin.Close()

	if _, err := admin.Exec("CREATE DATABASE " + dbName); err != nil {
		return nil, fmt.Errorf("creating database %s: %w", dbName, err)
	}

	db, err := sqlx.Open("postgres", connString(dbName))
	if err != nil {
		return nil, fmt.Errorf("opening test database: %w", err)
	}
	t.Cleanup(func() { db.Close() })

	driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
	if err != nil {
		return nil, fmt.Errorf("creating migration driver: %w", err)
	}

	mig, err := migrate.NewWithDatabaseInstance("file://../../migrations", dbName, driver)
	if err != nil {
		return nil, fmt.Errorf("creating migrator: %w", err)
	}
	if err := mig.Up(); err != nil {
		return nil, fmt.Errorf("migrating test database: %w", err)
	}

	// Generous budget so only the dedicated test can trip the limit.
	limiter := rate.NewLimiter(1000, time.Hour, rate.Every(time.Millisecond))

	server := newServer(t, db, limiter)

	env := &TestEnv{
		DB:            db,
		URL:           server.URL,
		Server:        server,
		AdminUsername: "admin_" + random.String(6),
		AdminPass:     "admin-pass-" + random.String(6),
		UserUsername:  "user_" + random.String(6),
		UserPass:      "user-pass-" + random.String(6),
	}

	if err := Signup(server, env.AdminUsername, env.AdminPass); err != nil {
		return nil, fmt.Errorf("signing up admin: %w", err)
	}
	if err := Signup(server, env.UserUsername, env.UserPass); err != nil {
		return nil, fmt.Errorf("signing up user: %w", err)
	}

	if _, err := db.Exec(`UPDATE users SET role = 'admin' WHERE username = $1`, env.AdminUsername); err != nil {
		return nil, fmt.Errorf("promoting admin: %w", err)
	}

	return env, nil
}

func (e *TestEnv) Client() *http.Client {
	return e.Server.Client()
}

func newServer(t *testing.T, db *sqlx.DB, limiter *rate.Limiter) *httptest.Server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	session := scs.New()
	session.Lifetime = 24 * time.Hour

	mux := api.APIMux(api.APIConfig{
		Log:          logger,
		DB:           db,
		Session:      session,
		LoginLimiter: limiter,
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("creating cookie jar: %v", err)
	}
	server.Client().Jar = jar

	return server
}

func Signup(srv *httptest.Server, username, password string) error {
	body := map[string]string{
		"username":        username,
		"password":        password,
		"confirmPassword": password,
	}

	w, err := postJSON(srv, "/auth/signup", body)
	if err != nil {
		return err
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusCreated {
		return fmt.Errorf("signup of %s: status code %s", username, w.Status)
	}
	return nil
}

func Login(srv *httptest.Server, username, password string) error {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	w, err := postJSON(srv, "/auth/login", body)
	if err != nil {
		return err
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusOK {
		return fmt.Errorf("login of %s: status code %s", username, w.Status)
	}
	return nil
}

func Logout(srv *httptest.Server) error {
	w, err := postJSON(srv, "/auth/logout", nil)
	if err != nil {
		return err
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusNoContent {
		return fmt.Errorf("logout: status code %s", w.Status)
	}
	return nil
}

func postJSON(srv *httptest.Server, path string, body any) (*http.Response, error) {
	return doJSON(srv, http.MethodPost, path, body)
}

func putJSON(srv *httptest.Server, path string, body any) (*http.Response, error) {
	return doJSON(srv, http.MethodPut, path, body)
}

func doJSON(srv *httptest.Server, method, path string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	r, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		return nil, err
	}
	r.Header.Set("Content-Type", "application/json")

	return srv.Client().Do(r)
}

package config

import "time"

type Config struct {
	Web  Web
	DB   DB
	Cors Cors
	Auth Auth
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User         string `conf:"default:postgres"`
	Password     string `conf:"default:postgres,mask"`
	Host         string `conf:"default:localhost"`
	Name         string `conf:"default:storefront"`
	MaxIdleConns int    `conf:"default:3"`
	MaxOpenConns int    `conf:"default:10"`
	DisableTLS   bool   `conf:"default:true"`
}

type Cors struct {
	Origin string
}

type Auth struct {
	SessionLifetime time.Duration `conf:"default:24h"`

	// Budget for login attempts from a single host.
	LoginBurst    int           `conf:"default:10"`
	LoginInterval time.Duration `conf:"default:30s"`
	LoginExpiry   time.Duration `conf:"default:60m"`
}

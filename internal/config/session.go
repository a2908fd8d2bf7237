package config

import "time"

type Session struct {
	CookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"sf_session"`
	TTL          time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	SecureCookie bool          `env:"SESSION_SECURE_COOKIE" envDefault:"false"`
	KeyPrefix    string        `env:"SESSION_KEY_PREFIX" envDefault:"sf:session:"`
}

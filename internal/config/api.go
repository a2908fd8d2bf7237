package config

import (
	"fmt"
	"net/url"
	"time"
)

// API points at the commerce backend.
//
// InternalBaseURL is used for server-side calls; PublicBaseURL is the origin the
// browser sees and is used to build image URLs. When only one is set, the other
// falls back to it.
type API struct {
	InternalBaseURL string        `env:"API_INTERNAL_BASE_URL"`
	PublicBaseURL   string        `env:"API_PUBLIC_BASE_URL" envDefault:"http://localhost:8000"`
	Timeout         time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	ReadAttempts    int           `env:"API_READ_ATTEMPTS" envDefault:"2"`

	CatalogCacheTTL    time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"60s"`
	CategoriesCacheTTL time.Duration `env:"CATEGORIES_CACHE_TTL" envDefault:"300s"`
}

// ServerBaseURL returns the origin used for server-side API calls.
func (a API) ServerBaseURL() string {
	if a.InternalBaseURL != "" {
		return a.InternalBaseURL
	}
	return a.PublicBaseURL
}

func (a API) Validate() error {
	for _, raw := range []string{a.ServerBaseURL(), a.PublicBaseURL} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("parse api base url %q: %w", raw, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("api base url %q must be absolute", raw)
		}
	}
	return nil
}

package config

// Site describes the public storefront.
type Site struct {
	URL    string `env:"SITE_URL" envDefault:"http://localhost:3000"`
	Locale string `env:"SITE_LOCALE" envDefault:"ru"`
	// DefaultCurrency is used when a product or hit carries none.
	DefaultCurrency string `env:"SITE_DEFAULT_CURRENCY" envDefault:"RUB"`
	Build           string `env:"APP_BUILD" envDefault:"dev"`
	Name            string `env:"SITE_NAME" envDefault:"Shopster"`
}

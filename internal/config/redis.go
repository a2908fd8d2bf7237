package config

// Redis backs the session store and the catalog cache. When Addr is empty both
// fall back to in-process implementations.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

func (r Redis) Enabled() bool {
	return r.Addr != ""
}

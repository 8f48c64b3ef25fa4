package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL" envDefault:"file:checkout.db?cache=shared&_fk=1"`

	JWT      JWT      `envPrefix:"JWT_"`
	Services Services `envPrefix:"SVC_"`
	Gateway  Gateway  `envPrefix:"GATEWAY_"`
	Outbox   Outbox   `envPrefix:"OUTBOX_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT"`
}

type JWT struct {
	// Symmetric secret shared by the services that mint and verify tokens.
	Secret    string        `env:"SECRET" envDefault:"local-dev-secret"`
	TTL       time.Duration `env:"TTL" envDefault:"1h"`
	ClockSkew time.Duration `env:"CLOCK_SKEW" envDefault:"0s"`
}

type Services struct {
	ProductURL string `env:"PRODUCT_URL" envDefault:"http://localhost:8001"`
	OrderURL   string `env:"ORDER_URL" envDefault:"http://localhost:8002"`
	UserURL    string `env:"USER_URL" envDefault:"http://localhost:8003"`
	PaymentURL string `env:"PAYMENT_URL" envDefault:"http://localhost:8004"`

	CallTimeout time.Duration `env:"CALL_TIMEOUT" envDefault:"10s"`
}

type Gateway struct {
	// Timeout for the synchronous token-validation call. Any failure,
	// including a timeout, is answered with 401: the gateway never
	// forwards a request it could not authenticate.
	ValidateTimeout time.Duration `env:"VALIDATE_TIMEOUT" envDefault:"5s"`
}

type Outbox struct {
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"2s"`
	CallTimeout  time.Duration `env:"CALL_TIMEOUT" envDefault:"10s"`
	BackoffBase  time.Duration `env:"BACKOFF_BASE" envDefault:"500ms"`
	MaxAttempts  int           `env:"MAX_ATTEMPTS" envDefault:"8"`
	BatchSize    int           `env:"BATCH_SIZE" envDefault:"20"`
}

// Addr builds the listen address, falling back to the service's default
// port when HTTP_PORT is not set.
func (c *Config) Addr(defaultPort string) string {
	port := c.HTTP.Port
	if port == "" {
		port = defaultPort
	}
	return c.HTTP.Host + ":" + port
}

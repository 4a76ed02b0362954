package config

import "time"

type Supplier struct {
	BaseURL string `env:"SUPPLIER_BASE_URL,notEmpty"`

	// 0 keeps the transport default: a slow feed is reported by the
	// cycle itself, not cut short here.
	RequestTimeout time.Duration `env:"SUPPLIER_REQUEST_TIMEOUT" envDefault:"0"`
}

package config

import "time"

type Engine struct {
	ToastTTL time.Duration `env:"TOAST_TTL" envDefault:"2800ms"`
}

package config

type App struct {
	Name    string `env:"APP_NAME" envDefault:"lotdesk"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

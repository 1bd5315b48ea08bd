package config

// DatabaseConfig holds catalog database settings
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=sqlite postgres"`

	// SQLite
	Path string `mapstructure:"path"`

	// PostgreSQL
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

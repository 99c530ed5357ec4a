package config

type Config interface {
	EnvConfig
	CorsConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDatabaseDSN() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Cors
	Security
}

func New() Config {
	return mainConfig{}
}

// Validate checks the configuration invariants that must hold before the
// server starts. A misconfigured signing secret is a startup failure, not a
// runtime error path.
func Validate(c Config) error {
	return validateSecurity(c)
}

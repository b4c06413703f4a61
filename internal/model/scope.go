package model

// Scope identifies the Telegram user a request acts for.
type Scope struct {
	UserID   int64
	ChatID   int64
	Username string
}

// Environment is the deployment environment name.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

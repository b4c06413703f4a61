package middleware

import (
	"task-tracker-bot/pkg/log"
)

// Middleware holds the gin middlewares shared by all routes.
type Middleware struct {
	l log.Logger
}

func New(l log.Logger) Middleware {
	return Middleware{l: l}
}

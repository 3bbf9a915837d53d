// Package http holds the HTTP composition types shared by the router and the
// domain modules.
package http

import (
	"dataquality_backend/platform/config"
	"dataquality_backend/platform/logger"
)

// RouterConfig is the slice of configuration the router reads.
type RouterConfig interface {
	config.HTTPConfig
	config.RateLimitConfig
}

// HealthChecker reports whether the service has reference data to score against.
type HealthChecker interface {
	// ReferenceEntries returns the number of postcodes loaded.
	ReferenceEntries() int
}

// App is filled in by main.go (the composition root) and handed to the router.
type App struct {
	Config  RouterConfig
	Logger  *logger.Logger
	Health  HealthChecker
	Modules []Module
}

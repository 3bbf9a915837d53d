package http

import (
	"github.com/gin-gonic/gin"
)

// Module is a bounded context that mounts its own routes, so the router
// never needs to know individual endpoints.
type Module interface {
	// Name identifies the module in startup logs.
	Name() string
	// RegisterRoutes mounts the module's routes.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext carries the route groups handed to every module.
type RouterContext struct {
	// Engine is the root engine, for routes outside /api/v1.
	Engine *gin.Engine
	// V1 is the rate limited /api/v1 group.
	V1 *gin.RouterGroup
}

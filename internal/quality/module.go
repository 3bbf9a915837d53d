// Package quality provides the data quality bounded context module.
package quality

import (
	"fmt"

	apphttp "dataquality_backend/internal/http"
	"dataquality_backend/internal/quality/handler"
	"dataquality_backend/internal/quality/matcher"
	"dataquality_backend/internal/quality/scoring"
	"dataquality_backend/internal/quality/service"
	"dataquality_backend/internal/quality/transport"
	"dataquality_backend/internal/refdata"
	"dataquality_backend/platform/config"
	"dataquality_backend/platform/logger"
	"dataquality_backend/platform/validator"
)

// Module is the data quality bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	index   *refdata.Index
}

// NewModule creates and initializes the quality module over a loaded index.
func NewModule(index *refdata.Index, val *validator.Validator, cfg config.ScoringConfig, log *logger.Logger) (*Module, error) {
	if err := val.RegisterValidation(transport.PostcodeQueryRule, transport.ValidatePostcodeQuery); err != nil {
		return nil, fmt.Errorf("register %s rule: %w", transport.PostcodeQueryRule, err)
	}

	m := matcher.New(index)
	scorer := scoring.New(m, scoring.WithPhoneRegion(cfg.GetPhoneDefaultRegion()))
	svc := service.New(scorer, m, cfg, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		index:   index,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "quality"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// ReferenceEntries reports the number of postcodes in the reference index.
func (m *Module) ReferenceEntries() int {
	return m.index.Len()
}

// RegisterRoutes mounts quality routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/quality")
	group.POST("/score", m.handler.Score)
	group.POST("/score/batch", m.handler.ScoreBatch)
	group.POST("/submit", m.handler.Submit)
	group.GET("/postcodes/:postcode", m.handler.ClassifyPostcode)
	group.GET("/postcodes/:postcode/municipalities", m.handler.ListMunicipalities)
}

// Compile-time checks that Module implements the http interfaces.
var (
	_ apphttp.Module        = (*Module)(nil)
	_ apphttp.HealthChecker = (*Module)(nil)
)

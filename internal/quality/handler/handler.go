package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dataquality_backend/internal/quality/scoring"
	"dataquality_backend/internal/quality/service"
	"dataquality_backend/internal/quality/transport"
	"dataquality_backend/platform/httpkit"
	"dataquality_backend/platform/sanitize"
	"dataquality_backend/platform/validator"
)

// Handler handles HTTP requests for data quality scoring.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidPostcode  = "invalid postcode"
)

// New creates a new quality handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Score scores a single record.
// POST /api/v1/quality/score
func (h *Handler) Score(c *gin.Context) {
	var req transport.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.ValidationFailed(c, msgValidationFailed, err)
		return
	}

	record := transport.ToRecord(req.Record)
	report := h.svc.Score(c.Request.Context(), record)
	httpkit.OK(c, transport.NewScoreResponse(record, report, h.svc.Region()))
}

// Submit confirms a record as of today and scores it.
// POST /api/v1/quality/submit
func (h *Handler) Submit(c *gin.Context) {
	var req transport.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.ValidationFailed(c, msgValidationFailed, err)
		return
	}

	record, report := h.svc.Submit(c.Request.Context(), transport.ToRecord(req.Record))
	httpkit.OK(c, transport.SubmitResponse{
		Record: record,
		Report: transport.NewScoreResponse(record, report, h.svc.Region()),
	})
}

// ScoreBatch scores several records in one call.
// POST /api/v1/quality/score/batch
func (h *Handler) ScoreBatch(c *gin.Context) {
	var req transport.BatchScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.ValidationFailed(c, msgValidationFailed, err)
		return
	}

	records := make([]scoring.Record, len(req.Records))
	for i, raw := range req.Records {
		records[i] = transport.ToRecord(raw)
	}

	reports, err := h.svc.ScoreBatch(c.Request.Context(), records)
	if httpkit.HandleError(c, err) {
		return
	}

	results := make([]transport.ScoreResponse, len(reports))
	for i, report := range reports {
		results[i] = transport.NewScoreResponse(records[i], report, h.svc.Region())
	}
	httpkit.OK(c, transport.BatchScoreResponse{Results: results})
}

// ClassifyPostcode checks a postcode and optional city against the reference data.
// GET /api/v1/quality/postcodes/:postcode?city=
func (h *Handler) ClassifyPostcode(c *gin.Context) {
	uri, ok := h.bindPostcode(c)
	if !ok {
		return
	}

	var query transport.ClassifyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.ValidationFailed(c, msgValidationFailed, err)
		return
	}

	result := h.svc.Classify(c.Request.Context(), uri.Postcode, sanitize.Text(query.City))
	httpkit.OK(c, result)
}

// ListMunicipalities lists the municipalities likely for a postcode.
// GET /api/v1/quality/postcodes/:postcode/municipalities
func (h *Handler) ListMunicipalities(c *gin.Context) {
	uri, ok := h.bindPostcode(c)
	if !ok {
		return
	}

	httpkit.OK(c, transport.MunicipalitiesResponse{
		Postcode:       uri.Postcode,
		Municipalities: h.svc.Municipalities(c.Request.Context(), uri.Postcode),
	})
}

func (h *Handler) bindPostcode(c *gin.Context) (transport.PostcodeURI, bool) {
	var uri transport.PostcodeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPostcode, nil)
		return uri, false
	}
	if err := h.val.Struct(uri); err != nil {
		httpkit.ValidationFailed(c, msgInvalidPostcode, err)
		return uri, false
	}
	return uri, true
}

package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"dataquality_backend/internal/quality/matcher"
	"dataquality_backend/internal/quality/scoring"
	"dataquality_backend/platform/apperr"
	"dataquality_backend/platform/config"
	"dataquality_backend/platform/logger"
)

const dateLayout = "2006-01-02"

// Service provides the data quality use cases.
type Service struct {
	scorer   *scoring.Scorer
	matcher  scoring.Classifier
	log      *logger.Logger
	maxBatch int
	workers  int
}

// New creates a new quality service.
func New(scorer *scoring.Scorer, m scoring.Classifier, cfg config.ScoringConfig, log *logger.Logger) *Service {
	return &Service{
		scorer:   scorer,
		matcher:  m,
		log:      log,
		maxBatch: cfg.GetBatchMaxRecords(),
		workers:  cfg.GetScoreWorkers(),
	}
}

// Region returns the phone region used for numbers without a country code.
func (s *Service) Region() string {
	return s.scorer.Region()
}

// Score computes the quality report of a record.
func (s *Service) Score(ctx context.Context, record scoring.Record) scoring.Report {
	report := s.scorer.Score(record)
	s.logScored(ctx, report)
	return report
}

// Submit marks the record as confirmed today and scores it. The caller's
// record is left untouched.
func (s *Service) Submit(ctx context.Context, record scoring.Record) (scoring.Record, scoring.Report) {
	now := s.scorer.Now()
	stamped := record.Clone()
	stamped[scoring.FieldLastConfirmed] = now.Format(dateLayout)

	report := s.scorer.ScoreAt(stamped, now)
	s.logScored(ctx, report)
	return stamped, report
}

// ScoreBatch scores records concurrently. Reports are returned in input order.
func (s *Service) ScoreBatch(ctx context.Context, records []scoring.Record) ([]scoring.Report, error) {
	if len(records) == 0 {
		return nil, apperr.Validation("batch must contain at least one record").WithOp("quality.ScoreBatch")
	}
	if len(records) > s.maxBatch {
		return nil, apperr.TooLarge(fmt.Sprintf("batch exceeds %d records", s.maxBatch)).
			WithOp("quality.ScoreBatch").
			WithDetails(map[string]int{"max": s.maxBatch, "received": len(records)})
	}

	now := s.scorer.Now()
	reports := make([]scoring.Report, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, record := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = s.scorer.ScoreAt(record, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).Info("quality batch scored", "records", len(records))
	return reports, nil
}

// Classify checks a postcode/municipality pair against the reference data.
func (s *Service) Classify(_ context.Context, postcode, city string) matcher.Result {
	return s.matcher.Classify(postcode, city)
}

// Municipalities lists the municipalities likely for a postcode.
func (s *Service) Municipalities(_ context.Context, postcode string) []string {
	return s.matcher.Likely(postcode)
}

func (s *Service) logScored(ctx context.Context, report scoring.Report) {
	s.log.WithContext(ctx).QualityScored(
		report.Score,
		report.Subscores.Completeness,
		report.Subscores.Correctness,
		report.Subscores.Currency,
		report.Categories(),
	)
}

// Package simulation runs one credit simulation per request: it resolves the
// lender or the dealer terms, invokes the engine and records telemetry.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/internal/catalog"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/internal/metrics"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/constants"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/loans"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ErrUnknownBank is returned when a bank request names an id missing from
// the catalog.
var ErrUnknownBank = errors.New("unknown bank")

// Options tunes a Simulator. Zero values select the defaults.
type Options struct {
	// Direct selects how direct installments are decomposed.
	Direct loans.DirectOptions
	// Now supplies the default start date; time.Now when nil.
	Now func() time.Time
	// Tracer records one span per run; the global tracer when nil.
	Tracer trace.Tracer
}

// Simulator is safe for concurrent use. It holds only read-only state.
type Simulator struct {
	logger  *zap.Logger
	catalog *catalog.Catalog
	terms   loans.DirectTerms
	direct  loans.DirectOptions
	now     func() time.Time
	tracer  trace.Tracer
}

// New creates a Simulator over a lender catalog and the dealer's direct terms.
func New(logger *zap.Logger, cat *catalog.Catalog, terms loans.DirectTerms, opts Options) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cat == nil {
		cat = catalog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(constants.DefaultServiceName)
	}
	return &Simulator{
		logger:  logger,
		catalog: cat,
		terms:   terms,
		direct:  opts.Direct,
		now:     opts.Now,
		tracer:  opts.Tracer,
	}
}

// Banks lists the catalog profiles ordered by id.
func (s *Simulator) Banks() []loans.BankProfile {
	return s.catalog.Profiles()
}

// DirectTerms returns the dealer terms used to price direct loans.
func (s *Simulator) DirectTerms() loans.DirectTerms {
	return s.terms
}

// Run computes the schedule for one request. Only an invalid mode, an unknown
// bank or a cancelled context produce an error; every numeric input is
// clamped by the engine.
func (s *Simulator) Run(ctx context.Context, req loans.LoanRequest) (loans.ScheduleResult, error) {
	ctx, span := s.tracer.Start(ctx, "simulation.Run")
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return loans.ScheduleResult{}, err
	}

	mode, err := loans.ParseMode(string(req.Mode))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return loans.ScheduleResult{}, err
	}
	req.Mode = mode
	req = req.Normalize(s.now())

	span.SetAttributes(
		attribute.String("credit.mode", string(req.Mode)),
		attribute.String("credit.system", string(req.System)),
		attribute.Int("credit.term_months", req.TermMonths),
	)

	start := time.Now()
	var result loans.ScheduleResult
	switch req.Mode {
	case loans.ModeBank:
		span.SetAttributes(attribute.String("credit.bank_id", req.BankID))
		profile, ok := s.catalog.Lookup(req.BankID)
		if !ok {
			metrics.UnknownBankLookups.Inc()
			metrics.ObserveSchedule(string(req.Mode), string(req.System), "unknown_bank", time.Since(start))
			err := fmt.Errorf("%w: %q", ErrUnknownBank, req.BankID)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logger.Warn("unknown bank requested",
				zap.String("op", "simulation.Run"),
				zap.String("bankId", req.BankID),
			)
			return loans.ScheduleResult{}, err
		}
		result = loans.ComputeBankSchedule(req, profile, req.System)
	default:
		quote := loans.QuoteDirect(req, s.terms)
		result = loans.ComputeDirectScheduleWithOptions(req, quote.FixedInstallment, quote.FeesTotal, quote.FinancedPrincipal, s.direct)
	}
	elapsed := time.Since(start)

	metrics.ObserveSchedule(string(result.Mode), string(result.System), "ok", elapsed)
	span.SetAttributes(
		attribute.Int("credit.rows", len(result.Rows)),
		attribute.Float64("credit.total_debt", result.TotalDebt),
	)
	s.logger.Debug("schedule computed",
		zap.String("op", "simulation.Run"),
		zap.String("mode", string(result.Mode)),
		zap.String("system", string(result.System)),
		zap.Int("termMonths", result.TermMonths),
		zap.Float64("financedPrincipal", result.FinancedPrincipal),
		zap.Float64("totalDebt", result.TotalDebt),
		zap.Duration("elapsed", elapsed),
	)

	return result, nil
}

// Package server exposes the credit simulator over a JSON HTTP API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/internal/metrics"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/internal/simulation"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/adapters"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/constants"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/datetime"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/loans"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/output"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Simulator computes schedules and lists the available lenders.
type Simulator interface {
	Run(ctx context.Context, req loans.LoanRequest) (loans.ScheduleResult, error)
	Banks() []loans.BankProfile
}

// Options configures NewHandler. Zero values select the defaults.
type Options struct {
	MaxBodySize int64
	Version     string
	MetricsPath string
}

type handler struct {
	logger      *zap.Logger
	sim         Simulator
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the schedule API and
// the Prometheus metrics endpoint.
func NewHandler(logger *zap.Logger, sim Simulator, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = constants.DefaultMetricsPath
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, sim: sim, maxBodySize: opts.MaxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/schedule", instrument("/api/schedule", h.handleSchedule))
	mux.HandleFunc("/api/banks", instrument("/api/banks", h.handleBanks))
	mux.HandleFunc("/api/version", instrument("/api/version", h.handleVersion))
	mux.Handle(opts.MetricsPath, promhttp.Handler())

	return mux
}

type scheduleRequest struct {
	VehiclePrice float64            `json:"vehiclePrice"`
	DownPayment  downPaymentRequest `json:"downPayment"`
	TermMonths   int                `json:"termMonths"`
	Mode         string             `json:"mode"`
	BankID       string             `json:"bankId"`
	System       string             `json:"system"`
	StartDate    string             `json:"startDate"`
}

type downPaymentRequest struct {
	Mode  string  `json:"mode"`
	Value float64 `json:"value"`
}

type scheduleResponse struct {
	Schedule adapters.ScheduleView `json:"schedule"`
	CSV      string                `json:"csv"`
	Duration string                `json:"duration"`
}

type bankResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	AnnualRatePct      float64 `json:"annualRatePct"`
	LegalFee           float64 `json:"legalFee"`
	InsuranceRatePct   float64 `json:"insuranceRatePct"`
	DesgravamenRatePct float64 `json:"desgravamenRatePct"`
	GPSMonthlyFee      float64 `json:"gpsMonthlyFee"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var payload scheduleRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	req, err := payload.toLoanRequest()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	result, err := h.sim.Run(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, simulation.ErrUnknownBank), errors.Is(err, loans.ErrInvalidMode):
			status = http.StatusBadRequest
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			status = http.StatusServiceUnavailable
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	view := adapters.Present(result)
	elapsed := time.Since(start)
	h.logger.Info("schedule computed",
		zap.String("op", op),
		zap.String("mode", view.Mode),
		zap.Int("rows", len(view.Rows)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, scheduleResponse{
		Schedule: view,
		CSV:      output.CsvString(view),
		Duration: elapsed.String(),
	})
}

func (p scheduleRequest) toLoanRequest() (loans.LoanRequest, error) {
	mode, err := loans.ParseMode(p.Mode)
	if err != nil {
		return loans.LoanRequest{}, err
	}
	system, err := loans.ParseSystem(p.System)
	if err != nil {
		return loans.LoanRequest{}, err
	}
	dpMode, err := loans.ParseDownPaymentMode(p.DownPayment.Mode)
	if err != nil {
		return loans.LoanRequest{}, err
	}
	startDate, err := datetime.ParseDate(p.StartDate)
	if err != nil {
		return loans.LoanRequest{}, fmt.Errorf("invalid startDate %q: expected %s", p.StartDate, constants.DateLayout)
	}
	if mode == loans.ModeBank && strings.TrimSpace(p.BankID) == "" {
		return loans.LoanRequest{}, errors.New("bankId is required for BANK loans")
	}

	return loans.LoanRequest{
		VehiclePrice: p.VehiclePrice,
		DownPayment:  loans.DownPayment{Mode: dpMode, Value: p.DownPayment.Value},
		TermMonths:   p.TermMonths,
		Mode:         mode,
		BankID:       p.BankID,
		System:       system,
		StartDate:    startDate,
	}, nil
}

func (h *handler) handleBanks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	profiles := h.sim.Banks()
	banks := make([]bankResponse, 0, len(profiles))
	for _, p := range profiles {
		banks = append(banks, bankResponse{
			ID:                 p.ID,
			Name:               p.Name,
			AnnualRatePct:      p.AnnualRatePct,
			LegalFee:           p.LegalFee,
			InsuranceRatePct:   p.InsuranceRatePct,
			DesgravamenRatePct: p.DesgravamenRatePct,
			GPSMonthlyFee:      p.GPSMonthlyFee,
		})
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"banks": banks})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("schedule request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes the payload before sending the status so an encoding
// failure still reaches the client as a 500.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(map[string]string{"error": "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	}
}

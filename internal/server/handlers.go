package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/openmatchlabs/proforma/internal/config"
	"github.com/openmatchlabs/proforma/internal/engine"
	"github.com/openmatchlabs/proforma/internal/export"
	"github.com/openmatchlabs/proforma/internal/model"
)

// sweepRequest carries one sensitivity sweep. Explicit Values win;
// otherwise From/To/Steps build a linear range, and when the range is
// omitted too, it defaults to 50%..150% of the base value.
type sweepRequest struct {
	Assumptions config.AssumptionsFile `json:"assumptions"`
	Parameter   string                 `json:"parameter"`
	Values      []float64              `json:"values,omitempty"`
	From        *float64               `json:"from,omitempty"`
	To          *float64               `json:"to,omitempty"`
	Steps       int                    `json:"steps,omitempty"`
}

type sweepResponse struct {
	Parameter model.SweepParameter `json:"parameter"`
	Label     string               `json:"label"`
	Points    []model.SweepPoint   `json:"points"`
}

// Status is the /v1/status payload, exported so `proforma serve status`
// can decode its probe.
type Status struct {
	Status        string      `json:"status"`
	Version       string      `json:"version"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	Requests      int64       `json:"requests"`
	Cache         CacheStatus `json:"cache"`
}

// CacheStatus reports the projection cache counters.
type CacheStatus struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	hits, misses := s.cache.Stats()
	s.respondJSON(w, http.StatusOK, Status{
		Status:        "ok",
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Requests:      s.requests.Load(),
		Cache: CacheStatus{
			Entries: s.cache.Len(),
			Hits:    hits,
			Misses:  misses,
		},
	})
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	var file config.AssumptionsFile
	if err := json.NewDecoder(r.Body).Decode(&file); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("decoding body: %w", err))
		return
	}

	a, err := file.ToAssumptions()
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}

	ledger, err := s.cache.Project(a)
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}

	s.respondJSON(w, http.StatusOK, export.BuildDocument(a, ledger))
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req sweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("decoding body: %w", err))
		return
	}

	param, err := model.ParseSweepParameter(req.Parameter)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	a, err := req.Assumptions.ToAssumptions()
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}

	values, err := s.sweepValues(req, param, a)
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}

	points, err := engine.ParallelSweep(a, param, values)
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}

	s.respondJSON(w, http.StatusOK, sweepResponse{
		Parameter: param,
		Label:     param.Label(),
		Points:    points,
	})
}

// sweepValues resolves the sample values for a sweep request.
func (s *Server) sweepValues(req sweepRequest, param model.SweepParameter, a model.Assumptions) ([]decimal.Decimal, error) {
	if len(req.Values) > 0 {
		out := make([]decimal.Decimal, len(req.Values))
		for i, v := range req.Values {
			out[i] = decimal.NewFromFloat(v)
		}
		return out, nil
	}

	steps := req.Steps
	if steps <= 0 {
		steps = s.sweepSteps
	}

	var lo, hi decimal.Decimal
	switch {
	case req.From != nil && req.To != nil:
		lo = decimal.NewFromFloat(*req.From)
		hi = decimal.NewFromFloat(*req.To)
	default:
		base, err := param.BaseValue(a)
		if err != nil {
			return nil, err
		}
		if base.IsZero() {
			return nil, &model.ValidationError{Field: "from", Reason: "required when the swept parameter's base value is zero"}
		}
		lo = base.Mul(decimal.NewFromFloat(0.5))
		hi = base.Mul(decimal.NewFromFloat(1.5))
	}

	return engine.LinearRange(lo, hi, steps), nil
}

// statusFor maps domain errors onto HTTP status codes: invalid input is the
// caller's fault, anything else is ours.
func statusFor(err error) int {
	var verr *model.ValidationError
	if errors.As(err, &verr) || errors.Is(err, model.ErrUnsupportedParameter) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respondJSON(w, status, errorResponse{Error: err.Error()})
}

package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openmatchlabs/proforma/internal/config"
	"github.com/openmatchlabs/proforma/internal/export"
	"github.com/openmatchlabs/proforma/internal/model"
)

func newTestServer() *Server {
	return New(zap.NewNop(), "test", 9)
}

func planFile() config.AssumptionsFile {
	return config.AssumptionsFile{
		HorizonMonths:       12,
		MonthlyGrowthRate:   0.10,
		VariableCostPerUser: 1,
		InitialInvestment:   1000,
		TaxRate:             0.25,
		Pricing:             config.PricingSection{PremiumPrice: 10, BasicPrice: 5},
		InitialUsers:        config.InitialUsersSection{Premium: 50, Basic: 100},
		Payroll: []config.PayrollEntry{
			{Role: "Founder", MonthlySalary: 500, Headcount: 1},
		},
		FixedCosts: map[string]float64{"infrastructure": 200},
	}
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, rdr)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestProject(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/project", planFile())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var doc export.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Len(t, doc.Ledger, 12)
	assert.Equal(t, model.RiskLow, doc.Risk)
	require.NotNil(t, doc.BreakEvenMonth)
	assert.Equal(t, 1, *doc.BreakEvenMonth)
}

func TestProjectValidationError(t *testing.T) {
	file := planFile()
	file.TaxRate = 1.5

	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/project", file)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var er errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
	assert.Contains(t, er.Error, "tax_rate")
}

func TestProjectMalformedBody(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/project", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectMethodNotAllowed(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/v1/project", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSweepExplicitRange(t *testing.T) {
	req := sweepRequest{
		Assumptions: planFile(),
		Parameter:   "premium-price",
		From:        floatPtr(5),
		To:          floatPtr(15),
		Steps:       3,
	}

	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/sweep", req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp sweepResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.SweepPremiumPrice, resp.Parameter)
	require.Len(t, resp.Points, 3)
	assert.Equal(t, "5", resp.Points[0].Value.String())
	assert.Equal(t, "10", resp.Points[1].Value.String())
	assert.Equal(t, "15", resp.Points[2].Value.String())

	// Raising a price never lowers the outcome.
	assert.True(t, resp.Points[2].FinalNetProfit.GreaterThan(resp.Points[0].FinalNetProfit))
}

func TestSweepDefaultRange(t *testing.T) {
	req := sweepRequest{
		Assumptions: planFile(),
		Parameter:   "premium-price",
	}

	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/sweep", req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp sweepResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Points, 9)
	assert.Equal(t, "5", resp.Points[0].Value.String())
	assert.Equal(t, "15", resp.Points[8].Value.String())
}

func TestSweepExplicitValues(t *testing.T) {
	req := sweepRequest{
		Assumptions: planFile(),
		Parameter:   "growth-rate",
		Values:      []float64{0, 0.1, 0.2},
	}

	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/sweep", req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp sweepResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Points, 3)
	assert.True(t, resp.Points[0].Value.IsZero())
}

func TestSweepUnsupportedParameter(t *testing.T) {
	req := sweepRequest{Assumptions: planFile(), Parameter: "tax-rate"}

	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/sweep", req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var er errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
	assert.Contains(t, er.Error, "unsupported sweep parameter")
}

func TestSweepZeroBaseNeedsExplicitRange(t *testing.T) {
	file := planFile()
	file.MonthlyGrowthRate = 0
	req := sweepRequest{Assumptions: file, Parameter: "growth-rate"}

	rec := doJSON(t, newTestServer(), http.MethodPost, "/v1/sweep", req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var er errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
	assert.Contains(t, er.Error, "from")
}

func TestStatusTracksCache(t *testing.T) {
	s := newTestServer()

	// Same plan twice: one computation, one cache hit.
	require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodPost, "/v1/project", planFile()).Code)
	require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodPost, "/v1/project", planFile()).Code)

	rec := doJSON(t, s, http.MethodGet, "/v1/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var st Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "ok", st.Status)
	assert.Equal(t, "test", st.Version)
	assert.Equal(t, int64(3), st.Requests)
	assert.Equal(t, 1, st.Cache.Entries)
	assert.Equal(t, int64(1), st.Cache.Hits)
	assert.Equal(t, int64(1), st.Cache.Misses)
}

func floatPtr(f float64) *float64 { return &f }

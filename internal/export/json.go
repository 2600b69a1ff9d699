package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/openmatchlabs/proforma/internal/config"
	"github.com/openmatchlabs/proforma/internal/engine"
	"github.com/openmatchlabs/proforma/internal/model"
)

// Document is the complete projection bundle written by the JSON export
// and returned by the HTTP API.
type Document struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Assumptions config.AssumptionsFile `json:"assumptions"`
	Ledger      model.Ledger           `json:"ledger"`
	Stats       model.LedgerStats      `json:"stats"`
	Risk        model.RiskLevel        `json:"risk"`

	// BreakEvenMonth is nil when no month in the horizon turns a net profit.
	BreakEvenMonth *int `json:"break_even_month"`
	// RequiredPremiumUsers is nil when the premium contribution margin is
	// not positive, so that no subscriber count covers the overhead.
	RequiredPremiumUsers *int64 `json:"required_premium_users"`
}

// BuildDocument assembles the export document for a plan and its computed
// ledger.
func BuildDocument(a model.Assumptions, l model.Ledger) Document {
	doc := Document{
		GeneratedAt: time.Now().UTC(),
		Assumptions: config.FromAssumptions(a),
		Ledger:      l,
		Stats:       engine.Describe(l),
		Risk:        engine.ClassifyRisk(l),
	}
	if be, ok := engine.FindBreakEven(l); ok {
		month := be.Month
		doc.BreakEvenMonth = &month
	}
	if n, ok := engine.RequiredPremiumUsers(a); ok {
		doc.RequiredPremiumUsers = &n
	}
	return doc
}

// WriteJSON writes the document indented for human diffing.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

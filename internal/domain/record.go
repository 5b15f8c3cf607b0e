package domain

import (
	"time"

	"github.com/rs/xid"
)

// SyntheticModel is the placeholder model name for records whose log line
// carried no model field.
const SyntheticModel = "<synthetic>"

// UsageRecord is one accepted log line. Records are created once during
// parsing and never mutated afterwards; everything downstream aggregates
// them by value.
type UsageRecord struct {
	ID         string      `json:"id"`
	Timestamp  time.Time   `json:"timestamp"`
	Model      string      `json:"model"`
	Tokens     TokenCounts `json:"tokens"`
	CostUSD    float64     `json:"cost_usd"`
	Project    string      `json:"project,omitempty"`
	SourceFile string      `json:"source_file,omitempty"`
	SessionID  string      `json:"session_id,omitempty"`
	MessageID  string      `json:"message_id,omitempty"`
	RequestID  string      `json:"request_id,omitempty"`
}

// DedupKey returns the stable identity used to discard repeat deliveries.
// Only records carrying both message and request ids can be deduplicated.
func (r UsageRecord) DedupKey() (string, bool) {
	if r.MessageID == "" || r.RequestID == "" {
		return "", false
	}
	return r.MessageID + ":" + r.RequestID, true
}

// DeriveID fills in the record id: the dedup key when available, otherwise
// a locally-unique synthesized id (timestamp plus a random component).
func (r *UsageRecord) DeriveID() {
	if key, ok := r.DedupKey(); ok {
		r.ID = key
		return
	}
	r.ID = r.Timestamp.UTC().Format(time.RFC3339Nano) + "-" + xid.New().String()
}

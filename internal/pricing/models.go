package pricing

import (
	_ "embed"
	"encoding/json"
	"strings"
)

//go:embed pricing.json
var defaultPricingJSON []byte

// ModelPricing holds per-1M-token rates for one model or model family.
type ModelPricing struct {
	Input         float64 `json:"input"`
	Output        float64 `json:"output"`
	CacheCreation float64 `json:"cache_creation"`
	CacheRead     float64 `json:"cache_read"`
}

type familyRule struct {
	Match string `json:"match"`
	ModelPricing
}

// Table resolves model names to rates. Resolution order: exact per-model
// overrides (merged in from LiteLLM), then the ordered family list via
// case-insensitive substring match (first match wins), then the fallback.
// The fallback is the most expensive known family so that unknown models
// overcount rather than silently undercount.
type Table struct {
	exact    map[string]ModelPricing
	families []familyRule
	fallback ModelPricing
}

// LoadDefault builds a Table from the embedded family rates.
func LoadDefault() (*Table, error) {
	var families []familyRule
	if err := json.Unmarshal(defaultPricingJSON, &families); err != nil {
		return nil, err
	}
	t := &Table{
		exact:    make(map[string]ModelPricing),
		families: families,
	}
	for _, f := range families {
		if f.Input > t.fallback.Input {
			t.fallback = f.ModelPricing
		}
	}
	return t, nil
}

// Merge installs exact per-model rates, typically fetched from LiteLLM.
// Existing overrides for the same model are replaced.
func (t *Table) Merge(overrides map[string]ModelPricing) {
	for model, p := range overrides {
		t.exact[model] = p
	}
}

// Lookup returns rates for a model name. Total: every name resolves.
func (t *Table) Lookup(model string) ModelPricing {
	if p, ok := t.exact[model]; ok {
		return p
	}
	lower := strings.ToLower(model)
	for _, f := range t.families {
		if strings.Contains(lower, f.Match) {
			return f.ModelPricing
		}
	}
	return t.fallback
}

package parser

import (
	"bufio"
	"encoding/json"
	"io"
	"time"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/domain"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/pricing"
)

// rawRecord maps the JSONL structure we care about.
type rawRecord struct {
	Timestamp string   `json:"timestamp"`
	SessionID string   `json:"sessionId"`
	RequestID string   `json:"requestId"`
	CostUSD   *float64 `json:"costUSD"`
	Message   *struct {
		ID    string `json:"id"`
		Model string `json:"model"`
		Usage *struct {
			InputTokens              int `json:"input_tokens"`
			OutputTokens             int `json:"output_tokens"`
			CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
			CacheReadInputTokens     int `json:"cache_read_input_tokens"`
		} `json:"usage"`
	} `json:"message"`
}

// ParseLine turns one raw log line into zero or one usage record.
// Malformed JSON, missing timestamps, missing usage blocks and zero-token
// lines are ordinary log noise: they produce no record and no error.
// dedup is the caller's per-file set of seen ids; lines whose
// messageID:requestID pair was already seen are dropped as repeat
// deliveries. Lines lacking either id are never deduplicated.
func ParseLine(line []byte, calc *pricing.Calculator, dedup map[string]struct{}, sourceFile, project string) (domain.UsageRecord, bool) {
	if len(line) == 0 {
		return domain.UsageRecord{}, false
	}

	var raw rawRecord
	if err := json.Unmarshal(line, &raw); err != nil {
		return domain.UsageRecord{}, false
	}
	if raw.Message == nil || raw.Message.Usage == nil {
		return domain.UsageRecord{}, false
	}

	ts, err := time.Parse(time.RFC3339Nano, raw.Timestamp)
	if err != nil {
		ts, err = time.Parse("2006-01-02T15:04:05.000Z", raw.Timestamp)
		if err != nil {
			return domain.UsageRecord{}, false
		}
	}

	tokens := domain.TokenCounts{
		Input:         raw.Message.Usage.InputTokens,
		Output:        raw.Message.Usage.OutputTokens,
		CacheCreation: raw.Message.Usage.CacheCreationInputTokens,
		CacheRead:     raw.Message.Usage.CacheReadInputTokens,
	}
	if tokens.IsZero() {
		return domain.UsageRecord{}, false
	}

	model := raw.Message.Model
	if model == "" {
		model = domain.SyntheticModel
	}

	rec := domain.UsageRecord{
		Timestamp:  ts.UTC(),
		Model:      model,
		Tokens:     tokens,
		Project:    project,
		SourceFile: sourceFile,
		SessionID:  raw.SessionID,
		MessageID:  raw.Message.ID,
		RequestID:  raw.RequestID,
	}

	if key, ok := rec.DedupKey(); ok {
		if _, seen := dedup[key]; seen {
			return domain.UsageRecord{}, false
		}
		dedup[key] = struct{}{}
	}
	rec.DeriveID()

	var explicit float64
	if raw.CostUSD != nil {
		explicit = *raw.CostUSD
	}
	rec.CostUSD = calc.Resolve(model, tokens, explicit, raw.CostUSD != nil)

	return rec, true
}

// ParseResult holds parsed records and noise counters.
type ParseResult struct {
	Records   []domain.UsageRecord
	SkipCount int
}

// ParseReader reads JSONL from r, splitting on the newline byte and
// applying ParseLine per line with one dedup set scoped to this reader.
func ParseReader(r io.Reader, calc *pricing.Calculator, sourceFile, project string) ParseResult {
	var result ParseResult
	dedup := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB max line

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		rec, ok := ParseLine(line, calc, dedup, sourceFile, project)
		if !ok {
			result.SkipCount++
			continue
		}
		result.Records = append(result.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		result.SkipCount++
	}

	return result
}

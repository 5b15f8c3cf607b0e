package domain

// TokenCounts holds the four token categories billed by the API.
// It is a value type; aggregation happens by pointwise addition.
type TokenCounts struct {
	Input         int `json:"input_tokens"`
	Output        int `json:"output_tokens"`
	CacheCreation int `json:"cache_creation_tokens"`
	CacheRead     int `json:"cache_read_tokens"`
}

// Total returns the sum of all four token categories.
func (t TokenCounts) Total() int {
	return t.Input + t.Output + t.CacheCreation + t.CacheRead
}

// Add returns the pointwise sum of t and other.
func (t TokenCounts) Add(other TokenCounts) TokenCounts {
	return TokenCounts{
		Input:         t.Input + other.Input,
		Output:        t.Output + other.Output,
		CacheCreation: t.CacheCreation + other.CacheCreation,
		CacheRead:     t.CacheRead + other.CacheRead,
	}
}

// IsZero reports whether every category is zero.
func (t TokenCounts) IsZero() bool {
	return t.Total() == 0
}

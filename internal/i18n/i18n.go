package i18n

import "fmt"

// Language represents a supported locale.
type Language string

const (
	LangEN Language = "en"
)

var current Language = LangEN

// SetLanguage changes the active locale.
// Unrecognized values fall back to English.
func SetLanguage(lang string) {
	switch Language(lang) {
	case LangEN:
		current = LangEN
	default:
		current = LangEN
	}
}

// Current returns the active language.
func Current() Language {
	return current
}

// T returns the translated string for the given key.
// If the key is not found, the key itself is returned.
func T(key string) string {
	if v, ok := en[key]; ok {
		return v
	}
	return key
}

// Tf returns a formatted translated string.
func Tf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

var en = map[string]string{
	"tab_live":           "Live Session",
	"tab_blocks":         "Session Blocks",
	"tab_daily":          "Daily Report",
	"tokens":             "Tokens",
	"cost":               "Cost",
	"models":             "Models",
	"burn_rate":          "Burn Rate",
	"projection":         "Projection",
	"tokens_per_min":     "%s tok/min",
	"cost_per_hour":      "$%.2f/h",
	"session_remaining":  "%s remaining",
	"no_active_session":  "No active session",
	"session_active":     "ACTIVE",
	"session_done":       "DONE",
	"token_limit":        "Token Limit",
	"limit_auto":         "auto (%s)",
	"limit_exceeded":     "Projected usage exceeds the token limit",
	"loading":            "Scanning usage logs…",
	"no_data":            "No usage data",
	"hourly_costs":       "Hourly Cost (today)",
	"total_cost":         "Total Cost",
	"sessions":           "Sessions",
	"help_quit":          "q: quit",
	"help_tabs":          "tab: switch view",
	"help_refresh":       "r: refresh",
}

package types

import (
	"fmt"
	"strings"
)

// Severity is the triage tier assigned to a ticket
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "🔥 On Fire"
)

// Severities lists every tier from least to most severe
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// Valid reports whether s is one of the four known tiers
func (s Severity) Valid() bool {
	for _, known := range Severities {
		if s == known {
			return true
		}
	}
	return false
}

// Strategy selects which analyzer produces the Result
type Strategy string

const (
	StrategyHeuristic Strategy = "heuristic"
	StrategyRemote    Strategy = "remote"
)

// ParseStrategy maps user input to a Strategy
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "heuristic", "local":
		return StrategyHeuristic, nil
	case "remote", "ai", "llm":
		return StrategyRemote, nil
	default:
		return "", fmt.Errorf("unknown strategy: %q", s)
	}
}

// Result is the triage verdict produced by either analyzer
type Result struct {
	// Severity is the tier assigned to the ticket
	Severity Severity `json:"severity" yaml:"severity"`

	// Urgency is the human-readable response-time target, e.g. "Respond within 4 hours"
	Urgency string `json:"urgency" yaml:"urgency"`

	// Emoji is a single glyph summarising the situation
	Emoji string `json:"emoji" yaml:"emoji"`

	// FirstReply is the drafted first response to the customer
	FirstReply string `json:"first_reply" yaml:"first_reply"`

	// Notes is free text for the support agent, may be empty
	Notes string `json:"notes" yaml:"notes"`

	// Panic is the 0-100 panic score
	Panic int `json:"panic" yaml:"panic"`

	// Source is the strategy that produced the result
	Source Strategy `json:"source,omitempty" yaml:"source,omitempty"`
}

// ClampPanic bounds a panic score to [0,100]
func ClampPanic(n int) int {
	return min(max(n, 0), 100)
}

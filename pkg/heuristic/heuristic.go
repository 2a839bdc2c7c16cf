// Package heuristic implements the local, deterministic triage strategy.
package heuristic

import (
	"strings"

	"github.com/FrenchMajesty/ticket-triage/pkg/rules"
	"github.com/FrenchMajesty/ticket-triage/pkg/types"
	"github.com/FrenchMajesty/ticket-triage/pkg/urgency"
)

const (
	baseScore = 10

	criticalThreshold = 85
	highThreshold     = 60
	mediumThreshold   = 35

	tipLine = "Tip: enable AI mode for richer classification + better wording."
)

// weights are cumulative; time carries no weight
var weights = []struct {
	signal rules.Signal
	weight int
}{
	{rules.Outage, 30},
	{rules.ManyUsers, 20},
	{rules.Security, 35},
	{rules.DataLoss, 25},
	{rules.Payments, 15},
	{rules.VIP, 10},
	{rules.Angry, 10},
	{rules.UrgentWords, 10},
}

var responseMinutes = map[types.Severity]int{
	types.SeverityCritical: 15,
	types.SeverityHigh:     60,
	types.SeverityMedium:   240,
	types.SeverityLow:      1440,
}

// Analyze triages text without any I/O. Identical input always yields an identical Result.
func Analyze(text string) *types.Result {
	signals := rules.Detect(text)
	score := Score(signals)
	severity := SeverityFor(score)

	return &types.Result{
		Severity:   severity,
		Urgency:    urgency.Format(ResponseMinutes(severity)),
		Emoji:      Emoji(signals, score),
		FirstReply: ComposeReply(severity, signals),
		Notes:      Notes(signals),
		Panic:      score,
		Source:     types.StrategyHeuristic,
	}
}

// Score sums the weights of every signal that fired onto the base score, clamped to [0,100]
func Score(signals rules.SignalSet) int {
	score := baseScore
	for _, w := range weights {
		if signals.Has(w.signal) {
			score += w.weight
		}
	}
	return types.ClampPanic(score)
}

// SeverityFor maps a score to a tier. Each threshold is inclusive.
func SeverityFor(score int) types.Severity {
	switch {
	case score >= criticalThreshold:
		return types.SeverityCritical
	case score >= highThreshold:
		return types.SeverityHigh
	case score >= mediumThreshold:
		return types.SeverityMedium
	default:
		return types.SeverityLow
	}
}

// ResponseMinutes is the response-time target for a tier
func ResponseMinutes(severity types.Severity) int {
	if m, ok := responseMinutes[severity]; ok {
		return m
	}
	return responseMinutes[types.SeverityLow]
}

// Emoji picks the first matching glyph: security, outage, payments, then score bands.
func Emoji(signals rules.SignalSet, score int) string {
	switch {
	case signals.Has(rules.Security):
		return "🛡️"
	case signals.Has(rules.Outage):
		return "🚨"
	case signals.Has(rules.Payments):
		return "💳"
	case score >= highThreshold:
		return "😬"
	case score >= mediumThreshold:
		return "🧯"
	default:
		return "✅"
	}
}

// Notes lists the signals that fired followed by a fixed tip line
func Notes(signals rules.SignalSet) string {
	fired := "none"
	if names := signals.Names(); len(names) > 0 {
		fired = strings.Join(names, ", ")
	}
	return "Signals: " + fired + "\n" + tipLine
}

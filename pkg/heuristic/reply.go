package heuristic

import (
	"github.com/FrenchMajesty/ticket-triage/pkg/rules"
	"github.com/FrenchMajesty/ticket-triage/pkg/types"
)

var openers = map[types.Severity]string{
	types.SeverityCritical: "Thanks for flagging this — we’re treating it as top priority.",
	types.SeverityHigh:     "Thanks — we’re on it and investigating now.",
	types.SeverityMedium:   "Thanks — we’ve received this and are looking into it.",
}

var etas = map[types.Severity]string{
	types.SeverityCritical: "Next update in ~30 minutes (or sooner if we identify the cause).",
	types.SeverityHigh:     "Next update in ~2 hours.",
	types.SeverityMedium:   "Next update by end of day.",
}

const (
	defaultOpener = "Thanks — we’ve received your request."
	defaultETA    = "We’ll follow up once we’ve investigated."
)

// questions is evaluated in order, independently of Emoji
var questions = []struct {
	signal   rules.Signal
	question string
}{
	{rules.Security, "Can you share any relevant logs, timestamps, and whether credentials may be exposed?"},
	{rules.Outage, "Can you confirm scope (who is impacted) and provide timestamps / error messages?"},
	{rules.Payments, "Can you share order IDs, timestamps, and any payment provider error details?"},
}

const defaultQuestion = "Can you share steps to reproduce and expected vs actual behavior?"

// ComposeReply builds the opener, targeted question and ETA paragraphs.
// Nothing from the ticket itself is echoed back.
func ComposeReply(severity types.Severity, signals rules.SignalSet) string {
	opener, ok := openers[severity]
	if !ok {
		opener = defaultOpener
	}

	eta, ok := etas[severity]
	if !ok {
		eta = defaultETA
	}

	return opener + "\n\n" + pickQuestion(signals) + "\n\n" + eta
}

func pickQuestion(signals rules.SignalSet) string {
	for _, q := range questions {
		if signals.Has(q.signal) {
			return q.question
		}
	}
	return defaultQuestion
}

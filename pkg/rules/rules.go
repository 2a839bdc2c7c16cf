// Package rules detects triage signals in free-text support tickets.
package rules

import (
	"regexp"
	"strings"
)

// Signal identifies one boolean detector
type Signal int

const (
	Outage Signal = iota
	Payments
	Security
	VIP
	ManyUsers
	DataLoss
	Angry
	UrgentWords
	Time

	numSignals
)

var signalNames = [numSignals]string{
	Outage:      "outage",
	Payments:    "payments",
	Security:    "security",
	VIP:         "vip",
	ManyUsers:   "manyUsers",
	DataLoss:    "dataLoss",
	Angry:       "angry",
	UrgentWords: "urgentWords",
	Time:        "time",
}

// Patterns match against lower-cased text, so plain substrings behave case-insensitively.
var detectors = [numSignals]*regexp.Regexp{
	Outage:      regexp.MustCompile(`down|outage|unavailable|cannot access|can't access|500|503|crash|broken|fatal`),
	Payments:    regexp.MustCompile(`payment|checkout|billing|stripe|paypal|invoice`),
	Security:    regexp.MustCompile(`security|breach|leak|token|credential|hacked|vulnerability|cve`),
	VIP:         regexp.MustCompile(`ceo|vp|director|executive|important client|enterprise`),
	ManyUsers:   regexp.MustCompile(`all users|everyone|company-wide|entire site|global`),
	DataLoss:    regexp.MustCompile(`data loss|deleted|missing data|corrupt`),
	Angry:       regexp.MustCompile(`angry|furious|refund|lawsuit|cancel|churn`),
	UrgentWords: regexp.MustCompile(`urgent|asap|immediately|now|critical|p1|sev1`),
	Time:        regexp.MustCompile(`\d{1,2}:\d{2}|\bminutes\b|\bhours\b|\bdays\b`),
}

// String returns the fixed identifier of the signal
func (s Signal) String() string {
	if s < 0 || s >= numSignals {
		return "unknown"
	}
	return signalNames[s]
}

// Signals lists every detector in declaration order
func Signals() []Signal {
	all := make([]Signal, numSignals)
	for i := range all {
		all[i] = Signal(i)
	}
	return all
}

// SignalSet holds the outcome of every detector for one ticket
type SignalSet [numSignals]bool

// Has reports whether the signal fired
func (s SignalSet) Has(sig Signal) bool {
	if sig < 0 || sig >= numSignals {
		return false
	}
	return s[sig]
}

// Any reports whether at least one signal fired
func (s SignalSet) Any() bool {
	for _, v := range s {
		if v {
			return true
		}
	}
	return false
}

// Names returns the identifiers of the signals that fired, in declaration order
func (s SignalSet) Names() []string {
	var names []string
	for i, v := range s {
		if v {
			names = append(names, signalNames[i])
		}
	}
	return names
}

// Detect evaluates every detector against text. It never fails.
func Detect(text string) SignalSet {
	t := strings.ToLower(text)

	var set SignalSet
	for i, re := range detectors {
		set[i] = re.MatchString(t)
	}
	return set
}

// FromNames builds a SignalSet from identifiers, ignoring unknown names
func FromNames(names ...string) SignalSet {
	var set SignalSet
	for _, name := range names {
		for i, known := range signalNames {
			if name == known {
				set[i] = true
			}
		}
	}
	return set
}

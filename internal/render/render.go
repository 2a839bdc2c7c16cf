// Package render is the single presentation path for triage results. Output is the
// same whichever strategy produced the result.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/FrenchMajesty/ticket-triage/pkg/types"
)

// Format selects the output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const (
	placeholder = "—"
	meterWidth  = 10
)

// ParseFormat maps a flag value to a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Render writes r to w. A nil result renders as the cleared state.
func Render(w io.Writer, r *types.Result, format Format) error {
	view := normalize(r)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(view)
	case FormatYAML:
		// Emoji stay literal, matching the text and json output
		out, err := yaml.MarshalWithOptions(view, yaml.Indent(2), yaml.UseLiteralStyleIfMultiline(true))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return renderText(w, view)
	}
}

// normalize copies r with the panic score clamped, leaving the caller's value untouched
func normalize(r *types.Result) types.Result {
	if r == nil {
		return types.Result{}
	}
	view := *r
	view.Panic = types.ClampPanic(view.Panic)
	return view
}

func renderText(w io.Writer, r types.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Severity:  %s\n", orPlaceholder(string(r.Severity)))
	fmt.Fprintf(&b, "Urgency:   %s\n", orPlaceholder(r.Urgency))
	fmt.Fprintf(&b, "Emoji:     %s\n", orPlaceholder(r.Emoji))
	fmt.Fprintf(&b, "Panic:     %s\n", Meter(r.Panic))
	fmt.Fprintf(&b, "\nFirst reply:\n%s\n", orPlaceholder(r.FirstReply))
	fmt.Fprintf(&b, "\nNotes:\n%s\n", orPlaceholder(r.Notes))

	_, err := io.WriteString(w, b.String())
	return err
}

// Meter draws the panic score as a bar, e.g. "[██████░░░░] 60 / 100"
func Meter(panic int) string {
	panic = types.ClampPanic(panic)
	filled := panic * meterWidth / 100
	return fmt.Sprintf("[%s%s] %d / 100",
		strings.Repeat("█", filled),
		strings.Repeat("░", meterWidth-filled),
		panic)
}

// StatusLine is the one-line outcome shown after an analysis
func StatusLine(source types.Strategy, err error) string {
	if err != nil {
		return "Error: " + err.Error()
	}
	if source == types.StrategyRemote {
		return "Done (AI mode)."
	}
	return "Done (heuristic mode)."
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

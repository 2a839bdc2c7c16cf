package adapters

import (
	"errors"
	"math"
	"strings"

	"github.com/FrenchMajesty/ticket-triage/pkg/types"
	"github.com/tidwall/gjson"
)

// responseShape names where the model text was found in a response body
type responseShape int

const (
	// shapeOutputText is the top-level "output_text" convenience field
	shapeOutputText responseShape = iota
	// shapeContentParts is text stitched from output[].content[] fragments
	shapeContentParts
	// shapeChoices is a chat-completions style choices[0].message.content
	shapeChoices
	// shapeRawBody means the body was not JSON and is used as-is
	shapeRawBody
	// shapeEmpty means the body was JSON but held no text
	shapeEmpty
)

func (s responseShape) String() string {
	switch s {
	case shapeOutputText:
		return "output_text"
	case shapeContentParts:
		return "content_parts"
	case shapeChoices:
		return "choices"
	case shapeRawBody:
		return "raw_body"
	default:
		return "empty"
	}
}

var shapeExtractors = []struct {
	shape   responseShape
	extract func(body []byte) (string, bool)
}{
	{shapeOutputText, fromOutputText},
	{shapeContentParts, fromContentParts},
	{shapeChoices, fromChoices},
}

var errNotObject = errors.New("model output is not a JSON object")

// extractOutputText pulls the model text out of a response body, trying each shape in order
func extractOutputText(body []byte) (string, responseShape) {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body)), shapeRawBody
	}

	for _, e := range shapeExtractors {
		if text, ok := e.extract(body); ok {
			return strings.TrimSpace(text), e.shape
		}
	}
	return "", shapeEmpty
}

func fromOutputText(body []byte) (string, bool) {
	r := gjson.GetBytes(body, "output_text")
	if r.Type != gjson.String || strings.TrimSpace(r.Str) == "" {
		return "", false
	}
	return r.Str, true
}

func fromContentParts(body []byte) (string, bool) {
	var parts []string
	gjson.GetBytes(body, "output").ForEach(func(_, item gjson.Result) bool {
		item.Get("content").ForEach(func(_, part gjson.Result) bool {
			switch part.Get("type").String() {
			case "output_text", "text":
				if txt := part.Get("text"); txt.Type == gjson.String && txt.Str != "" {
					parts = append(parts, txt.Str)
				}
			}
			return true
		})
		return true
	})

	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, ""), true
}

func fromChoices(body []byte) (string, bool) {
	r := gjson.GetBytes(body, "choices.0.message.content")
	if r.Type != gjson.String || strings.TrimSpace(r.Str) == "" {
		return "", false
	}
	return r.Str, true
}

// decodeVerdict parses the whole text as a JSON object, falling back to the span
// between the first "{" and the last "}".
func decodeVerdict(text string) (gjson.Result, error) {
	if obj, ok := parseObject(text); ok {
		return obj, nil
	}

	candidate, ok := extractJSON(text)
	if !ok {
		return gjson.Result{}, &types.ParseError{Output: text, Err: errNotObject}
	}

	obj, ok := parseObject(candidate)
	if !ok {
		return gjson.Result{}, &types.ParseError{Output: text, Err: errNotObject}
	}
	return obj, nil
}

func parseObject(s string) (gjson.Result, bool) {
	s = strings.TrimSpace(s)
	if !gjson.Valid(s) {
		return gjson.Result{}, false
	}

	r := gjson.Parse(s)
	return r, r.IsObject()
}

// extractJSON returns the greedy span from the first "{" to the last "}"
func extractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// roundToInt rounds model-supplied numbers, bounding them so conversion cannot overflow
func roundToInt(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	f = math.Max(math.Min(f, 1e9), -1e9)
	return int(math.Round(f))
}

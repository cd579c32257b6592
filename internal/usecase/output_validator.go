package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"travel-risk-orchestrator/internal/domain"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// OutputValidator parses raw model text and checks it against the report
// schema. It never coerces: anything off-shape becomes a typed error.
type OutputValidator struct{}

// NewOutputValidator creates a validator instance (stateless).
func NewOutputValidator() OutputValidator {
	return OutputValidator{}
}

// rawDayRisk defers field decoding so missing keys, nulls and wrong-typed
// values are each distinguishable and reportable at their own path.
type rawDayRisk struct {
	Date                *json.RawMessage `json:"date"`
	RiskLevel           *json.RawMessage `json:"riskLevel"`
	ExpectedRainMmRange *json.RawMessage `json:"expectedRainMmRange"`
	Confidence          *json.RawMessage `json:"confidence"`
	Advice              *json.RawMessage `json:"advice"`
	Rationale           *json.RawMessage `json:"rationale"`
	Flags               *json.RawMessage `json:"flags"`
}

type rawReport struct {
	ModelVersion *json.RawMessage `json:"modelVersion"`
	Timezone     *json.RawMessage `json:"timezone"`
	Days         *json.RawMessage `json:"days"`
}

// Validate strips one optional layer of markdown fencing, parses the text as
// JSON and validates it structurally. Returns MalformedJsonError when the
// text is not exactly one JSON document and SchemaValidationError carrying
// the offending field paths on any structural mismatch, wrong-typed fields
// included.
func (v OutputValidator) Validate(raw string) (*domain.ModelReport, error) {
	trimmed := StripCodeFence(raw)
	if trimmed == "" {
		return nil, &domain.EmptyModelResponseError{}
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	var doc json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		return nil, &domain.MalformedJsonError{Cause: err}
	}
	// Models sometimes append prose after the closing brace. The output must
	// be exactly one JSON document, so anything past it is a parse failure.
	if _, err := dec.Token(); err != io.EOF {
		return nil, &domain.MalformedJsonError{Cause: errors.New("trailing data after JSON document")}
	}

	var violations []domain.FieldViolation
	addViolation := func(path, message string) {
		violations = append(violations, domain.FieldViolation{Path: path, Message: message})
	}

	var parsed rawReport
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, &domain.SchemaValidationError{Violations: []domain.FieldViolation{
			{Path: "$", Message: "top level must be a JSON object"},
		}}
	}

	report := &domain.ModelReport{}

	if s, ok := requiredString(parsed.ModelVersion, "modelVersion", addViolation); ok {
		report.ModelVersion = s
	}
	if s, ok := requiredString(parsed.Timezone, "timezone", addViolation); ok {
		report.Timezone = s
	}

	if parsed.Days == nil || isNull(*parsed.Days) {
		addViolation("days", "required array")
	} else {
		var days []json.RawMessage
		if err := json.Unmarshal(*parsed.Days, &days); err != nil {
			addViolation("days", "must be an array")
		} else {
			report.Days = make([]domain.DayRisk, 0, len(days))
			for i, d := range days {
				path := fmt.Sprintf("days[%d]", i)
				var day rawDayRisk
				if err := json.Unmarshal(d, &day); err != nil {
					addViolation(path, "must be an object")
					continue
				}
				report.Days = append(report.Days, v.validateDay(path, day, addViolation))
			}
		}
	}

	if len(violations) > 0 {
		return nil, &domain.SchemaValidationError{Violations: violations}
	}
	return report, nil
}

func (v OutputValidator) validateDay(path string, d rawDayRisk, addViolation func(path, message string)) domain.DayRisk {
	var day domain.DayRisk

	if d.Date == nil || isNull(*d.Date) {
		addViolation(path+".date", "required")
	} else if s, ok := asString(*d.Date); !ok {
		addViolation(path+".date", "must be a string")
	} else if !datePattern.MatchString(s) {
		addViolation(path+".date", fmt.Sprintf("%q does not match YYYY-MM-DD", s))
	} else {
		day.Date = s
	}

	if d.RiskLevel == nil || isNull(*d.RiskLevel) {
		addViolation(path+".riskLevel", "required")
	} else if s, ok := asString(*d.RiskLevel); !ok {
		addViolation(path+".riskLevel", "must be a string")
	} else if level, err := domain.ParseRiskLevel(s); err != nil {
		addViolation(path+".riskLevel", fmt.Sprintf("%q is not one of LOW, MEDIUM, HIGH, EXTREME", s))
	} else {
		day.RiskLevel = level
	}

	// expectedRainMmRange is the only optional field: absent, null, or a
	// {min, max} object.
	if d.ExpectedRainMmRange != nil && !isNull(*d.ExpectedRainMmRange) {
		var rng struct {
			Min *float64 `json:"min"`
			Max *float64 `json:"max"`
		}
		if err := json.Unmarshal(*d.ExpectedRainMmRange, &rng); err != nil {
			addViolation(path+".expectedRainMmRange", "must be null or an object with numeric min and max")
		} else if rng.Min == nil || rng.Max == nil {
			addViolation(path+".expectedRainMmRange", "min and max are both required")
		} else if *rng.Min > *rng.Max {
			addViolation(path+".expectedRainMmRange", "min must not exceed max")
		} else {
			day.ExpectedRainMmRange = &domain.RainRange{Min: *rng.Min, Max: *rng.Max}
		}
	}

	if d.Confidence == nil || isNull(*d.Confidence) {
		addViolation(path+".confidence", "required")
	} else {
		var c float64
		if err := json.Unmarshal(*d.Confidence, &c); err != nil {
			addViolation(path+".confidence", "must be a number")
		} else if c < 0 || c > 1 {
			addViolation(path+".confidence", fmt.Sprintf("%v is outside [0,1]", c))
		} else {
			day.Confidence = c
		}
	}

	if s, ok := requiredString(d.Advice, path+".advice", addViolation); ok {
		day.Advice = s
	}
	if s, ok := requiredString(d.Rationale, path+".rationale", addViolation); ok {
		day.Rationale = s
	}

	if d.Flags == nil || isNull(*d.Flags) {
		addViolation(path+".flags", "required array of strings")
	} else {
		var flags []string
		if err := json.Unmarshal(*d.Flags, &flags); err != nil {
			addViolation(path+".flags", "must be an array of strings")
		} else {
			if flags == nil {
				flags = []string{}
			}
			day.Flags = flags
		}
	}

	return day
}

func requiredString(raw *json.RawMessage, path string, addViolation func(path, message string)) (string, bool) {
	if raw == nil || isNull(*raw) {
		addViolation(path, "required non-empty string")
		return "", false
	}
	s, ok := asString(*raw)
	if !ok {
		addViolation(path, "must be a string")
		return "", false
	}
	if strings.TrimSpace(s) == "" {
		addViolation(path, "required non-empty string")
		return "", false
	}
	return s, true
}

func asString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// StripCodeFence removes one layer of markdown fencing (```json ... ``` or
// ``` ... ```) wrapping the text, plus surrounding whitespace. Unfenced text
// comes back trimmed and otherwise untouched.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop a language tag such as "json" on the opening fence line.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if first == "" || !strings.ContainsAny(first, "{[") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

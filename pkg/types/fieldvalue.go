package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FieldValue is the stored form of every record field: a raw value paired
// with its human-readable display value. For most field types the two are
// identical; for reference and choice fields the raw value is a stable
// identifier and the display value is the label shown to users.
type FieldValue struct {
	Value        string `json:"value"`
	DisplayValue string `json:"display_value"`
}

// NewFieldValue constructs a FieldValue. The display value defaults to the
// raw value when omitted.
func NewFieldValue(raw string, display ...string) FieldValue {
	fv := FieldValue{Value: raw, DisplayValue: raw}
	if len(display) > 0 {
		fv.DisplayValue = display[0]
	}
	return fv
}

// UnmarshalJSON accepts either the structured {"value", "display_value"}
// object or a bare scalar (string, number, or boolean). A bare scalar is the
// degenerate pair where raw and display are the same. Omitted or null parts
// decode to the empty string; decoding never fails on shape, only on
// malformed JSON.
func (fv *FieldValue) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case map[string]any:
		raw := scalarString(val["value"])
		display := raw
		if d, ok := val["display_value"]; ok {
			display = scalarString(d)
		}
		*fv = FieldValue{Value: raw, DisplayValue: display}
	default:
		s := scalarString(v)
		*fv = FieldValue{Value: s, DisplayValue: s}
	}
	return nil
}

// DisplayString returns the display value of v. It accepts a FieldValue, a
// pointer to one, a decoded JSON object carrying a display_value key, or a
// bare scalar (stringified). Nil yields the empty string. Never errors.
func DisplayString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case FieldValue:
		return val.DisplayValue
	case *FieldValue:
		if val == nil {
			return ""
		}
		return val.DisplayValue
	case map[string]any:
		if d, ok := val["display_value"]; ok {
			return scalarString(d)
		}
		return scalarString(val["value"])
	default:
		return scalarString(v)
	}
}

// RawString returns the raw value of v, with the same input tolerance as
// DisplayString.
func RawString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case FieldValue:
		return val.Value
	case *FieldValue:
		if val == nil {
			return ""
		}
		return val.Value
	case map[string]any:
		return scalarString(val["value"])
	default:
		return scalarString(v)
	}
}

// IsFieldValue reports whether v already carries the structured pair shape:
// a FieldValue, or a decoded JSON object with both value and display_value
// keys. Arrays and bare scalars are not field values.
func IsFieldValue(v any) bool {
	switch val := v.(type) {
	case FieldValue:
		return true
	case *FieldValue:
		return val != nil
	case map[string]any:
		_, hasRaw := val["value"]
		_, hasDisplay := val["display_value"]
		return hasRaw && hasDisplay
	default:
		return false
	}
}

// scalarString renders a decoded JSON scalar as a string. Nil and unknown
// shapes degrade to the empty string rather than erroring.
func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		// JSON numbers decode as float64; render integers without a point.
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

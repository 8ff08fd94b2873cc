package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Descriptor is one raw stream metadata record from the extractor worker.
// Every field may be absent, nil, or of the wrong type.
type Descriptor map[string]interface{}

// coerceInt safely converts an untrusted scalar to int. Nil, empty strings
// and unconvertible values yield the default instead of failing.
func coerceInt(value interface{}, def int) int {
	f, ok := coerceNumber(value)
	if !ok {
		return def
	}
	return int(f)
}

// coerceFloat safely converts an untrusted scalar to float64
func coerceFloat(value interface{}, def float64) float64 {
	f, ok := coerceNumber(value)
	if !ok {
		return def
	}
	return f
}

// orderingKey produces a comparable sort key from any scalar. All sorting in
// the engine routes through this so that nil or malformed fields can never
// break a comparison.
func orderingKey(value interface{}) int {
	return coerceInt(value, 0)
}

func coerceNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// stringField returns the descriptor field as a string, "" when absent or nil.
// Numeric identifiers are stringified the way JSON decoding produced them.
func (d Descriptor) stringField(key string) string {
	switch v := d[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// lowerField returns the field lowercased and trimmed
func (d Descriptor) lowerField(key string) string {
	return strings.ToLower(strings.TrimSpace(d.stringField(key)))
}

// codecField normalizes a codec field, mapping nil/absent to the literal
// "none" the way the extraction backend reports a missing track.
func (d Descriptor) codecField(key string) string {
	if d[key] == nil {
		return "none"
	}
	return strings.ToLower(strings.TrimSpace(d.stringField(key)))
}

// intField returns the field coerced to int, 0 when unknown
func (d Descriptor) intField(key string) int {
	return coerceInt(d[key], 0)
}

// fileSizeBytes returns the exact file size when known, else the approximate
// one, else 0.
func (d Descriptor) fileSizeBytes() int64 {
	size := int64(coerceFloat(d["filesize"], 0))
	if size > 0 {
		return size
	}
	return int64(coerceFloat(d["filesize_approx"], 0))
}

// protocol returns the transport protocol tag, defaulting to https
func (d Descriptor) protocol() string {
	if p := strings.TrimSpace(d.stringField("protocol")); p != "" {
		return p
	}
	return "https"
}

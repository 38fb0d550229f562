package collector

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Upstream payloads rarely agree on key names: the same tweet id shows up as
// "id", "tweetId" or "tweet_id" depending on which workflow produced it. The
// extractor tries alias keys in order and coerces whatever it finds into the
// requested type, so adapters declare intent ("the id, whatever it's called")
// instead of hand-rolling type switches.

// ExtractString returns the first alias key present in raw, coerced to a
// string. Numbers are formatted without a float exponent so JSON's
// number-as-float64 decoding does not mangle ids.
func ExtractString(raw map[string]interface{}, field string, keys ...string) (string, error) {
	for _, key := range keys {
		val, ok := raw[key]
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case string:
			return v, nil
		case float64:
			if v == float64(int64(v)) {
				return strconv.FormatInt(int64(v), 10), nil
			}
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case json.Number:
			return v.String(), nil
		case bool:
			return strconv.FormatBool(v), nil
		default:
			return fmt.Sprintf("%v", v), nil
		}
	}
	return "", &MissingFieldError{Field: field, TriedKeys: keys}
}

// ExtractStringOr is ExtractString with a fallback instead of an error.
func ExtractStringOr(raw map[string]interface{}, fallback string, keys ...string) string {
	val, err := ExtractString(raw, "", keys...)
	if err != nil {
		return fallback
	}
	return val
}

// ExtractInt returns the first alias key present in raw, coerced to an int.
// String values are trimmed and parsed; "1,234" style separators are dropped.
func ExtractInt(raw map[string]interface{}, field string, keys ...string) (int, error) {
	for _, key := range keys {
		val, ok := raw[key]
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case float64:
			return int(v), nil
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return int(n), nil
			}
			if f, err := v.Float64(); err == nil {
				return int(f), nil
			}
		case string:
			cleaned := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
			if cleaned == "" {
				continue
			}
			if n, err := strconv.Atoi(cleaned); err == nil {
				return n, nil
			}
			if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
				return int(f), nil
			}
		case bool:
			if v {
				return 1, nil
			}
			return 0, nil
		}
	}
	return 0, &MissingFieldError{Field: field, TriedKeys: keys}
}

// ExtractIntOr is ExtractInt with a fallback instead of an error. Engagement
// counters use it with fallback 0: a missing counter means "none observed".
func ExtractIntOr(raw map[string]interface{}, fallback int, keys ...string) int {
	val, err := ExtractInt(raw, "", keys...)
	if err != nil {
		return fallback
	}
	return val
}

// ExtractMap returns the first alias key whose value is a JSON object.
func ExtractMap(raw map[string]interface{}, field string, keys ...string) (map[string]interface{}, error) {
	for _, key := range keys {
		if val, ok := raw[key].(map[string]interface{}); ok {
			return val, nil
		}
	}
	return nil, &MissingFieldError{Field: field, TriedKeys: keys}
}

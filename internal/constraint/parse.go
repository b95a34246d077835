package constraint

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"tour-workers/internal/models"
)

var amountReplacer = strings.NewReplacer("$", "", ",", "", " ", "", "USD", "", "usd", "")

// parseAmount reads a monetary amount from a JSON number, Go integer or a
// numeric string such as "$1,200". present is false for nil and blank input.
func parseAmount(raw interface{}) (value float64, present bool, err error) {
	switch v := raw.(type) {
	case nil:
		return 0, false, nil
	case float64:
		value = v
	case float32:
		value = float64(v)
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	case json.Number:
		value, err = v.Float64()
		if err != nil {
			return 0, true, fmt.Errorf("not a number: %q", v.String())
		}
	case string:
		cleaned := amountReplacer.Replace(strings.TrimSpace(v))
		if cleaned == "" {
			return 0, false, nil
		}
		value, err = strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, true, fmt.Errorf("not a number: %q", v)
		}
	default:
		return 0, true, fmt.Errorf("unsupported type %T", raw)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, true, fmt.Errorf("not a finite number")
	}
	return value, true, nil
}

// parseDate accepts 2006-01-02 or RFC3339 and returns the calendar date in
// UTC. present is false for nil and blank input.
func parseDate(raw interface{}) (date *time.Time, present bool, err error) {
	if raw == nil {
		return nil, false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, true, fmt.Errorf("unsupported type %T", raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false, nil
	}

	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, true, fmt.Errorf("unparseable date %q", s)
		}
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d, true, nil
}

func parseText(raw interface{}) string {
	s, _ := raw.(string)
	return strings.TrimSpace(s)
}

// parseBucket maps raw onto the duration enum. Blank input is "any" with no
// adjustment; anything unrecognised is "any" with ok false.
func parseBucket(raw interface{}) (bucket models.DurationBucket, ok bool) {
	if raw == nil {
		return models.DurationAny, true
	}
	s, isString := raw.(string)
	if !isString {
		return models.DurationAny, false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return models.DurationAny, true
	}
	b := models.DurationBucket(s)
	if !b.IsValid() {
		return models.DurationAny, false
	}
	return b, true
}

// splitTokens accepts a JSON array or a comma separated string. Array items
// that are not strings are returned in skipped.
func splitTokens(raw interface{}) (tokens []string, skipped []interface{}) {
	switch v := raw.(type) {
	case string:
		return strings.Split(v, ","), nil
	case []string:
		return v, nil
	case []interface{}:
		tokens = make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tokens = append(tokens, s)
			} else {
				skipped = append(skipped, item)
			}
		}
		return tokens, skipped
	}
	return nil, nil
}

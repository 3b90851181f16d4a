// internal/app/validator.go
package app

import (
	"encoding/json"
	"fmt"
	"math"

	"homework_status_bot/internal/domain/homework"
)

// ValidateResponse checks that raw has the documented homework_statuses shape.
// Any deviation is reported as *homework.SchemaError; the values are returned as they are.
func ValidateResponse(raw any) (*homework.Response, error) {
	payload, ok := raw.(map[string]any)
	if !ok {
		return nil, &homework.SchemaError{Reason: fmt.Sprintf("response is not an object (got %T)", raw)}
	}

	rawHomeworks, ok := payload[homework.KeyHomeworks]
	if !ok {
		return nil, &homework.SchemaError{Key: homework.KeyHomeworks, Reason: "key is missing"}
	}
	rawDate, ok := payload[homework.KeyCurrentDate]
	if !ok {
		return nil, &homework.SchemaError{Key: homework.KeyCurrentDate, Reason: "key is missing"}
	}

	homeworks, ok := rawHomeworks.([]any)
	if !ok {
		return nil, &homework.SchemaError{Key: homework.KeyHomeworks, Reason: fmt.Sprintf("value is not a list (got %T)", rawHomeworks)}
	}
	currentDate, ok := asInt64(rawDate)
	if !ok {
		return nil, &homework.SchemaError{Key: homework.KeyCurrentDate, Reason: fmt.Sprintf("value is not an integer (got %v)", rawDate)}
	}

	return &homework.Response{Homeworks: homeworks, CurrentDate: currentDate}, nil
}

// asInt64 accepts the number representations produced by encoding/json.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

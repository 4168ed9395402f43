package orders

import (
	"encoding/json"
	"fmt"
)

// DecodeOrder builds an Order from a loosely-typed record such as a decoded
// JSON object. status is required, and so is amount unless the order is
// cancelled; a cancelled order without amount decodes with Amount 0. An
// amount that is present must be numeric whatever the status. id and
// user_id are optional.
func DecodeOrder(rec map[string]any) (Order, error) {
	rawStatus, ok := rec["status"]
	if !ok {
		return Order{}, fmt.Errorf("status: %w", ErrMissingField)
	}
	status, ok := rawStatus.(string)
	if !ok {
		return Order{}, fmt.Errorf("status must be a string, got %T: %w", rawStatus, ErrInvalidField)
	}

	o := Order{Status: Status(status)}
	rawAmount, ok := rec["amount"]
	switch {
	case ok:
		amount, err := toFloat(rawAmount)
		if err != nil {
			return Order{}, fmt.Errorf("amount: %w", err)
		}
		o.Amount = amount
	case o.Eligible():
		return Order{}, fmt.Errorf("amount: %w", ErrMissingField)
	}

	var err error
	if o.ID, err = optionalString(rec, "id"); err != nil {
		return Order{}, err
	}
	if o.UserID, err = optionalString(rec, "user_id"); err != nil {
		return Order{}, err
	}
	return o, nil
}

// DecodeOrders decodes every record, stopping at the first bad one.
func DecodeOrders(recs []map[string]any) ([]Order, error) {
	out := make([]Order, 0, len(recs))
	for i, rec := range recs {
		o, err := DecodeOrder(rec)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%q is not a number: %w", n.String(), ErrInvalidField)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("must be numeric, got %T: %w", v, ErrInvalidField)
	}
}

func optionalString(rec map[string]any, key string) (string, error) {
	v, ok := rec[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T: %w", key, v, ErrInvalidField)
	}
	return s, nil
}

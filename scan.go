package arcdb

import (
	"encoding/json"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arcdb/arcdb-go/lib/proto"
)

// Coercions are strict: a value either converts exactly or the call fails
// with a TypeMismatch. Nothing is truncated or stringified on the way out.

func toInt64(op string, v any) (int64, error) {
	switch v := v.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, &TypeMismatch{op: op, from: v, to: "int64"}
		}
		return n, nil
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, &TypeMismatch{op: op, from: v, to: "int64"}
		}
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, &TypeMismatch{op: op, from: v, to: "int64"}
	}
}

func toFloat64(op string, v any) (float64, error) {
	switch v := v.(type) {
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, &TypeMismatch{op: op, from: v, to: "float64"}
		}
		return n, nil
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, &TypeMismatch{op: op, from: v, to: "float64"}
	}
}

func toText(op string, v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", &TypeMismatch{op: op, from: v, to: "string"}
}

func toBool(op string, v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, &TypeMismatch{op: op, from: v, to: "bool"}
}

func toDecimal(op string, v any) (decimal.Decimal, error) {
	switch v := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Decimal{}, &TypeMismatch{op: op, from: v, to: "decimal"}
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}, &TypeMismatch{op: op, from: v, to: "decimal"}
		}
		return d, nil
	default:
		return decimal.Decimal{}, &TypeMismatch{op: op, from: v, to: "decimal"}
	}
}

// toTime needs the wrapper tag: Date counts days since the epoch,
// Timestamp counts milliseconds. A bare number cannot be told apart from
// an integer, so only tagged values convert.
func toTime(op string, raw any) (time.Time, error) {
	tag, inner, ok := proto.Tag(raw)
	if !ok {
		return time.Time{}, &TypeMismatch{op: op, from: raw, to: "time.Time"}
	}
	n, err := toInt64(op, inner)
	if err != nil {
		return time.Time{}, err
	}
	switch tag {
	case "Date":
		return time.Unix(n*86400, 0).UTC(), nil
	case "Timestamp":
		return time.UnixMilli(n).UTC(), nil
	default:
		return time.Time{}, &TypeMismatch{op: op, from: raw, to: "time.Time"}
	}
}

// scanValue copies one raw cell into a caller destination. The null flag
// is derived from the raw value, before unwrapping.
func scanValue(dest any, raw any) error {
	const op = "Scan"
	null := proto.IsNull(raw)
	v := proto.Unwrap(raw)

	switch d := dest.(type) {
	case *any:
		if null {
			*d = nil
			return nil
		}
		*d = v
	case *string:
		if null {
			*d = ""
			return nil
		}
		s, err := toText(op, v)
		if err != nil {
			return err
		}
		*d = s
	case **string:
		if null {
			*d = nil
			return nil
		}
		s, err := toText(op, v)
		if err != nil {
			return err
		}
		*d = &s
	case *int64:
		if null {
			*d = 0
			return nil
		}
		n, err := toInt64(op, v)
		if err != nil {
			return err
		}
		*d = n
	case **int64:
		if null {
			*d = nil
			return nil
		}
		n, err := toInt64(op, v)
		if err != nil {
			return err
		}
		*d = &n
	case *int:
		if null {
			*d = 0
			return nil
		}
		n, err := toInt64(op, v)
		if err != nil {
			return err
		}
		if int64(int(n)) != n {
			return &TypeMismatch{op: op, from: v, to: "int"}
		}
		*d = int(n)
	case *int32:
		if null {
			*d = 0
			return nil
		}
		n, err := toInt64(op, v)
		if err != nil {
			return err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return &TypeMismatch{op: op, from: v, to: "int32"}
		}
		*d = int32(n)
	case *float64:
		if null {
			*d = 0
			return nil
		}
		f, err := toFloat64(op, v)
		if err != nil {
			return err
		}
		*d = f
	case **float64:
		if null {
			*d = nil
			return nil
		}
		f, err := toFloat64(op, v)
		if err != nil {
			return err
		}
		*d = &f
	case *bool:
		if null {
			*d = false
			return nil
		}
		b, err := toBool(op, v)
		if err != nil {
			return err
		}
		*d = b
	case **bool:
		if null {
			*d = nil
			return nil
		}
		b, err := toBool(op, v)
		if err != nil {
			return err
		}
		*d = &b
	case *decimal.Decimal:
		if null {
			*d = decimal.Decimal{}
			return nil
		}
		dec, err := toDecimal(op, v)
		if err != nil {
			return err
		}
		*d = dec
	case *time.Time:
		if null {
			*d = time.Time{}
			return nil
		}
		t, err := toTime(op, raw)
		if err != nil {
			return err
		}
		*d = t
	default:
		return &TypeMismatch{op: op, from: v, to: "unsupported destination"}
	}
	return nil
}

package convert

import (
	"fmt"
	"math"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyconvert "github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/gomlgo/internal/nsid"
)

// String accepts strings, fmt.Stringers and scalar Go values.
func String(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case bool, int, int32, int64, float32, float64:
		return fmt.Sprint(v), nil
	default:
		return nil, invalid(raw, "String")
	}
}

// StringArray splits strings on whitespace.
func StringArray(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case string:
		return strings.Fields(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(raw, "StringArray")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, invalid(raw, "StringArray")
	}
}

// Boolean accepts bools and the strings "true" and "false".
func Boolean(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		return v, nil
	case string:
		val, err := fromString(v, cty.Bool, "Boolean")
		if err != nil {
			return nil, err
		}
		return val.True(), nil
	default:
		return nil, invalid(raw, "Boolean")
	}
}

// Number produces float64 values.
func Number(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		val, err := fromString(v, cty.Number, "Number")
		if err != nil {
			return nil, err
		}
		var f float64
		if err := gocty.FromCtyValue(val, &f); err != nil {
			return nil, unparseable(v, "Number", err)
		}
		return f, nil
	default:
		return nil, invalid(raw, "Number")
	}
}

// Integer produces int values and rejects fractions.
func Integer(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || v >= float64(math.MaxInt) || v < float64(math.MinInt) {
			return nil, invalid(raw, "Integer")
		}
		return int(v), nil
	case string:
		val, err := fromString(v, cty.Number, "Integer")
		if err != nil {
			return nil, err
		}
		var i int
		if err := gocty.FromCtyValue(val, &i); err != nil {
			return nil, unparseable(v, "Integer", err)
		}
		return i, nil
	default:
		return nil, invalid(raw, "Integer")
	}
}

// Identity parses fully-qualified names.
func Identity(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case nsid.Identity:
		return v, nil
	case string:
		id, err := nsid.Parse(strings.TrimSpace(v))
		if err != nil {
			return nil, unparseable(v, "Identity", err)
		}
		return id, nil
	default:
		return nil, invalid(raw, "Identity")
	}
}

// fromString converts markup text to a known cty value of the wanted type.
func fromString(raw string, ty cty.Type, target string) (cty.Value, error) {
	val, err := ctyconvert.Convert(cty.StringVal(strings.TrimSpace(raw)), ty)
	if err != nil {
		return cty.NilVal, unparseable(raw, target, err)
	}
	if val.IsNull() || !val.IsKnown() {
		return cty.NilVal, unparseable(raw, target, nil)
	}
	return val, nil
}

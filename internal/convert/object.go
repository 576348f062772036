package convert

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/gomlgo/internal/errors"
)

// Object parses an HCL expression such as `{ x = 1, tags = ["a"] }` into its
// native Go form: map[string]any, []any, string, float64 or bool.
func Object(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any, []any:
		return v, nil
	case string:
		expr, diags := hclsyntax.ParseExpression([]byte(v), "attribute", hcl.InitialPos)
		if diags.HasErrors() {
			return nil, unparseable(v, "Object", diags)
		}
		val, diags := expr.Value(nil)
		if diags.HasErrors() {
			return nil, unparseable(v, "Object", diags)
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, unparseable(v, "Object", err)
		}
		return native, nil
	default:
		return nil, invalid(raw, "Object")
	}
}

// ctyToNative recursively converts a cty.Value to its most natural Go counterpart.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, errors.Wrap(err, "number out of float64 range")
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, val := it.Element()
			nativeVal, err := ctyToNative(val)
			if err != nil {
				return nil, err
			}
			slice = append(slice, nativeVal)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		goMap := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, val := it.Element()
			keyStr := key.AsString()
			nativeVal, err := ctyToNative(val)
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", keyStr)
			}
			goMap[keyStr] = nativeVal
		}
		return goMap, nil

	default:
		return nil, errors.Newf("unsupported value type %s", ty.FriendlyName())
	}
}

package config

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// FromGoValue converts a native Go value (as produced by a YAML decoder or a
// pure Go module) into its equivalent cty.Value for the engine's internal use.
func FromGoValue(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(val), nil
	case bool:
		return cty.BoolVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case int64:
		return cty.NumberIntVal(val), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(val))
		for _, item := range val {
			conv, err := FromGoValue(item)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, conv)
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(val) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(val))
		for key, item := range val {
			conv, err := FromGoValue(item)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[key] = conv
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported parameter value of type %T", v)
	}
}

// ParamsFromGo converts a plain Go map into a cty parameter map.
func ParamsFromGo(src map[string]any) (map[string]cty.Value, error) {
	if len(src) == 0 {
		return nil, nil
	}
	params := make(map[string]cty.Value, len(src))
	for name, raw := range src {
		val, err := FromGoValue(raw)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", name, err)
		}
		params[name] = val
	}
	return params, nil
}

// ToGoValue converts a cty.Value back into a native Go value for handler use.
func ToGoValue(v cty.Value) any {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString()
	case ty == cty.Bool:
		return v.True()
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); acc == 0 {
			return i
		}
		f, _ := bf.Float64()
		return f
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			out = append(out, ToGoValue(elem))
		}
		return out
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			out[key.AsString()] = ToGoValue(elem)
		}
		return out
	default:
		return nil
	}
}

// ParamsToGo converts a cty parameter map into a plain Go map.
func ParamsToGo(params map[string]cty.Value) map[string]any {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]any, len(params))
	for name, val := range params {
		out[name] = ToGoValue(val)
	}
	return out
}

func paramString(params map[string]cty.Value, name string) (string, bool) {
	v, ok := params[name]
	if !ok || v.IsNull() || v.Type() != cty.String {
		return "", false
	}
	return v.AsString(), true
}

func paramInt(params map[string]cty.Value, name string) (int, bool) {
	v, ok := params[name]
	if !ok || v.IsNull() || v.Type() != cty.Number {
		return 0, false
	}
	i, acc := v.AsBigFloat().Int64()
	if acc != 0 {
		return 0, false
	}
	return int(i), true
}

func paramBool(params map[string]cty.Value, name string) (bool, bool) {
	v, ok := params[name]
	if !ok || v.IsNull() || v.Type() != cty.Bool {
		return false, false
	}
	return v.True(), true
}

func paramStrings(params map[string]cty.Value, name string) ([]string, bool) {
	v, ok := params[name]
	if !ok || v.IsNull() {
		return nil, false
	}
	ty := v.Type()
	if ty == cty.String {
		return []string{v.AsString()}, true
	}
	if !ty.IsTupleType() && !ty.IsListType() && !ty.IsSetType() {
		return nil, false
	}
	out := make([]string, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() || elem.Type() != cty.String {
			return nil, false
		}
		out = append(out, elem.AsString())
	}
	return out, true
}

// StringParam returns the named task parameter when it is a string.
func (t *Task) StringParam(name string) (string, bool) { return paramString(t.Params, name) }

// IntParam returns the named task parameter when it is a whole number.
func (t *Task) IntParam(name string) (int, bool) { return paramInt(t.Params, name) }

// BoolParam returns the named task parameter when it is a boolean.
func (t *Task) BoolParam(name string) (bool, bool) { return paramBool(t.Params, name) }

// StringsParam returns the named task parameter as a string slice. A single
// string value is returned as a one-element slice.
func (t *Task) StringsParam(name string) ([]string, bool) { return paramStrings(t.Params, name) }

// ParamNames returns the task's parameter names in ascending order.
func (t *Task) ParamNames() []string {
	names := make([]string, 0, len(t.Params))
	for name := range t.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StringParam returns the named check parameter when it is a string.
func (c *ValidationCheck) StringParam(name string) (string, bool) { return paramString(c.Params, name) }

// IntParam returns the named check parameter when it is a whole number.
func (c *ValidationCheck) IntParam(name string) (int, bool) { return paramInt(c.Params, name) }

// StringsParam returns the named check parameter as a string slice.
func (c *ValidationCheck) StringsParam(name string) ([]string, bool) {
	return paramStrings(c.Params, name)
}

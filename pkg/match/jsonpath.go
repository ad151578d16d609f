package match

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/ohler55/ojg/jp"
)

type jsonPathMatcher struct {
	path string
	expr jp.Expr
	want any
}

// JSONPath matches JSON-shaped arguments by evaluating a JSONPath
// expression against them. The argument may be a JSON document (string or
// []byte) or any value that marshals to JSON (maps, slices, structs).
//
// With want == nil the matcher is an existence check: it matches when the
// path selects at least one value. Otherwise the first selected value must
// equal want (numbers compare after float64 normalization, the shape
// encoding/json decodes to).
func JSONPath(path string, want any) (Matcher, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("parsing JSONPath %q: %w", path, err)
	}
	return jsonPathMatcher{path: path, expr: x, want: normalizeJSON(want)}, nil
}

func (m jsonPathMatcher) Matches(v any) bool {
	data, ok := jsonShape(v)
	if !ok {
		return report(m, false)
	}
	results := m.expr.Get(data)
	var matched bool
	switch {
	case len(results) == 0:
		matched = false
	case m.want == nil:
		matched = true
	default:
		matched = reflect.DeepEqual(results[0], m.want)
	}
	return report(m, matched)
}

func (m jsonPathMatcher) String() string { return fmt.Sprintf("jsonpath(%s)", m.path) }

// jsonShape converts v into the generic map/slice/float64 shape that
// encoding/json produces, which is what jp.Expr.Get traverses.
func jsonShape(v any) (any, bool) {
	var raw []byte
	switch s := v.(type) {
	case []byte:
		raw = s
	case string:
		raw = []byte(s)
	default:
		var err error
		raw, err = json.Marshal(v)
		if err != nil {
			return nil, false
		}
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, false
	}
	return data, true
}

// normalizeJSON round-trips an expected value through encoding/json so
// comparisons see the same number and key types the document does. Values
// that cannot marshal are compared as-is and will simply not match.
func normalizeJSON(want any) any {
	if want == nil {
		return nil
	}
	raw, err := json.Marshal(want)
	if err != nil {
		return want
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return want
	}
	return out
}

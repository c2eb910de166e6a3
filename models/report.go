package models

import (
	"math"
	"sort"
	"strconv"
)

// Record is the flattened summary of one build directory. Values are int,
// float64 or string; bool only appears in values merged from extra info.
type Record map[string]interface{}

// SetDefault stores v under key unless the key is already present. It
// reports whether the value was stored.
func (r Record) SetDefault(key string, v interface{}) bool {
	if _, ok := r[key]; ok {
		return false
	}
	r[key] = v
	return true
}

// Merge inserts every field of fields that r does not already have.
func (r Record) Merge(fields Record) {
	for k, v := range fields {
		r.SetDefault(k, v)
	}
}

// Keys returns the record's field names in lexicographic order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Numeric returns v as a float64 if it holds a number.
func Numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// FormatValue renders a cell the way report consumers expect to read it:
// floats always carry a decimal point or an exponent, bools are
// capitalised.
func FormatValue(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return FormatFloat(n)
	case bool:
		if n {
			return "True"
		}
		return "False"
	}
	return ""
}

// FormatFloat gives the shortest round-tripping form of f, switching to
// exponent notation below 1e-4 and from 1e16 upwards.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp := 0
	for i := len(sci) - 1; i >= 0; i-- {
		if sci[i] == 'e' {
			exp, _ = strconv.Atoi(sci[i+1:])
			break
		}
	}
	if exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	for _, c := range s {
		if c == '.' {
			return s
		}
	}
	return s + ".0"
}

package formula

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind discriminates the value types the expression language works with.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	}
	return "unknown"
}

// Value is the result of evaluating an expression or sub-expression.
// Numbers are decimals so money math stays exact.
type Value struct {
	kind Kind
	num  decimal.Decimal
	str  string
	b    bool
}

func Number(d decimal.Decimal) Value { return Value{kind: KindNumber, num: d} }
func String(s string) Value          { return Value{kind: KindString, str: s} }
func Bool(b bool) Value              { return Value{kind: KindBool, b: b} }

func (v Value) Kind() Kind { return v.kind }

// Decimal returns the numeric value, or an error for non-numbers.
func (v Value) Decimal() (decimal.Decimal, error) {
	if v.kind != KindNumber {
		return decimal.Zero, fmt.Errorf("expected a number, got %s", v.kind)
	}
	return v.num, nil
}

// Text returns the string value, or an error for non-strings.
func (v Value) Text() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("expected a string, got %s", v.kind)
	}
	return v.str, nil
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return v.num.String()
	case KindString:
		return v.str
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	}
	return ""
}

// fromAny converts a config or context value into a Value. Config maps come
// from callers and from decoded JSON/YAML, so the numeric types vary.
func fromAny(x any) (Value, error) {
	switch t := x.(type) {
	case decimal.Decimal:
		return Number(t), nil
	case int:
		return Number(decimal.NewFromInt(int64(t))), nil
	case int64:
		return Number(decimal.NewFromInt(t)), nil
	case float64:
		return Number(decimal.NewFromFloat(t)), nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q", t.String())
		}
		return Number(d), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	}
	return Value{}, fmt.Errorf("unsupported value type %T", x)
}

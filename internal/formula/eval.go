// Package formula implements the small expression language used by
// transaction templates. Expressions reference scenario configuration via
// CONFIG.<name>, caller-supplied context variables by bare name, and a fixed
// set of helper functions. The language has no loops and no assignment, so
// every evaluation terminates.
package formula

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/schedule"
)

const configPrefix = "CONFIG."

// EvalError is returned for any parse or evaluation failure. It carries the
// original expression text so the failing formula can be reported verbatim.
type EvalError struct {
	Formula string
	Err     error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("formula %q: %v", e.Formula, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

type env struct {
	config  map[string]any
	context map[string]any
}

// Eval parses and evaluates an expression against scenario config and
// caller-supplied context variables. Any failure, including a reference to a
// missing CONFIG variable, yields an *EvalError; there is no silent default.
func Eval(expr string, config, context map[string]any) (Value, error) {
	n, err := parse(expr)
	if err != nil {
		return Value{}, &EvalError{Formula: expr, Err: err}
	}
	v, err := n.eval(&env{config: config, context: context})
	if err != nil {
		return Value{}, &EvalError{Formula: expr, Err: err}
	}
	return v, nil
}

func (n *numberLit) eval(*env) (Value, error) { return Number(n.val), nil }
func (n *stringLit) eval(*env) (Value, error) { return String(n.val), nil }

func (n *variable) eval(e *env) (Value, error) {
	if rest, ok := strings.CutPrefix(n.name, configPrefix); ok {
		v, ok := e.config[rest]
		if !ok {
			return Value{}, fmt.Errorf("CONFIG variable %q not found", rest)
		}
		return fromAny(v)
	}
	v, ok := e.context[n.name]
	if !ok {
		return Value{}, fmt.Errorf("unknown variable %q", n.name)
	}
	return fromAny(v)
}

func (n *negate) eval(e *env) (Value, error) {
	v, err := n.operand.eval(e)
	if err != nil {
		return Value{}, err
	}
	d, err := v.Decimal()
	if err != nil {
		return Value{}, fmt.Errorf("cannot negate: %w", err)
	}
	return Number(d.Neg()), nil
}

func (n *binary) eval(e *env) (Value, error) {
	left, err := n.left.eval(e)
	if err != nil {
		return Value{}, err
	}
	right, err := n.right.eval(e)
	if err != nil {
		return Value{}, err
	}

	switch n.op {
	case tokPlus, tokMinus, tokStar, tokSlash:
		return evalArithmetic(n.op, left, right)
	case tokLT, tokLE, tokGT, tokGE:
		return evalOrdering(n.op, left, right)
	case tokEQ, tokNE:
		return evalEquality(n.op, left, right)
	}
	return Value{}, fmt.Errorf("unsupported operator")
}

func evalArithmetic(op tokenKind, left, right Value) (Value, error) {
	l, err := left.Decimal()
	if err != nil {
		return Value{}, err
	}
	r, err := right.Decimal()
	if err != nil {
		return Value{}, err
	}
	switch op {
	case tokPlus:
		return Number(l.Add(r)), nil
	case tokMinus:
		return Number(l.Sub(r)), nil
	case tokStar:
		return Number(l.Mul(r)), nil
	case tokSlash:
		if r.IsZero() {
			return Value{}, fmt.Errorf("division by zero")
		}
		return Number(l.Div(r)), nil
	}
	return Value{}, fmt.Errorf("unsupported arithmetic operator")
}

// evalOrdering compares numbers numerically and strings lexically. ISO dates
// are strings, and YYYY-MM-DD order is lexical order.
func evalOrdering(op tokenKind, left, right Value) (Value, error) {
	var cmp int
	switch {
	case left.Kind() == KindNumber && right.Kind() == KindNumber:
		cmp = left.num.Cmp(right.num)
	case left.Kind() == KindString && right.Kind() == KindString:
		cmp = strings.Compare(left.str, right.str)
	default:
		return Value{}, fmt.Errorf("cannot compare %s with %s", left.Kind(), right.Kind())
	}
	switch op {
	case tokLT:
		return Bool(cmp < 0), nil
	case tokLE:
		return Bool(cmp <= 0), nil
	case tokGT:
		return Bool(cmp > 0), nil
	case tokGE:
		return Bool(cmp >= 0), nil
	}
	return Value{}, fmt.Errorf("unsupported comparison operator")
}

func evalEquality(op tokenKind, left, right Value) (Value, error) {
	if left.Kind() != right.Kind() {
		return Value{}, fmt.Errorf("cannot compare %s with %s", left.Kind(), right.Kind())
	}
	var eq bool
	switch left.Kind() {
	case KindNumber:
		eq = left.num.Equal(right.num)
	case KindString:
		eq = left.str == right.str
	case KindBool:
		eq = left.b == right.b
	}
	if op == tokNE {
		eq = !eq
	}
	return Bool(eq), nil
}

func (n *call) eval(e *env) (Value, error) {
	fn, ok := functions[n.name]
	if !ok {
		return Value{}, fmt.Errorf("unknown function %q", n.name)
	}
	args := make([]Value, len(n.args))
	for i, arg := range n.args {
		v, err := arg.eval(e)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	return fn(args)
}

// functions is the fixed helper set. The language has no way to define more.
var functions = map[string]func(args []Value) (Value, error){
	"linearGrowth":       linearGrowth,
	"percentageIncrease": percentageIncrease,
	"conditionalByDate":  conditionalByDate,
}

func argDecimals(name string, args []Value, want int) ([]decimal.Decimal, error) {
	if len(args) != want {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", name, want, len(args))
	}
	out := make([]decimal.Decimal, len(args))
	for i, a := range args {
		d, err := a.Decimal()
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", name, i+1, err)
		}
		out[i] = d
	}
	return out, nil
}

// linearGrowth(base, rate, periods) = base + rate*periods
func linearGrowth(args []Value) (Value, error) {
	d, err := argDecimals("linearGrowth", args, 3)
	if err != nil {
		return Value{}, err
	}
	return Number(d[0].Add(d[1].Mul(d[2]))), nil
}

// percentageIncrease(amount, percentage) = amount * (1 + percentage/100)
func percentageIncrease(args []Value) (Value, error) {
	d, err := argDecimals("percentageIncrease", args, 2)
	if err != nil {
		return Value{}, err
	}
	factor := decimal.NewFromInt(1).Add(d[1].Div(decimal.NewFromInt(100)))
	return Number(d[0].Mul(factor)), nil
}

// conditionalByDate(date, thresholdDate, beforeAmount, afterAmount) picks
// beforeAmount strictly before the threshold, afterAmount on or after it.
func conditionalByDate(args []Value) (Value, error) {
	if len(args) != 4 {
		return Value{}, fmt.Errorf("conditionalByDate expects 4 arguments, got %d", len(args))
	}
	dateStr, err := args[0].Text()
	if err != nil {
		return Value{}, fmt.Errorf("conditionalByDate argument 1: %w", err)
	}
	thresholdStr, err := args[1].Text()
	if err != nil {
		return Value{}, fmt.Errorf("conditionalByDate argument 2: %w", err)
	}
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		return Value{}, fmt.Errorf("conditionalByDate argument 1: %w", err)
	}
	threshold, err := schedule.ParseDate(thresholdStr)
	if err != nil {
		return Value{}, fmt.Errorf("conditionalByDate argument 2: %w", err)
	}
	if date.Before(threshold) {
		return args[2], nil
	}
	return args[3], nil
}

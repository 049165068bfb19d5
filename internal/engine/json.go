package engine

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// formulaDoc is the wire form of a formula-valued field.
type formulaDoc struct {
	Formula string         `json:"formula"`
	Context map[string]any `json:"context,omitempty"`
}

// MarshalJSON encodes a literal amount as a bare number and a formula amount
// as {"formula": ..., "context": ...}.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Literal != nil {
		return json.Marshal(a.Literal)
	}
	if a.Formula != nil {
		return json.Marshal(formulaDoc{Formula: a.Formula.Expr, Context: a.Formula.Context})
	}
	return nil, fmt.Errorf("amount has neither literal nor formula")
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc formulaDoc
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return err
		}
		if doc.Formula == "" {
			return fmt.Errorf("amount object must carry a formula")
		}
		*a = Amount{Formula: &Formula{Expr: doc.Formula, Context: doc.Context}}
		return nil
	}

	var d decimal.Decimal
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return fmt.Errorf("amount must be a number or a formula object: %w", err)
	}
	*a = Amount{Literal: &d}
	return nil
}

// MarshalJSON encodes a literal date as a bare string and a formula date as
// {"formula": ..., "context": ...}.
func (d DateSpec) MarshalJSON() ([]byte, error) {
	if d.Literal != "" {
		return json.Marshal(d.Literal)
	}
	if d.Formula != nil {
		return json.Marshal(formulaDoc{Formula: d.Formula.Expr, Context: d.Formula.Context})
	}
	return nil, fmt.Errorf("date spec has neither literal nor formula")
}

func (d *DateSpec) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc formulaDoc
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return err
		}
		if doc.Formula == "" {
			return fmt.Errorf("date object must carry a formula")
		}
		*d = DateSpec{Formula: &Formula{Expr: doc.Formula, Context: doc.Context}}
		return nil
	}

	var literal string
	if err := json.Unmarshal(trimmed, &literal); err != nil {
		return fmt.Errorf("date must be a string or a formula object: %w", err)
	}
	*d = DateSpec{Literal: literal}
	return nil
}

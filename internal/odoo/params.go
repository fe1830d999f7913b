package odoo

import (
	"encoding/json"
	"fmt"
)

// Condition is one domain term: [field, operator, value]. A Condition with
// only Operator set is a logical prefix operator ("|", "&", "!").
type Condition struct {
	Field    string
	Operator string
	Value    any
}

// Cond builds a [field, operator, value] term.
func Cond(field, operator string, value any) Condition {
	return Condition{Field: field, Operator: operator, Value: value}
}

// Or is the "|" prefix operator.
func Or() Condition {
	return Condition{Operator: "|"}
}

func (c Condition) logical() bool {
	return c.Field == "" && c.Value == nil
}

func (c Condition) MarshalJSON() ([]byte, error) {
	if c.logical() {
		return json.Marshal(c.Operator)
	}

	return json.Marshal([]any{c.Field, c.Operator, c.Value})
}

func (c *Condition) UnmarshalJSON(data []byte) error {
	var op string
	if err := json.Unmarshal(data, &op); err == nil {
		*c = Condition{Operator: op}

		return nil
	}

	var term []json.RawMessage
	if err := json.Unmarshal(data, &term); err != nil {
		return fmt.Errorf("domain term: %w", err)
	}

	if len(term) != 3 {
		return fmt.Errorf("domain term must have 3 elements, got %d", len(term))
	}

	var out Condition
	if err := json.Unmarshal(term[0], &out.Field); err != nil {
		return fmt.Errorf("domain field: %w", err)
	}

	if err := json.Unmarshal(term[1], &out.Operator); err != nil {
		return fmt.Errorf("domain operator: %w", err)
	}

	if err := json.Unmarshal(term[2], &out.Value); err != nil {
		return fmt.Errorf("domain value: %w", err)
	}

	*c = out

	return nil
}

// Domain is an Odoo search domain.
type Domain []Condition

// Params are the keyword arguments of a JSON-2 call. Every member is optional
// and sent unmodified. Extra carries keyword arguments without a dedicated field;
// it never overrides a named one.
type Params struct {
	IDs      []int64          `json:"ids,omitempty"`
	Domain   Domain           `json:"domain,omitempty"`
	Fields   []string         `json:"fields,omitempty"`
	Limit    int              `json:"limit,omitempty"`
	Context  map[string]any   `json:"context,omitempty"`
	ValsList []map[string]any `json:"vals_list,omitempty"`
	Extra    map[string]any   `json:"-"`
}

func (p Params) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+6)

	for k, v := range p.Extra {
		out[k] = v
	}

	if p.IDs != nil {
		out["ids"] = p.IDs
	}

	if p.Domain != nil {
		out["domain"] = p.Domain
	}

	if p.Fields != nil {
		out["fields"] = p.Fields
	}

	if p.Limit != 0 {
		out["limit"] = p.Limit
	}

	if p.Context != nil {
		out["context"] = p.Context
	}

	if p.ValsList != nil {
		out["vals_list"] = p.ValsList
	}

	return json.Marshal(out)
}

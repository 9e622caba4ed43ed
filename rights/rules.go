package rights

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Rule restricts a URL subtree to an identity or group scope. Path is
// relative to the evaluator's base URL; Scope is a group or user path
// from the credential tree.
type Rule struct {
	Path  string
	Scope string
}

// Rules is an ordered rule collection. Order is part of the access
// contract: evaluation is first-deny-wins over declaration order, so a
// broad rule listed first shadows narrower rules after it.
type Rules []Rule

// UnmarshalJSON decodes a JSON object while keeping its document order,
// since rule order decides evaluation order.
func (r *Rules) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return errors.New("rights: rules must be a JSON object")
	}

	var rules Rules
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		path, ok := token.(string)
		if !ok {
			return fmt.Errorf("rights: unexpected key token %v", token)
		}
		var scope string
		if err := decoder.Decode(&scope); err != nil {
			return fmt.Errorf("rights: scope of rule %q: %w", path, err)
		}
		rules = append(rules, Rule{Path: path, Scope: scope})
	}
	*r = rules
	return nil
}

// MarshalJSON is the inverse of UnmarshalJSON. Go maps would lose the
// order, so rules serialize through the slice.
func (r Rules) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rule := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rule.Path)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(rule.Scope)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

package service

import (
	"encoding/json"
	"regexp"
	"strconv"
)

// DefaultLimit is the page size of a query that does not name one.
const DefaultLimit = 30

var numericOffset = regexp.MustCompile(`^[0-9]+$`)

// StatementType joins the conditions of a Statement.
type StatementType string

// Statement types.
const (
	StatementOr  StatementType = "OR"
	StatementAnd StatementType = "AND"
)

// OrderDirection is the direction of an Order.
type OrderDirection string

// Order directions.
const (
	OrderAsc  OrderDirection = "ASC"
	OrderDesc OrderDirection = "DESC"
)

// ConditionType is the comparison a Condition performs.
type ConditionType string

// Condition types.
const (
	ConditionEQ         ConditionType = "EQ"
	ConditionNEQ        ConditionType = "NEQ"
	ConditionGT         ConditionType = "GT"
	ConditionGTE        ConditionType = "GTE"
	ConditionLT         ConditionType = "LT"
	ConditionLTE        ConditionType = "LTE"
	ConditionIn         ConditionType = "IN"
	ConditionNotIn      ConditionType = "NIN"
	ConditionContains   ConditionType = "CONTAINS"
	ConditionStartsWith ConditionType = "STARTS_WITH"
	ConditionEndsWith   ConditionType = "ENDS_WITH"
	ConditionBetween    ConditionType = "BETWEEN"
)

// Query is a read request sent to a data source app.
type Query struct {
	SortOrder  []Order     `json:"sortOrder"`
	Fields     []string    `json:"fields"`
	Statements []Statement `json:"statements"`

	// Offset is opaque to dexi. Sources that page numerically read it
	// through OffsetInt.
	Offset string `json:"offset,omitempty"`
	Limit  int    `json:"limit"`
}

// NewQuery returns an empty query with the default limit.
func NewQuery() Query {
	return Query{Limit: DefaultLimit}
}

// OffsetInt returns Offset as a number. Blank or non-numeric offsets are 0.
func (q Query) OffsetInt() int64 {
	if !numericOffset.MatchString(q.Offset) {
		return 0
	}
	n, err := strconv.ParseInt(q.Offset, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// UnmarshalJSON applies the default limit when none is given.
func (q *Query) UnmarshalJSON(data []byte) error {
	type plain Query
	out := plain(NewQuery())
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*q = Query(out)
	return nil
}

// Statement is a group of conditions joined by Type.
type Statement struct {
	Type       StatementType `json:"type"`
	Conditions []Condition   `json:"conditions"`
}

// UnmarshalJSON defaults Type to AND.
func (s *Statement) UnmarshalJSON(data []byte) error {
	type plain Statement
	out := plain{Type: StatementAnd}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*s = Statement(out)
	return nil
}

// Condition compares Field against its operands. Which operands are used
// depends on Type: Value for the comparisons, List for IN and NIN, and From
// and To for BETWEEN.
type Condition struct {
	Type  ConditionType `json:"type"`
	Field string        `json:"field"`
	From  Value         `json:"from"`
	To    Value         `json:"to"`
	Value Value         `json:"value"`
	List  []Value       `json:"list,omitempty"`
}

// UnmarshalJSON defaults Type to EQ.
func (c *Condition) UnmarshalJSON(data []byte) error {
	type plain Condition
	out := plain{Type: ConditionEQ}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*c = Condition(out)
	return nil
}

// Order sorts results by Field.
type Order struct {
	Field     string         `json:"field"`
	Direction OrderDirection `json:"direction,omitempty"`
}

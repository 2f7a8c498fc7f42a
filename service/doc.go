// Package service defines the payloads exchanged between dexi and an app
// service: schemas, queries, rows and the dynamic schema and data storage
// requests.
//
// Condition operands are Value scalars, so a data source switches on
// Value.Kind instead of type-asserting decoded JSON:
//
//	for _, st := range q.Statements {
//	    for _, c := range st.Conditions {
//	        if s, ok := c.Value.AsString(); ok {
//	            ...
//	        }
//	    }
//	}
//
// RowIterator pages through a source that honours Query.Offset and
// Query.Limit.
package service

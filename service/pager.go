package service

import (
	"context"
	"strconv"
)

// RowFetcher reads the page of rows described by q and returns the offset
// of the following page, or "" when there are no more rows.
type RowFetcher func(ctx context.Context, q Query) (rows Rows, next string, err error)

// NextOffset is the numeric continuation for a page of n rows read with q:
// "" when the page was short, otherwise the offset just past it.
func NextOffset(q Query, n int) string {
	if q.Limit <= 0 || n < q.Limit {
		return ""
	}
	return strconv.FormatInt(q.OffsetInt()+int64(n), 10)
}

// RowIterator pages through the rows matching a query.
// It lazily fetches pages as needed.
type RowIterator struct {
	fetch   RowFetcher
	query   Query
	buffer  Rows
	done    bool
	err     error
	fetched int
}

// NewRowIterator starts iterating at q's offset.
func NewRowIterator(q Query, fetch RowFetcher) *RowIterator {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	return &RowIterator{fetch: fetch, query: q}
}

// Next returns the next row.
// When iteration is complete, returns (nil, false, nil).
func (p *RowIterator) Next(ctx context.Context) (map[string]any, bool, error) {
	if p.err != nil {
		return nil, false, p.err
	}

	// An empty page with a continuation is skipped.
	for len(p.buffer) == 0 && !p.done {
		rows, next, err := p.fetch(ctx, p.query)
		if err != nil {
			p.err = err
			return nil, false, err
		}
		p.buffer = rows
		if next == "" || next == p.query.Offset {
			p.done = true
		}
		p.query.Offset = next
	}

	if len(p.buffer) == 0 {
		return nil, false, nil
	}

	row := p.buffer[0]
	p.buffer = p.buffer[1:]
	p.fetched++

	return row, true, nil
}

// All collects the remaining rows.
func (p *RowIterator) All(ctx context.Context) (Rows, error) {
	return p.Take(ctx, -1)
}

// Take returns up to n rows; n < 0 means all of them.
func (p *RowIterator) Take(ctx context.Context, n int) (Rows, error) {
	var rows Rows
	for n < 0 || len(rows) < n {
		row, ok, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ForEach calls fn for each row.
// If fn returns an error, iteration stops and that error is returned.
func (p *RowIterator) ForEach(ctx context.Context, fn func(map[string]any) error) error {
	for {
		row, ok, err := p.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

// Err returns any error that occurred during iteration.
func (p *RowIterator) Err() error {
	return p.err
}

// Fetched returns the number of rows returned so far.
func (p *RowIterator) Fetched() int {
	return p.fetched
}

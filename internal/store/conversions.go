package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/svgreact/internal/ir"
)

// ErrNotFound is returned when no conversion has the requested ID.
var ErrNotFound = errors.New("conversion not found")

// Conversion is one cached compile result.
type Conversion struct {
	ID         string        `json:"id"`
	Source     string        `json:"source"`
	Component  string        `json:"component"`
	Code       string        `json:"code"`
	Map        string        `json:"map,omitempty"`
	Attributes ir.Attributes `json:"attributes"`

	// Set by PutConversion.
	RunID string `json:"run_id"`
	Seq   int64  `json:"seq"`
}

const conversionColumns = `id, source, component, code, map, attributes, run_id, seq`

// PutConversion stores c under c.ID, stamping it with the store's run ID and
// the next seq. Uses ON CONFLICT(id) DO NOTHING for idempotency: a repeated
// ID keeps the first row. It reports whether a new row was written.
func (s *Store) PutConversion(ctx context.Context, c Conversion) (bool, error) {
	if c.ID == "" {
		return false, fmt.Errorf("put conversion: empty id")
	}

	attrsJSON, err := marshalAttributes(c.Attributes)
	if err != nil {
		return false, fmt.Errorf("put conversion: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO conversions
		(`+conversionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		c.ID,
		c.Source,
		c.Component,
		c.Code,
		c.Map,
		attrsJSON,
		s.runID,
		s.clock.Next(),
	)
	if err != nil {
		return false, fmt.Errorf("put conversion: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("put conversion: %w", err)
	}
	return n > 0, nil
}

// GetConversion returns the conversion stored under id, or ErrNotFound.
func (s *Store) GetConversion(ctx context.Context, id string) (Conversion, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+conversionColumns+`
		FROM conversions
		WHERE id = ?
	`, id)

	c, err := scanConversion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Conversion{}, ErrNotFound
	}
	if err != nil {
		return Conversion{}, fmt.Errorf("get conversion %s: %w", id, err)
	}
	return c, nil
}

// ListConversions returns every stored conversion in write order.
func (s *Store) ListConversions(ctx context.Context) ([]Conversion, error) {
	return s.queryConversions(ctx, `
		SELECT `+conversionColumns+`
		FROM conversions
		ORDER BY seq ASC, id ASC COLLATE BINARY
	`)
}

// ConversionsForSource returns the conversions cached for one source path,
// oldest first. A source has several rows when it was compiled with
// different options or content.
func (s *Store) ConversionsForSource(ctx context.Context, source string) ([]Conversion, error) {
	return s.queryConversions(ctx, `
		SELECT `+conversionColumns+`
		FROM conversions
		WHERE source = ?
		ORDER BY seq ASC, id ASC COLLATE BINARY
	`, source)
}

func (s *Store) queryConversions(ctx context.Context, query string, args ...any) ([]Conversion, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	defer rows.Close()

	out := []Conversion{}
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, fmt.Errorf("list conversions: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	return out, nil
}

// Count returns the number of stored conversions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count conversions: %w", err)
	}
	return n, nil
}

// Clear deletes every stored conversion and returns how many were removed.
// The clock is not rewound, so seq stays monotonic for this Store.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM conversions`)
	if err != nil {
		return 0, fmt.Errorf("clear conversions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear conversions: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConversion(sc scanner) (Conversion, error) {
	var (
		c         Conversion
		attrsJSON string
	)
	if err := sc.Scan(&c.ID, &c.Source, &c.Component, &c.Code, &c.Map, &attrsJSON, &c.RunID, &c.Seq); err != nil {
		return Conversion{}, err
	}

	attrs, err := unmarshalAttributes(attrsJSON)
	if err != nil {
		return Conversion{}, err
	}
	c.Attributes = attrs
	return c, nil
}

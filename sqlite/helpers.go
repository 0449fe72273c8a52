package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// nullString converts an optional string to a driver-compatible value.
func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// nullFloat converts an optional float to a driver-compatible value.
func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

// nullTime converts an optional timestamp to an RFC3339 string or NULL.
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// fromNullString converts a scanned nullable column to an optional string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// fromNullFloat converts a scanned nullable column to an optional float.
func fromNullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

// fromNullRFC3339 converts a scanned nullable timestamp column to an
// optional time.Time.
func fromNullRFC3339(ns sql.NullString, fieldName string) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseRFC3339(ns.String, fieldName)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

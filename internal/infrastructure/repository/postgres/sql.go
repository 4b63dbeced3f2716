package postgres

import (
	"database/sql"
	"errors"
	"strings"

	qb "github.com/ffmaxarena/arena-api/internal/platform/querybuilder"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func nullString(v string) sql.NullString {
	if strings.TrimSpace(v) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

// selectList returns the model columns, swapping in expressions where given.
func selectList(model any, overrides map[string]string) []string {
	columns := qb.Columns(model)
	out := make([]string, 0, len(columns))
	for _, column := range columns {
		if expr, ok := overrides[column]; ok {
			out = append(out, expr)
			continue
		}
		out = append(out, column)
	}
	return out
}

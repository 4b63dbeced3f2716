package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel inserts every db-tagged field of model. Fields tagged
// `db:"name,readonly"` are skipped so generated columns stay with the database.
func InsertModel(table string, model any, returning ...string) (string, []any, error) {
	cols, vals, err := writableColumns(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Returning(returning...).
		ToSQL()
}

// UpdateModel sets every writable db-tagged field of model.
func UpdateModel(table string, model any, where Condition, returning ...string) (string, []any, error) {
	cols, vals, err := writableColumns(model)
	if err != nil {
		return "", nil, err
	}
	b := Update(table)
	for i, col := range cols {
		b.Set(col, vals[i])
	}
	return b.Where(where).Returning(returning...).ToSQL()
}

// Columns lists every db-tagged column of model, readonly ones included.
func Columns(model any) []string {
	typ := reflect.TypeOf(model)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil
	}

	cols := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		col, _, ok := parseDBTag(typ.Field(i))
		if ok {
			cols = append(cols, col)
		}
	}
	return cols
}

func writableColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		col, readonly, ok := parseDBTag(typ.Field(i))
		if !ok || readonly {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no writable db columns")
	}
	return cols, vals, nil
}

func parseDBTag(field reflect.StructField) (string, bool, bool) {
	if field.PkgPath != "" {
		return "", false, false
	}
	parts := strings.Split(strings.TrimSpace(field.Tag.Get("db")), ",")
	col := strings.TrimSpace(parts[0])
	if col == "" || col == "-" {
		return "", false, false
	}
	readonly := false
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "readonly" {
			readonly = true
		}
	}
	return col, readonly, true
}

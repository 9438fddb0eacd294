package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// InsertModel builds an insert from the db-tagged exported fields of model.
func InsertModel(table string, model any) (string, []any, error) {
	b, _, err := insertFromModel(table, model)
	if err != nil {
		return "", nil, err
	}
	return b.ToSQL()
}

// UpsertModel inserts model and, when a row with the same conflict columns
// exists, overwrites every other column except the immutable ones.
func UpsertModel(table string, model any, conflict []string, immutable ...string) (string, []any, error) {
	if len(conflict) == 0 {
		return "", nil, fmt.Errorf("upsert %s requires conflict columns", table)
	}
	b, cols, err := insertFromModel(table, model)
	if err != nil {
		return "", nil, err
	}

	updates := make([]string, 0, len(cols))
	for _, col := range cols {
		if slices.Contains(conflict, col) || slices.Contains(immutable, col) {
			continue
		}
		updates = append(updates, col)
	}
	b.OnConflict(conflict...)
	if len(updates) == 0 {
		b.DoNothing()
	} else {
		b.DoUpdate(updates...)
	}
	return b.ToSQL()
}

func insertFromModel(table string, model any) (*InsertBuilder, []string, error) {
	cols, vals, err := columnsAndValues(model)
	if err != nil {
		return nil, nil, fmt.Errorf("%s model: %w", table, err)
	}
	return InsertInto(table).Columns(cols...).Values(vals...), cols, nil
}

func columnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}

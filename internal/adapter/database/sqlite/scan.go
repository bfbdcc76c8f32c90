package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"
)

// Scanner maps result rows onto entity structs by column name. Timestamps
// are persisted as epoch milliseconds and surface as time.Time, nullable
// columns as pointers.
type Scanner struct {
	loc *time.Location
}

func NewScanner(loc *time.Location) *Scanner {
	if loc == nil {
		loc = time.Local
	}
	return &Scanner{loc: loc}
}

func (s *Scanner) ScanRowToStruct(rows *sql.Rows, dest interface{}) error {
	destValue := reflect.ValueOf(dest)

	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a pointer to struct")
	}

	if !rows.Next() {
		return sql.ErrNoRows
	}

	return s.scanCurrentRow(rows, destValue.Elem())
}

func (s *Scanner) ScanRowsToSlice(rows *sql.Rows, dest interface{}) error {
	destValue := reflect.ValueOf(dest)

	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("dest must be a pointer to slice")
	}

	sliceValue := destValue.Elem()
	elemType := sliceValue.Type().Elem()

	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("slice elements must be structs")
	}

	for rows.Next() {
		elemValue := reflect.New(elemType).Elem()

		if err := s.scanCurrentRow(rows, elemValue); err != nil {
			return err
		}

		sliceValue.Set(reflect.Append(sliceValue, elemValue))
	}

	return rows.Err()
}

func (s *Scanner) scanCurrentRow(rows *sql.Rows, destElem reflect.Value) error {
	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	scanArgs := make([]interface{}, len(columns))
	for i := range scanArgs {
		scanArgs[i] = new(interface{})
	}

	if err := rows.Scan(scanArgs...); err != nil {
		return err
	}

	destType := destElem.Type()

	for i, colName := range columns {
		val := *(scanArgs[i].(*interface{}))

		field, ok := s.findStructField(destType, colName)
		if !ok {
			continue
		}

		if err := s.setFieldValue(destElem.FieldByIndex(field.Index), val); err != nil {
			slog.Warn("Failed to set field", "field", field.Name, "column", colName, "error", err)
		}
	}

	return nil
}

func (s *Scanner) findStructField(structType reflect.Type, colName string) (reflect.StructField, bool) {
	colNameLower := strings.ToLower(colName)

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if tag := field.Tag.Get("db"); tag != "" && strings.ToLower(tag) == colNameLower {
			return field, true
		}
	}

	camel := snakeToCamel(colName)
	if field, found := structType.FieldByName(camel); found {
		return field, true
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if strings.ToLower(field.Name) == strings.ReplaceAll(colNameLower, "_", "") {
			return field, true
		}
	}

	return reflect.StructField{}, false
}

func snakeToCamel(snake string) string {
	parts := strings.Split(snake, "_")
	for i := range parts {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + strings.ToLower(parts[i][1:])
		}
	}
	return strings.Join(parts, "")
}

var timeType = reflect.TypeOf(time.Time{})

func (s *Scanner) setFieldValue(field reflect.Value, val interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	if val == nil {
		// leave pointers nil, scalars at their zero value
		return nil
	}

	fieldType := field.Type()

	if fieldType.Kind() == reflect.Ptr {
		elem := reflect.New(fieldType.Elem())
		if err := s.setFieldValue(elem.Elem(), val); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	}

	if fieldType == timeType {
		return s.setTimeValue(field, val)
	}

	valValue := reflect.ValueOf(val)
	if valValue.Type().AssignableTo(fieldType) {
		field.Set(valValue)
		return nil
	}

	switch fieldType.Kind() {
	case reflect.String:
		switch v := val.(type) {
		case string:
			field.SetString(v)
		case []byte:
			field.SetString(string(v))
		default:
			return fmt.Errorf("cannot assign %T to string", val)
		}
	case reflect.Int, reflect.Int32, reflect.Int64:
		switch v := val.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("cannot assign %T to int", val)
		}
	case reflect.Bool:
		switch v := val.(type) {
		case bool:
			field.SetBool(v)
		case int64:
			field.SetBool(v != 0)
		default:
			return fmt.Errorf("cannot assign %T to bool", val)
		}
	case reflect.Float32, reflect.Float64:
		if f, ok := val.(float64); ok {
			field.SetFloat(f)
		} else {
			return fmt.Errorf("cannot assign %T to float", val)
		}
	default:
		if valValue.Type().ConvertibleTo(fieldType) {
			field.Set(valValue.Convert(fieldType))
		} else {
			return fmt.Errorf("unsupported field type %s for %T", fieldType, val)
		}
	}

	return nil
}

func (s *Scanner) setTimeValue(field reflect.Value, val interface{}) error {
	switch v := val.(type) {
	case int64:
		field.Set(reflect.ValueOf(time.UnixMilli(v).In(s.loc)))
	case time.Time:
		field.Set(reflect.ValueOf(v.In(s.loc)))
	case string:
		parsed, err := time.ParseInLocation("2006-01-02 15:04:05", v, s.loc)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, v)
		}
		if err != nil {
			return fmt.Errorf("cannot parse time %q", v)
		}
		field.Set(reflect.ValueOf(parsed.In(s.loc)))
	default:
		return fmt.Errorf("cannot assign %T to time.Time", val)
	}

	return nil
}

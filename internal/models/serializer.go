package models

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"gorm.io/gorm/schema"
)

// JSONNumberSerializer stores a field as JSON like gorm's "json" serializer
// but decodes numbers as json.Number, so large integers and decimals read
// back exactly as they were written.
type JSONNumberSerializer struct{}

func init() {
	schema.RegisterSerializer("jsonnumber", JSONNumberSerializer{})
}

// Scan implements schema.SerializerInterface
func (JSONNumberSerializer) Scan(ctx context.Context, field *schema.Field, dst reflect.Value, dbValue interface{}) error {
	fieldValue := reflect.New(field.FieldType)

	if dbValue != nil {
		var raw []byte
		switch v := dbValue.(type) {
		case []byte:
			raw = v
		case string:
			raw = []byte(v)
		default:
			return fmt.Errorf("failed to unmarshal JSON value: %#v", dbValue)
		}

		if len(raw) > 0 {
			dec := json.NewDecoder(bytes.NewReader(raw))
			dec.UseNumber()
			if err := dec.Decode(fieldValue.Interface()); err != nil {
				return err
			}
		}
	}

	field.ReflectValueOf(ctx, dst).Set(fieldValue.Elem())
	return nil
}

// Value implements schema.SerializerValuerInterface
func (JSONNumberSerializer) Value(ctx context.Context, field *schema.Field, dst reflect.Value, fieldValue interface{}) (interface{}, error) {
	result, err := json.Marshal(fieldValue)
	if err != nil {
		return nil, err
	}
	return string(result), nil
}

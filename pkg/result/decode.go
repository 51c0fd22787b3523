package result

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// StructDecoder returns a decoder that fills a T from a row, matching
// columns to fields through `db` struct tags (case-insensitive, falling back
// to the field name). Conversion is weakly typed so int64 cells land in int
// fields and strings parse into numbers and timestamps. Fields without a
// matching column, or whose column is NULL, keep their zero value.
func StructDecoder[T any]() func(Row) (T, error) {
	return func(row Row) (T, error) {
		var out T
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
			),
			Result:           &out,
			TagName:          "db",
			WeaklyTypedInput: true,
		})
		if err != nil {
			return out, fmt.Errorf("failed to create decoder: %w", err)
		}
		if err := dec.Decode(row.Map()); err != nil {
			return out, err
		}
		return out, nil
	}
}

// MapDecoder decodes a row into a map keyed by column name.
func MapDecoder(row Row) (map[string]any, error) {
	return row.Map(), nil
}

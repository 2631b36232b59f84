package tracecache

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"unicode/utf8"
)

// Converter turns the raw bytes the store hands back into a typed value.
type Converter[T any] func(data []byte) (T, error)

// ConversionError reports a stored value that could not be converted to the
// requested type.
type ConversionError struct {
	Identifier string
	Target     string
	Err        error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert value under %q to %s: %v", e.Identifier, e.Target, e.Err)
}

// Unwrap exposes the underlying conversion failure.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// GetAs reads the value stored under identifier and converts it to T using
// convert. An absent identifier reports (zero, false, nil); a conversion
// failure reports a ConversionError. Since Go methods cannot have type
// parameters, this lives as a package-level function taking the Cache as an
// argument.
func GetAs[T any](ctx context.Context, c *Cache, identifier string, convert Converter[T]) (T, bool, error) {
	var zero T

	data, ok, err := c.store.Get(ctx, identifier)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}

	out, err := convert(data)
	if err != nil {
		return zero, false, &ConversionError{
			Identifier: identifier,
			Target:     reflect.TypeOf((*T)(nil)).Elem().String(),
			Err:        err,
		}
	}
	return out, true, nil
}

// AsString converts stored bytes to text, rejecting invalid UTF-8.
func AsString(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("value is not valid UTF-8")
	}
	return string(data), nil
}

// AsInt converts stored bytes to a base-10 integer.
func AsInt(data []byte) (int64, error) {
	return strconv.ParseInt(string(data), 10, 64)
}

// AsFloat converts stored bytes to a float.
func AsFloat(data []byte) (float64, error) {
	return strconv.ParseFloat(string(data), 64)
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

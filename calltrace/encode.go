package calltrace

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Encoder renders operation arguments and results as transcript text.
// Encodings must be deterministic across runs so recorded histories stay
// comparable.
type Encoder interface {
	// EncodeValue renders a single value. A top-level string or byte slice
	// is rendered raw; nested strings are quoted.
	EncodeValue(v any) string

	// EncodeTuple renders an argument list as a parenthesized tuple,
	// for example ("user", 42). No arguments encode as ().
	EncodeTuple(args ...any) string
}

// textEncoder implements Encoder using reflection-based rendering.
// It handles function pointers using %p formatting, recursive slices, and
// falls back to JSON for types the walk does not cover.
type textEncoder struct{}

// NewEncoder creates the default transcript encoder.
func NewEncoder() Encoder {
	return &textEncoder{}
}

func (e *textEncoder) EncodeValue(v any) string {
	return e.encodeValue(v, false)
}

func (e *textEncoder) EncodeTuple(args ...any) string {
	if len(args) == 0 {
		return "()"
	}

	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = e.encodeValue(arg, true)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// encodeValue handles individual value rendering based on type. The quoted
// flag applies to the value itself when it is textual; nested text is always
// quoted so list and map boundaries stay unambiguous.
func (e *textEncoder) encodeValue(v any, quoted bool) string {
	if v == nil {
		return "nil"
	}

	// Byte slices are transcript text, not lists of numbers.
	if b, ok := v.([]byte); ok {
		return e.encodeString(string(b), quoted)
	}

	rv := reflect.ValueOf(v)
	rt := reflect.TypeOf(v)

	switch rt.Kind() {
	case reflect.String:
		return e.encodeString(rv.String(), quoted)

	// Function pointers render via %p so two recordings of the same
	// closure stay identical within a run.
	case reflect.Func:
		return fmt.Sprintf("func:%p", v)

	case reflect.Ptr:
		if rv.IsNil() {
			return "nil"
		}
		return e.encodeValue(rv.Elem().Interface(), quoted)

	case reflect.Slice:
		if rv.IsNil() {
			return "[]"
		}
		return e.encodeList(rv)

	case reflect.Array:
		return e.encodeList(rv)

	case reflect.Map:
		if rv.IsNil() {
			return "{}"
		}
		return e.encodeMap(rv)

	case reflect.Struct:
		return e.encodeStruct(rv, rt)

	case reflect.Chan:
		return fmt.Sprintf("chan:%p", v)

	case reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
		return e.encodeValue(rv.Elem().Interface(), quoted)
	}

	if isBasicKind(rt.Kind()) {
		return fmt.Sprintf("%v", v)
	}

	return e.jsonFallback(v)
}

func (e *textEncoder) encodeString(s string, quoted bool) string {
	if quoted {
		return strconv.Quote(s)
	}
	return s
}

// encodeList renders slices and arrays recursively.
func (e *textEncoder) encodeList(rv reflect.Value) string {
	length := rv.Len()
	parts := make([]string, length)

	for i := 0; i < length; i++ {
		parts[i] = e.encodeValue(rv.Index(i).Interface(), true)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// encodeMap renders maps with entries sorted by rendered key for determinism.
func (e *textEncoder) encodeMap(rv reflect.Value) string {
	keys := rv.MapKeys()

	pairs := make([]string, len(keys))
	for i, k := range keys {
		keyStr := e.encodeValue(k.Interface(), true)
		valStr := e.encodeValue(rv.MapIndex(k).Interface(), true)
		pairs[i] = keyStr + ": " + valStr
	}
	sort.Strings(pairs)

	return "{" + strings.Join(pairs, ", ") + "}"
}

// encodeStruct renders exported fields in declaration order.
func (e *textEncoder) encodeStruct(rv reflect.Value, rt reflect.Type) string {
	numFields := rv.NumField()
	parts := make([]string, 0, numFields)

	for i := 0; i < numFields; i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldValue := rv.Field(i)
		if !fieldValue.CanInterface() {
			continue
		}

		parts = append(parts, field.Name+": "+e.encodeValue(fieldValue.Interface(), true))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// isBasicKind checks if a kind represents a basic Go type.
func isBasicKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// jsonFallback renders types the reflection walk does not cover.
func (e *textEncoder) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

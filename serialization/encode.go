package serialization

import (
	"bytes"
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/kbukum/arangodb/errors"
)

// maxDepth bounds nesting so that cyclic values fail instead of recursing forever.
const maxDepth = 512

var (
	marshalerType     = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// Encode serializes v into a JSON request body under p.
// Values that cannot be represented in JSON fail with *errors.ValidationError.
func Encode(v any, p Policy) (Content, error) {
	var buf bytes.Buffer
	e := &encoder{buf: &buf, policy: p}
	if err := e.value(reflect.ValueOf(v), "payload", 0); err != nil {
		return Content{}, err
	}
	return Content{Data: buf.Bytes(), ContentType: ContentTypeJSON}, nil
}

type encoder struct {
	buf    *bytes.Buffer
	policy Policy
}

func (e *encoder) value(v reflect.Value, path string, depth int) error {
	if depth > maxDepth {
		return errors.NewValidationError(path, "", "value nests too deeply (cyclic?)")
	}
	if !v.IsValid() {
		e.buf.WriteString("null")
		return nil
	}
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		e.buf.WriteString("null")
		return nil
	}
	if m, ok := marshaler(v); ok {
		return e.leaf(m, path)
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return e.value(v.Elem(), path, depth+1)
	case reflect.Struct:
		return e.object(v, path, depth)
	case reflect.Map:
		return e.mapping(v, path, depth)
	case reflect.Slice:
		if v.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return e.leaf(v.Interface(), path)
		}
		return e.array(v, path, depth)
	case reflect.Array:
		return e.array(v, path, depth)
	case reflect.Chan, reflect.Func, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return errors.NewValidationError(path, "", "unsupported type "+v.Type().String())
	default:
		return e.leaf(v.Interface(), path)
	}
}

// marshaler returns v (or its address) when it encodes itself.
func marshaler(v reflect.Value) (any, bool) {
	t := v.Type()
	if t.Implements(marshalerType) || t.Implements(textMarshalerType) {
		return v.Interface(), true
	}
	if v.CanAddr() {
		pt := reflect.PointerTo(t)
		if pt.Implements(marshalerType) || pt.Implements(textMarshalerType) {
			return v.Addr().Interface(), true
		}
	}
	return nil, false
}

func (e *encoder) leaf(v any, path string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.NewValidationError(path, "", "cannot encode value").WithCause(err)
	}
	e.buf.Write(data)
	return nil
}

func (e *encoder) object(v reflect.Value, path string, depth int) error {
	fields := cachedFields(v.Type())

	// Shallower fields shadow promoted fields with the same wire name.
	names := make([]string, len(fields))
	shallowest := make(map[string]int, len(fields))
	for i := range fields {
		names[i] = fields[i].wireName(e.policy)
		if d, ok := shallowest[names[i]]; !ok || fields[i].depth < d {
			shallowest[names[i]] = fields[i].depth
		}
	}

	e.buf.WriteByte('{')
	written := make(map[string]bool, len(fields))
	first := true
	for i := range fields {
		f := &fields[i]
		name := names[i]
		if written[name] || f.depth != shallowest[name] {
			continue
		}
		fv, ok := fieldByIndex(v, f.index)
		if !ok || e.skip(name, f, fv) {
			continue
		}
		written[name] = true

		if !first {
			e.buf.WriteByte(',')
		}
		first = false
		e.key(name)
		if err := e.value(fv, path+"."+name, depth+1); err != nil {
			return err
		}
	}
	e.buf.WriteByte('}')
	return nil
}

// skip applies the omission rules for one struct field.
func (e *encoder) skip(name string, f *field, fv reflect.Value) bool {
	if IsReserved(name) && isEmptyValue(fv) {
		return true
	}
	if f.omitEmpty && isEmptyValue(fv) {
		return true
	}
	if e.policy.OmitNulls && isNil(fv) {
		return true
	}
	return false
}

func (e *encoder) mapping(v reflect.Value, path string, depth int) error {
	if v.IsNil() {
		e.buf.WriteString("null")
		return nil
	}

	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k, err := mapKey(iter.Key())
		if err != nil {
			return errors.NewValidationError(path, "", err.Error())
		}
		entries = append(entries, entry{key: k, val: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.key, b.key) })

	e.buf.WriteByte('{')
	for i, en := range entries {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.key(en.key)
		if err := e.value(en.val, path+"."+en.key, depth+1); err != nil {
			return err
		}
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) array(v reflect.Value, path string, depth int) error {
	e.buf.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		if err := e.value(v.Index(i), path+"["+strconv.Itoa(i)+"]", depth+1); err != nil {
			return err
		}
	}
	e.buf.WriteByte(']')
	return nil
}

func (e *encoder) key(name string) {
	data, _ := json.Marshal(name)
	e.buf.Write(data)
	e.buf.WriteByte(':')
}

// mapKey renders a map key the way encoding/json does.
func mapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		if k.Kind() == reflect.Pointer && k.IsNil() {
			return "", nil
		}
		b, err := tm.MarshalText()
		return string(b), err
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", fmt.Errorf("unsupported map key type %s", k.Type())
}

// fieldByIndex walks index, reporting false when it crosses a nil embedded pointer.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	}
	return false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}

package serialization

import (
	stderrors "errors"
	"fmt"
	"io"
	"reflect"

	"github.com/goccy/go-json"

	"github.com/kbukum/arangodb/errors"
	"github.com/kbukum/arangodb/validation"
)

// maxDrain bounds how much unread body is discarded before closing, so the
// connection can be reused without reading an unbounded stream.
const maxDrain = 256 << 10

var errTrailingData = stderrors.New("unexpected data after JSON value")

// Decode reads a JSON body into a new T under p and closes body.
func Decode[T any](body io.ReadCloser, p Policy) (T, error) {
	var out T
	if err := DecodeInto(body, p, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// DecodeInto reads a JSON body into dst, which must be a non-nil pointer,
// and closes body on every return path. Unknown fields are ignored. When the
// decoded value is a struct its `validate` tags are checked, so a result
// type can require reserved fields such as _key.
func DecodeInto(body io.ReadCloser, p Policy, dst any) error {
	target := typeName(dst)
	if body == nil {
		return errors.NewDecodeError(target, "empty body", nil)
	}
	defer Discard(body)

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.NewDecodeError(target, "destination must be a non-nil pointer", nil)
	}

	var err error
	if p.OmitNulls {
		err = decodeSkippingNulls(body, dst)
	} else {
		err = decodeValue(body, dst, false)
	}
	if err != nil {
		return decodeFailure(target, err)
	}

	if err := validateResult(rv); err != nil {
		return errors.NewDecodeError(target, "missing required field", err)
	}
	return nil
}

// Discard drains a bounded amount of body and closes it.
func Discard(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxDrain))
	_ = body.Close()
}

// decodeSkippingNulls removes null object members before decoding so they
// leave the destination untouched.
func decodeSkippingNulls(body io.Reader, dst any) error {
	var tree any
	if err := decodeValue(body, &tree, true); err != nil {
		return err
	}
	data, err := json.Marshal(stripNulls(tree))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// decodeValue decodes exactly one JSON value from body. useNumber keeps
// numbers as json.Number so they re-encode without float rounding.
func decodeValue(body io.Reader, dst any, useNumber bool) error {
	dec := json.NewDecoder(body)
	if useNumber {
		dec.UseNumber()
	}
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if _, err := dec.Token(); !stderrors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

func stripNulls(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if val == nil {
				delete(t, k)
				continue
			}
			t[k] = stripNulls(val)
		}
	case []any:
		for i, val := range t {
			t[i] = stripNulls(val)
		}
	}
	return v
}

func decodeFailure(target string, err error) error {
	if stderrors.Is(err, io.EOF) {
		return errors.NewDecodeError(target, "empty body", err)
	}
	if stderrors.Is(err, errTrailingData) {
		return errors.NewDecodeError(target, "trailing data after JSON value", err)
	}
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		return errors.NewDecodeError(target, "body does not match the expected shape", err)
	}
	return errors.NewDecodeError(target, "malformed JSON", err)
}

func validateResult(rv reflect.Value) error {
	v := rv
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return validation.Struct(v.Addr().Interface())
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return fmt.Sprint(t)
}

package serialization

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// EncodeQuery converts an options struct into query parameters. Fields are
// mapped through their `query:"name"` tag; nil pointers and untagged fields
// are skipped, and `query:"name,omitempty"` also skips zero values. Slices
// add one parameter per element. A nil options value yields nil.
func EncodeQuery(opts any) url.Values {
	v := reflect.ValueOf(opts)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	values := url.Values{}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("query")
		if tag == "" || tag == "-" || !sf.IsExported() {
			continue
		}
		name, tagOpts, _ := strings.Cut(tag, ",")
		fv := v.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		if hasOption(tagOpts, "omitempty") && fv.IsZero() {
			continue
		}
		if fv.Kind() == reflect.Slice {
			for j := 0; j < fv.Len(); j++ {
				if s, ok := formatQueryValue(fv.Index(j)); ok {
					values.Add(name, s)
				}
			}
			continue
		}
		if s, ok := formatQueryValue(fv); ok {
			values.Set(name, s)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

var durationType = reflect.TypeFor[time.Duration]()

func formatQueryValue(v reflect.Value) (string, bool) {
	if v.Type() == durationType {
		return strconv.FormatFloat(time.Duration(v.Int()).Seconds(), 'f', -1, 64), true
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true
	}
	return "", false
}

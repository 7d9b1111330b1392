package serialization

import (
	"reflect"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// ReservedFields are the server-assigned attributes whose wire names are
// fixed.
var ReservedFields = []string{"_key", "_id", "_rev", "_from", "_to", "_oldRev"}

// IsReserved reports whether name is a reserved attribute name.
func IsReserved(name string) bool {
	return slices.Contains(ReservedFields, name)
}

// LowerCamel converts a Go identifier to lower camel case:
// NumberOfShards -> numberOfShards, ID -> id, URLPath -> urlPath.
func LowerCamel(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	for i := range runes {
		if !unicode.IsUpper(runes[i]) {
			break
		}
		// Keep the last capital of an initialism when a lower-case letter follows.
		if i > 0 && i+1 < len(runes) && !unicode.IsUpper(runes[i+1]) {
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// field describes one encodable struct field.
type field struct {
	index     []int
	goName    string
	tagName   string
	omitEmpty bool
	depth     int
}

// wireName resolves the JSON name of f under p.
func (f *field) wireName(p Policy) string {
	if f.tagName != "" {
		return f.tagName
	}
	if p.CamelCase {
		return LowerCamel(f.goName)
	}
	return f.goName
}

var fieldCache sync.Map // map[reflect.Type][]field

// cachedFields returns the encodable fields of struct type t, including the
// promoted fields of untagged embedded structs.
func cachedFields(t reflect.Type) []field {
	if f, ok := fieldCache.Load(t); ok {
		return f.([]field)
	}
	f, _ := fieldCache.LoadOrStore(t, typeFields(t, nil, 0))
	return f.([]field)
}

func typeFields(t reflect.Type, parent []int, depth int) []field {
	var fields []field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		index := make([]int, len(parent)+1)
		copy(index, parent)
		index[len(parent)] = i

		if sf.Anonymous && name == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				fields = append(fields, typeFields(ft, index, depth+1)...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if !validTagName(name) {
			name = ""
		}
		fields = append(fields, field{
			index:     index,
			goName:    sf.Name,
			tagName:   name,
			omitEmpty: hasOption(opts, "omitempty") || hasOption(opts, "omitzero"),
			depth:     depth,
		})
	}
	return fields
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

func validTagName(name string) bool {
	if name == "" || !utf8.ValidString(name) {
		return false
	}
	for _, r := range name {
		if strings.ContainsRune(`"\`, r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

package serialization

import "fmt"

// ContentTypeJSON is the content type of every encoded body.
const ContentTypeJSON = "application/json"

// Policy selects the naming and null handling for one encode or decode call.
// The zero value writes Go field names and emits nulls.
type Policy struct {
	// CamelCase writes untagged fields in lower camel case.
	CamelCase bool
	// OmitNulls drops nil fields on encode, and on decode keeps the
	// destination's existing value where the wire value is null.
	OmitNulls bool
}

// Predefined policies.
var (
	DefaultPolicy            = Policy{}
	CamelCasePolicy          = Policy{CamelCase: true}
	OmitNullsPolicy          = Policy{OmitNulls: true}
	CamelCaseOmitNullsPolicy = Policy{CamelCase: true, OmitNulls: true}
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	return fmt.Sprintf("camelCase=%t omitNulls=%t", p.CamelCase, p.OmitNulls)
}

// Content is an encoded request body.
type Content struct {
	Data        []byte
	ContentType string
}

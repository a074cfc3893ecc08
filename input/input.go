package input

import "net/url"

// Input is the fully resolved description of one outbound request:
// everything the request builder needs, with nothing left to interpret.
type Input struct {
	Method     Method
	URL        *url.URL
	Parameters []Field
	Header     Header
	Body       Body
}

type Method string

// Header carries the user-supplied header fields in input order, plus the
// names to strip from the request after default headers are injected.
type Header struct {
	Fields []Field
	Unset  []string
}

type BodyType int

const (
	EmptyBody BodyType = iota
	JSONBody
	FormBody
	MultipartBody
	RawBody
)

// Body is the single body of a request. Fields keeps input order so that
// JSON members and multipart parts are transmitted in the order the user
// wrote them. Raw is used only when BodyType == RawBody.
type Body struct {
	BodyType BodyType
	Fields   []Field
	Raw      []byte
}

type FieldKind int

const (
	// StringField carries its value verbatim.
	StringField FieldKind = iota
	// JSONLiteralField carries a raw JSON literal such as "true" or "[1, 2]".
	JSONLiteralField
	// FileField carries a filesystem path. The file is read when the body
	// is built, not at parse time.
	FileField
)

type Field struct {
	Name  string
	Value string
	Kind  FieldKind
}

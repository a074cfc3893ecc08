package input

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"regexp"
	"strings"
)

var (
	reMethod          = regexp.MustCompile(`^[a-zA-Z]+$`)
	reHeaderFieldName = regexp.MustCompile("^[-!#$%&'*+.^_|~a-zA-Z0-9]+$")
	emptyMethod       = Method("")
)

type itemType int

const (
	unknownItem itemType = iota
	headerItem
	headerUnsetItem
	emptyHeaderItem
	urlParameterItem
	dataFieldItem
	jsonFieldItem
	fileFieldItem
)

// ParseArgs interprets the positional arguments (an optional METHOD, the
// URL, and any number of request items) plus the redirected stdin into an
// Input. Request items keep their input order throughout.
func ParseArgs(args []string, stdin io.Reader, options *Options) (*Input, error) {
	var argMethod string
	var argURL string
	var argItems []string
	switch len(args) {
	case 0:
		return nil, newUsageError("URL is required")
	case 1:
		argURL = args[0]
	default:
		if reMethod.MatchString(args[0]) {
			argMethod = args[0]
			argURL = args[1]
			argItems = args[2:]
		} else {
			argURL = args[0]
			argItems = args[1:]
		}
	}

	in := Input{}

	u, err := ParseURL(argURL, options.DefaultScheme)
	if err != nil {
		return nil, err
	}
	in.URL = u

	preferredBodyType, err := determinePreferredBodyType(options)
	if err != nil {
		return nil, err
	}

	for _, arg := range argItems {
		if err := parseItem(arg, preferredBodyType, &in); err != nil {
			return nil, err
		}
	}

	if options.ReadStdin {
		if in.Body.BodyType != EmptyBody {
			return nil, newConflictError("request body (from stdin) and request items (key=value) cannot be mixed")
		}
		raw, err := ioutil.ReadAll(stdin)
		if err != nil {
			return nil, newIOError("reading stdin: %s", err)
		}
		in.Body.BodyType = RawBody
		in.Body.Raw = raw
	}

	if argMethod != "" {
		method, err := parseMethod(argMethod)
		if err != nil {
			return nil, err
		}
		in.Method = method
	} else {
		in.Method = guessMethod(&in)
	}

	return &in, nil
}

func determinePreferredBodyType(options *Options) (BodyType, error) {
	if options.JSON && (options.Form || options.Multipart) {
		return EmptyBody, newUsageError("you cannot specify both of --json and --form/--multipart")
	}
	if options.Multipart {
		return MultipartBody, nil
	}
	if options.Form {
		return FormBody, nil
	}
	return JSONBody, nil
}

func parseMethod(s string) (Method, error) {
	if !reMethod.MatchString(s) {
		return emptyMethod, newUsageError("METHOD must consist of alphabets: " + s)
	}
	return Method(strings.ToUpper(s)), nil
}

func guessMethod(in *Input) Method {
	if in.Body.BodyType == EmptyBody {
		return Method("GET")
	}
	return Method("POST")
}

func parseItem(s string, preferredBodyType BodyType, in *Input) error {
	itemType, name, value := splitItem(s)
	if itemType == unknownItem {
		return newParseError("unknown request item: %s", s)
	}
	if name == "" {
		return newParseError("request item has an empty key: %s", s)
	}
	switch itemType {
	case dataFieldItem:
		in.Body.BodyType = preferredBodyType
		in.Body.Fields = append(in.Body.Fields, Field{Name: name, Value: value, Kind: StringField})
	case jsonFieldItem:
		if preferredBodyType != JSONBody {
			return newTypeError("JSON field '%s' cannot be used in a non-JSON body", name)
		}
		if !json.Valid([]byte(value)) {
			return newJSONError("invalid JSON at '%s': %s", name, value)
		}
		in.Body.BodyType = JSONBody
		in.Body.Fields = append(in.Body.Fields, Field{Name: name, Value: value, Kind: JSONLiteralField})
	case fileFieldItem:
		if preferredBodyType != MultipartBody {
			return newTypeError("file field '%s' cannot be used outside a multipart body (perhaps you meant --multipart?)", name)
		}
		in.Body.BodyType = MultipartBody
		in.Body.Fields = append(in.Body.Fields, Field{Name: name, Value: value, Kind: FileField})
	case urlParameterItem:
		in.Parameters = append(in.Parameters, Field{Name: name, Value: value})
	case headerItem:
		if !isValidHeaderFieldName(name) {
			return newParseError("invalid header field name: %s", name)
		}
		in.Header.Fields = append(in.Header.Fields, Field{Name: name, Value: value})
	case emptyHeaderItem:
		if !isValidHeaderFieldName(name) {
			return newParseError("invalid header field name: %s", name)
		}
		in.Header.Fields = append(in.Header.Fields, Field{Name: name, Value: ""})
	case headerUnsetItem:
		if !isValidHeaderFieldName(name) {
			return newParseError("invalid header field name: %s", name)
		}
		in.Header.Unset = append(in.Header.Unset, name)
	}
	return nil
}

// splitItem scans left to right and splits at the first separator it finds.
// Two-character separators win over their one-character prefixes, so "x:=1"
// is a JSON field, never a header named "x". A trailing bare ":" marks a
// header to unset and a trailing ";" sets a header to the empty value.
// Everything after the split point belongs to the value verbatim.
func splitItem(s string) (itemType, string, string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ':':
			if i+1 < len(s) && s[i+1] == '=' {
				return jsonFieldItem, s[:i], s[i+2:]
			}
			if i == len(s)-1 {
				return headerUnsetItem, s[:i], ""
			}
			return headerItem, s[:i], s[i+1:]
		case '=':
			if i+1 < len(s) && s[i+1] == '=' {
				return urlParameterItem, s[:i], s[i+2:]
			}
			return dataFieldItem, s[:i], s[i+1:]
		case '@':
			return fileFieldItem, s[:i], s[i+1:]
		case ';':
			if i == len(s)-1 {
				return emptyHeaderItem, s[:i], ""
			}
		}
	}
	return unknownItem, "", ""
}

func isValidHeaderFieldName(s string) bool {
	return reHeaderFieldName.MatchString(s)
}

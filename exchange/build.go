package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/hq-cli/hq/input"
	"github.com/hq-cli/hq/version"
	"github.com/pkg/errors"
)

const defaultAcceptEncoding = "gzip, deflate, br"

// BuildHTTPRequest assembles the outbound request. Header resolution runs
// in four passes: default headers, then the body's content type and the
// Authorization header, then the user-supplied header fields in input order
// (a later field overrides an earlier one of the same name), and finally
// the subtractive pass that strips every name given with the unset syntax.
// Unsetting works on the defaults too, so "Host:" cancels the injected
// Host header.
func BuildHTTPRequest(in *input.Input, options *Options) (*http.Request, error) {
	u := buildURL(in)

	bodyTuple, err := buildHTTPBody(in)
	if err != nil {
		return nil, err
	}

	header := make(http.Header)
	if in.Body.BodyType == input.JSONBody || in.Body.BodyType == input.RawBody {
		header.Set("Accept", "application/json, */*")
	} else {
		header.Set("Accept", "*/*")
	}
	header.Set("Accept-Encoding", defaultAcceptEncoding)
	header.Set("Connection", "keep-alive")
	header.Set("Host", u.Host)
	header.Set("User-Agent", fmt.Sprintf("hq/%s", version.Current()))
	if bodyTuple.contentType != "" {
		header.Set("Content-Type", bodyTuple.contentType)
	}

	auth, err := ResolveAuth(&options.Auth)
	if err != nil {
		return nil, err
	}
	if auth != nil {
		header.Set("Authorization", auth.HeaderValue())
	}

	for _, field := range in.Header.Fields {
		header.Set(field.Name, field.Value)
	}
	for _, name := range in.Header.Unset {
		header.Del(name)
	}

	r := http.Request{
		Method:        string(in.Method),
		URL:           u,
		Header:        header,
		Host:          header.Get("Host"),
		Body:          bodyTuple.body,
		GetBody:       bodyTuple.getBody,
		ContentLength: bodyTuple.contentLength,
	}
	return &r, nil
}

// buildURL appends the URL parameters to whatever query string the URL
// already carries, in input order, without re-sorting.
func buildURL(in *input.Input) *url.URL {
	var query strings.Builder
	query.WriteString(in.URL.RawQuery)
	for _, field := range in.Parameters {
		if query.Len() > 0 {
			query.WriteByte('&')
		}
		query.WriteString(url.QueryEscape(field.Name))
		query.WriteByte('=')
		query.WriteString(url.QueryEscape(field.Value))
	}

	u := *in.URL
	u.RawQuery = query.String()
	return &u
}

type bodyTuple struct {
	body          io.ReadCloser
	getBody       func() (io.ReadCloser, error)
	contentLength int64
	contentType   string
}

// bufferedBodyTuple wraps fully buffered content. GetBody is always
// populated so the body can be printed and sent from the same request.
func bufferedBodyTuple(content []byte, contentType string) bodyTuple {
	getBody := func() (io.ReadCloser, error) {
		return ioutil.NopCloser(bytes.NewReader(content)), nil
	}
	body, _ := getBody()
	return bodyTuple{
		body:          body,
		getBody:       getBody,
		contentLength: int64(len(content)),
		contentType:   contentType,
	}
}

func buildHTTPBody(in *input.Input) (bodyTuple, error) {
	switch in.Body.BodyType {
	case input.EmptyBody:
		return bodyTuple{}, nil
	case input.JSONBody:
		return buildJSONBody(in)
	case input.FormBody:
		return buildFormBody(in)
	case input.MultipartBody:
		return buildMultipartBody(in)
	case input.RawBody:
		return bufferedBodyTuple(in.Body.Raw, "application/json"), nil
	default:
		return bodyTuple{}, errors.Errorf("unknown body type: %v", in.Body.BodyType)
	}
}

// buildJSONBody serializes the body fields as a JSON object whose member
// order follows input order. A duplicate key keeps its first position but
// takes its last value. String fields become JSON strings; JSON literal
// fields are embedded as the type they parse to.
func buildJSONBody(in *input.Input) (bodyTuple, error) {
	var order []string
	values := map[string]json.RawMessage{}
	for _, field := range in.Body.Fields {
		var value json.RawMessage
		switch field.Kind {
		case input.JSONLiteralField:
			value = json.RawMessage(field.Value)
		case input.StringField:
			value, _ = json.Marshal(field.Value)
		default:
			return bodyTuple{}, errors.Errorf("field '%s' cannot appear in a JSON body", field.Name)
		}
		if _, seen := values[field.Name]; !seen {
			order = append(order, field.Name)
		}
		values[field.Name] = value
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(name)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(values[name])
	}
	buf.WriteByte('}')
	return bufferedBodyTuple(buf.Bytes(), "application/json"), nil
}

// buildFormBody URL-encodes the fields in input order. Duplicate keys are
// all transmitted, as standard form encoding does.
func buildFormBody(in *input.Input) (bodyTuple, error) {
	var form strings.Builder
	for _, field := range in.Body.Fields {
		if field.Kind != input.StringField {
			return bodyTuple{}, errors.Errorf("field '%s' cannot appear in a form body", field.Name)
		}
		if form.Len() > 0 {
			form.WriteByte('&')
		}
		form.WriteString(url.QueryEscape(field.Name))
		form.WriteByte('=')
		form.WriteString(url.QueryEscape(field.Value))
	}
	return bufferedBodyTuple([]byte(form.String()), "application/x-www-form-urlencoded; charset=utf-8"), nil
}

// buildMultipartBody renders the parts in input order. File fields are read
// here, at build time, so an unreadable path fails the whole request before
// anything is sent.
func buildMultipartBody(in *input.Input) (bodyTuple, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, field := range in.Body.Fields {
		switch field.Kind {
		case input.FileField:
			part, err := writer.CreateFormFile(field.Name, filepath.Base(field.Value))
			if err != nil {
				return bodyTuple{}, errors.Wrapf(err, "creating multipart part of '%s'", field.Name)
			}
			content, err := ioutil.ReadFile(field.Value)
			if err != nil {
				return bodyTuple{}, errors.Wrapf(err, "reading file of '%s'", field.Name)
			}
			if _, err := part.Write(content); err != nil {
				return bodyTuple{}, errors.Wrapf(err, "writing multipart part of '%s'", field.Name)
			}
		case input.StringField:
			if err := writer.WriteField(field.Name, field.Value); err != nil {
				return bodyTuple{}, errors.Wrapf(err, "writing multipart field '%s'", field.Name)
			}
		default:
			return bodyTuple{}, errors.Errorf("field '%s' cannot appear in a multipart body", field.Name)
		}
	}
	if err := writer.Close(); err != nil {
		return bodyTuple{}, errors.Wrap(err, "finishing multipart body")
	}
	return bufferedBodyTuple(buf.Bytes(), writer.FormDataContentType()), nil
}

package input

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestParseURL(t *testing.T) {
	testCases := []struct {
		title         string
		input         string
		defaultScheme string
		expected      url.URL
	}{
		{
			title: "Typical case",
			input: "http://example.com/hello/world",
			expected: url.URL{
				Scheme: "http",
				Host:   "example.com",
				Path:   "/hello/world",
			},
		},
		{
			title: "No scheme",
			input: "example.com/hello/world",
			expected: url.URL{
				Scheme: "http",
				Host:   "example.com",
				Path:   "/hello/world",
			},
		},
		{
			title:         "No scheme with non-default scheme",
			input:         "example.com/hello",
			defaultScheme: "https",
			expected: url.URL{
				Scheme: "https",
				Host:   "example.com",
				Path:   "/hello",
			},
		},
		{
			title: "Scheme is kept even when a default is set",
			input: "https://example.com",
			expected: url.URL{
				Scheme: "https",
				Host:   "example.com",
				Path:   "/",
			},
		},
		{
			title: "No host and port",
			input: "/hello/world",
			expected: url.URL{
				Scheme: "http",
				Host:   "localhost",
				Path:   "/hello/world",
			},
		},
		{
			title: "No host and port but has colon",
			input: ":/foo",
			expected: url.URL{
				Scheme: "http",
				Host:   "localhost",
				Path:   "/foo",
			},
		},
		{
			title: "Only colon",
			input: ":",
			expected: url.URL{
				Scheme: "http",
				Host:   "localhost",
				Path:   "/",
			},
		},
		{
			title: "No host but has port",
			input: ":8080/hello/world",
			expected: url.URL{
				Scheme: "http",
				Host:   "localhost:8080",
				Path:   "/hello/world",
			},
		},
		{
			title: "Has query parameters",
			input: "http://example.com/?q=hello&lang=ja",
			expected: url.URL{
				Scheme:   "http",
				Host:     "example.com",
				Path:     "/",
				RawQuery: "q=hello&lang=ja",
			},
		},
		{
			title: "No path",
			input: "https://example.com",
			expected: url.URL{
				Scheme: "https",
				Host:   "example.com",
				Path:   "/",
			},
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			u, err := ParseURL(tt.input, tt.defaultScheme)
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			if !reflect.DeepEqual(*u, tt.expected) {
				t.Errorf("unexpected result: expected=%+v, actual=%+v", tt.expected, *u)
			}
		})
	}
}

func TestParseURL_Errors(t *testing.T) {
	testCases := []struct {
		title string
		input string
	}{
		{
			title: "Unparsable URL",
			input: "http://example.com/%zz",
		},
		{
			title: "No host",
			input: "http:///hello",
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			_, err := ParseURL(tt.input, "http")
			if err == nil {
				t.Fatal("ParseURL unexpectedly succeeded")
			}
			if _, ok := errors.Cause(err).(*URLError); !ok {
				t.Errorf("unexpected error type: expected=*URLError, actual=%T", errors.Cause(err))
			}
		})
	}
}

package exchange

import (
	"bytes"
	"io/ioutil"
	"net/http"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

func makeResponse(encoding string, body []byte) *http.Response {
	header := http.Header{}
	if encoding != "" {
		header.Set("Content-Encoding", encoding)
	}
	return &http.Response{
		Header:        header,
		Body:          ioutil.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}

func TestDecodeBody(t *testing.T) {
	const message = "Hello, compressed world!"

	gzipped := func() []byte {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		w.Write([]byte(message))
		w.Close()
		return buf.Bytes()
	}()
	deflated := func() []byte {
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		w.Write([]byte(message))
		w.Close()
		return buf.Bytes()
	}()
	brotlied := func() []byte {
		var buf bytes.Buffer
		w := brotli.NewWriter(&buf)
		w.Write([]byte(message))
		w.Close()
		return buf.Bytes()
	}()

	testCases := []struct {
		title    string
		encoding string
		body     []byte
		expected string
	}{
		{
			title:    "No encoding",
			encoding: "",
			body:     []byte(message),
			expected: message,
		},
		{
			title:    "Identity",
			encoding: "identity",
			body:     []byte(message),
			expected: message,
		},
		{
			title:    "Gzip",
			encoding: "gzip",
			body:     gzipped,
			expected: message,
		},
		{
			title:    "Deflate",
			encoding: "deflate",
			body:     deflated,
			expected: message,
		},
		{
			title:    "Brotli",
			encoding: "br",
			body:     brotlied,
			expected: message,
		},
		{
			title:    "Unknown encoding passes through",
			encoding: "snappy",
			body:     []byte(message),
			expected: message,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			// Setup
			resp := makeResponse(tt.encoding, tt.body)

			// Exercise
			if err := DecodeBody(resp); err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			defer resp.Body.Close()

			// Verify
			actual, err := ioutil.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("failed to read decoded body: %v", err)
			}
			if string(actual) != tt.expected {
				t.Errorf("unexpected body: expected=%s, actual=%s", tt.expected, actual)
			}
		})
	}
}

func TestDecodeBody_ResetsContentLength(t *testing.T) {
	// Setup
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Write([]byte("hello"))
	w.Close()
	resp := makeResponse("gzip", buf.Bytes())

	// Exercise
	if err := DecodeBody(resp); err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	defer resp.Body.Close()

	// Verify
	if resp.ContentLength != -1 {
		t.Errorf("unexpected content length: expected=-1, actual=%d", resp.ContentLength)
	}
}

package exchange

import (
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// DecodeBody replaces the response body with a reader that reverses the
// Content-Encoding. The request builder sets Accept-Encoding explicitly,
// which disables net/http's transparent decompression, so it happens here.
// Unknown encodings pass through verbatim.
func DecodeBody(resp *http.Response) error {
	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	switch encoding {
	case "", "identity":
		return nil
	case "gzip":
		reader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return errors.Wrap(err, "decoding gzip response body")
		}
		resp.Body = &decodedBody{reader: reader, underlying: resp.Body}
	case "deflate":
		reader, err := zlib.NewReader(resp.Body)
		if err != nil {
			return errors.Wrap(err, "decoding deflate response body")
		}
		resp.Body = &decodedBody{reader: reader, underlying: resp.Body}
	case "br":
		resp.Body = &decodedBody{reader: brotli.NewReader(resp.Body), underlying: resp.Body}
	default:
		return nil
	}

	// The decoded length is unknown.
	resp.ContentLength = -1
	return nil
}

type decodedBody struct {
	reader     io.Reader
	underlying io.ReadCloser
}

func (b *decodedBody) Read(p []byte) (int, error) {
	return b.reader.Read(p)
}

func (b *decodedBody) Close() error {
	if closer, ok := b.reader.(io.Closer); ok {
		closer.Close()
	}
	return b.underlying.Close()
}

package output

import (
	"io"
	"net/http"
)

type Printer interface {
	PrintStatusLine(proto string, status string, statusCode int) error
	PrintRequestLine(request *http.Request) error
	PrintHeader(header http.Header) error
	PrintBody(body io.Reader, contentType string) error
}

// NewPrinter returns the printer matching the output options: pretty when
// formatting or coloring is enabled, plain otherwise.
func NewPrinter(writer io.Writer, options *Options) Printer {
	if !options.EnableFormat && !options.EnableColor {
		return NewPlainPrinter(writer)
	}
	return NewPrettyPrinter(PrettyPrinterConfig{
		Writer:      writer,
		EnableColor: options.EnableColor,
		FormatJSON:  options.EnableFormat,
		Palette:     themePalette(options.Theme),
	})
}

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"mime"
	"net/http"
	"sort"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

type PrettyPrinter struct {
	writer     io.Writer
	plain      Printer
	aurora     aurora.Aurora
	formatJSON bool
	palette    *Palette
}

type PrettyPrinterConfig struct {
	Writer      io.Writer
	EnableColor bool
	FormatJSON  bool
	Palette     *Palette
}

type Palette struct {
	Header HeaderPalette
	Status StatusPalette
	JSON   JSONPalette
}

type HeaderPalette struct {
	Method         aurora.Color
	URL            aurora.Color
	Proto          aurora.Color
	FieldName      aurora.Color
	FieldValue     aurora.Color
	FieldSeparator aurora.Color
}

type StatusPalette struct {
	Info        aurora.Color
	Success     aurora.Color
	Redirect    aurora.Color
	ClientError aurora.Color
	ServerError aurora.Color
}

type JSONPalette struct {
	Key     aurora.Color
	String  aurora.Color
	Number  aurora.Color
	Boolean aurora.Color
	Null    aurora.Color
	Symbol  aurora.Color
}

var defaultPalette = Palette{
	Header: HeaderPalette{
		Method:         aurora.WhiteFg | aurora.BoldFm,
		URL:            aurora.CyanFg,
		Proto:          aurora.BlueFg,
		FieldName:      aurora.WhiteFg,
		FieldValue:     aurora.CyanFg,
		FieldSeparator: aurora.WhiteFg,
	},
	Status: StatusPalette{
		Info:        aurora.BlueFg,
		Success:     aurora.GreenFg | aurora.BoldFm,
		Redirect:    aurora.BrownFg | aurora.BoldFm,
		ClientError: aurora.RedFg | aurora.BoldFm,
		ServerError: aurora.RedFg | aurora.BoldFm,
	},
	JSON: JSONPalette{
		Key:     aurora.BlueFg,
		String:  aurora.BrownFg,
		Number:  aurora.CyanFg,
		Boolean: aurora.MagentaFg,
		Null:    aurora.WhiteFg,
		Symbol:  aurora.WhiteFg,
	},
}

var solarizedPalette = Palette{
	Header: HeaderPalette{
		Method:         aurora.GreenFg | aurora.BoldFm,
		URL:            aurora.BlueFg,
		Proto:          aurora.WhiteFg,
		FieldName:      aurora.BrownFg,
		FieldValue:     aurora.BlueFg,
		FieldSeparator: aurora.WhiteFg,
	},
	Status: StatusPalette{
		Info:        aurora.CyanFg,
		Success:     aurora.GreenFg,
		Redirect:    aurora.BrownFg,
		ClientError: aurora.RedFg,
		ServerError: aurora.MagentaFg,
	},
	JSON: JSONPalette{
		Key:     aurora.GreenFg,
		String:  aurora.CyanFg,
		Number:  aurora.BlueFg,
		Boolean: aurora.MagentaFg,
		Null:    aurora.BrownFg,
		Symbol:  aurora.WhiteFg,
	},
}

func themePalette(theme string) *Palette {
	if theme == "solarized" {
		return &solarizedPalette
	}
	return &defaultPalette
}

func NewPrettyPrinter(config PrettyPrinterConfig) Printer {
	palette := config.Palette
	if palette == nil {
		palette = &defaultPalette
	}
	return &PrettyPrinter{
		writer:     config.Writer,
		plain:      NewPlainPrinter(config.Writer),
		aurora:     aurora.NewAurora(config.EnableColor),
		formatJSON: config.FormatJSON,
		palette:    palette,
	}
}

func (p *PrettyPrinter) PrintStatusLine(proto string, status string, statusCode int) error {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.aurora.Colorize(proto, p.palette.Header.Proto),
		p.aurora.Colorize(status, p.statusColor(statusCode)))
	return nil
}

func (p *PrettyPrinter) statusColor(statusCode int) aurora.Color {
	switch {
	case statusCode < 200:
		return p.palette.Status.Info
	case statusCode < 300:
		return p.palette.Status.Success
	case statusCode < 400:
		return p.palette.Status.Redirect
	case statusCode < 500:
		return p.palette.Status.ClientError
	default:
		return p.palette.Status.ServerError
	}
}

func (p *PrettyPrinter) PrintRequestLine(request *http.Request) error {
	proto := request.Proto
	if proto == "" {
		proto = "HTTP/1.1"
	}
	fmt.Fprintf(p.writer, "%s %s %s\n",
		p.aurora.Colorize(request.Method, p.palette.Header.Method),
		p.aurora.Colorize(request.URL, p.palette.Header.URL),
		p.aurora.Colorize(proto, p.palette.Header.Proto))
	return nil
}

func (p *PrettyPrinter) PrintHeader(header http.Header) error {
	var names []string
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, value := range header[name] {
			fmt.Fprintf(p.writer, "%s%s %s\n",
				p.aurora.Colorize(name, p.palette.Header.FieldName),
				p.aurora.Colorize(":", p.palette.Header.FieldSeparator),
				p.aurora.Colorize(value, p.palette.Header.FieldValue))
		}
	}

	fmt.Fprintln(p.writer)
	return nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func (p *PrettyPrinter) PrintBody(body io.Reader, contentType string) error {
	if !p.formatJSON || !isJSON(contentType) {
		return p.plain.PrintBody(body, contentType)
	}

	content, err := ioutil.ReadAll(body)
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}
	return p.printJSON(content)
}

// printJSON re-indents a JSON document, preserving member order, which
// encoding/json's Unmarshal would lose. Anything that is not one complete
// JSON value is written out untouched.
func (p *PrettyPrinter) printJSON(content []byte) error {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		_, err := p.writer.Write(content)
		return err
	}

	var buf bytes.Buffer
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	if err := p.formatValue(decoder, &buf, 0); err != nil || decoder.More() {
		_, werr := p.writer.Write(content)
		return werr
	}
	buf.WriteByte('\n')
	_, err := p.writer.Write(buf.Bytes())
	return err
}

func (p *PrettyPrinter) formatValue(decoder *json.Decoder, buf *bytes.Buffer, depth int) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	return p.formatToken(decoder, buf, token, depth)
}

func (p *PrettyPrinter) formatToken(decoder *json.Decoder, buf *bytes.Buffer, token json.Token, depth int) error {
	switch token := token.(type) {
	case json.Delim:
		switch token {
		case '{':
			return p.formatObject(decoder, buf, depth)
		case '[':
			return p.formatArray(decoder, buf, depth)
		default:
			return errors.Errorf("unexpected token: %v", token)
		}
	case string:
		p.writeColored(buf, encodeJSONString(token), p.palette.JSON.String)
	case json.Number:
		p.writeColored(buf, token.String(), p.palette.JSON.Number)
	case bool:
		if token {
			p.writeColored(buf, "true", p.palette.JSON.Boolean)
		} else {
			p.writeColored(buf, "false", p.palette.JSON.Boolean)
		}
	case nil:
		p.writeColored(buf, "null", p.palette.JSON.Null)
	}
	return nil
}

func (p *PrettyPrinter) formatObject(decoder *json.Decoder, buf *bytes.Buffer, depth int) error {
	if !decoder.More() {
		if _, err := decoder.Token(); err != nil {
			return err
		}
		p.writeColored(buf, "{}", p.palette.JSON.Symbol)
		return nil
	}

	p.writeColored(buf, "{", p.palette.JSON.Symbol)
	buf.WriteByte('\n')
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		key, ok := token.(string)
		if !ok {
			return errors.Errorf("unexpected object key: %v", token)
		}
		p.writeIndent(buf, depth+1)
		p.writeColored(buf, encodeJSONString(key), p.palette.JSON.Key)
		p.writeColored(buf, ":", p.palette.JSON.Symbol)
		buf.WriteByte(' ')
		if err := p.formatValue(decoder, buf, depth+1); err != nil {
			return err
		}
		if decoder.More() {
			p.writeColored(buf, ",", p.palette.JSON.Symbol)
		}
		buf.WriteByte('\n')
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}
	p.writeIndent(buf, depth)
	p.writeColored(buf, "}", p.palette.JSON.Symbol)
	return nil
}

func (p *PrettyPrinter) formatArray(decoder *json.Decoder, buf *bytes.Buffer, depth int) error {
	if !decoder.More() {
		if _, err := decoder.Token(); err != nil {
			return err
		}
		p.writeColored(buf, "[]", p.palette.JSON.Symbol)
		return nil
	}

	p.writeColored(buf, "[", p.palette.JSON.Symbol)
	buf.WriteByte('\n')
	for decoder.More() {
		p.writeIndent(buf, depth+1)
		if err := p.formatValue(decoder, buf, depth+1); err != nil {
			return err
		}
		if decoder.More() {
			p.writeColored(buf, ",", p.palette.JSON.Symbol)
		}
		buf.WriteByte('\n')
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}
	p.writeIndent(buf, depth)
	p.writeColored(buf, "]", p.palette.JSON.Symbol)
	return nil
}

func (p *PrettyPrinter) writeColored(buf *bytes.Buffer, value interface{}, color aurora.Color) {
	fmt.Fprintf(buf, "%s", p.aurora.Colorize(value, color))
}

func (p *PrettyPrinter) writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("    ")
	}
}

// encodeJSONString renders s as a JSON string literal without escaping the
// HTML characters, so unicode escapes in the input come out as the
// characters they represent.
func encodeJSONString(s string) string {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		// A string cannot fail to encode
		return s
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

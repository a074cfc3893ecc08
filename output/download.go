package output

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/VividCortex/ewma"
	"github.com/acarl005/stripansi"
	"github.com/pkg/errors"
)

type FileWriter struct {
	fullPath     string
	progress     io.Writer
	showProgress bool
}

// NewFileWriter decides the download destination: --output wins, then the
// filename suggested by Content-Disposition, then the last element of the
// URL path, then "index.html". Unless --overwrite is set, an existing name
// gets a numeric suffix instead of being clobbered. The progress line is
// rendered to progress only when it is an interactive terminal; the final
// summary is written there regardless.
func NewFileWriter(u *url.URL, header http.Header, options *Options, progress io.Writer, progressIsTerminal bool) *FileWriter {
	fullPath := options.OutputFile
	if fullPath == "" {
		fullPath = suggestedFilename(u, header)
	}
	if !options.Overwrite {
		fullPath = makeNonOverlappingFilename(fullPath)
	}

	return &FileWriter{
		fullPath:     fullPath,
		progress:     progress,
		showProgress: progressIsTerminal,
	}
}

func suggestedFilename(u *url.URL, header http.Header) string {
	if disposition := header.Get("Content-Disposition"); disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			// Strip any directory part so the header cannot escape the
			// working directory.
			name := filepath.Base(params["filename"])
			if name != "" && name != "." && name != ".." && name != string(filepath.Separator) {
				return name
			}
		}
	}
	if name := path.Base(u.Path); name != "" && name != "." && name != "/" {
		return name
	}
	return "index.html"
}

func makeNonOverlappingFilename(fullPath string) string {
	_, err := os.Stat(fullPath)
	if err == nil {
		re := regexp.MustCompile(`\.(\d+)$`)
		newPath := re.ReplaceAllStringFunc(fullPath, func(index string) string {
			i, err := strconv.Atoi(strings.TrimPrefix(index, "."))
			if err != nil {
				panic(err)
			}
			i++
			return fmt.Sprintf(".%d", i)
		})
		if fullPath == newPath {
			fullPath = fmt.Sprintf("%s.%d", fullPath, 1)
		} else {
			fullPath = newPath
		}
		fullPath = makeNonOverlappingFilename(fullPath)
	}
	return fullPath
}

// Download streams the response body into the destination file. The body
// is consumed completely; nothing of it is printed to stdout.
func (f *FileWriter) Download(resp *http.Response) error {
	file, err := os.Create(f.fullPath)
	if err != nil {
		return errors.Wrapf(err, "creating %s", f.fullPath)
	}
	defer file.Close()

	meter := newProgressMeter(f.progress, f.showProgress, resp.ContentLength)
	buf := make([]byte, 32*1024)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := file.Write(buf[:n]); werr != nil {
				return errors.Wrapf(werr, "writing %s", f.fullPath)
			}
			meter.advance(int64(n))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "reading response body")
		}
	}
	meter.finish(f.Filename())
	return nil
}

func (f *FileWriter) Filename() string {
	return filepath.Base(f.fullPath)
}

const progressInterval = 100 * time.Millisecond

type progressMeter struct {
	writer     io.Writer
	render     bool
	total      int64
	written    int64
	speed      ewma.MovingAverage
	started    time.Time
	lastSample time.Time
	lastRender time.Time
	lastWidth  int
}

func newProgressMeter(writer io.Writer, render bool, total int64) *progressMeter {
	now := time.Now()
	return &progressMeter{
		writer:     writer,
		render:     render && writer != nil,
		total:      total,
		speed:      ewma.NewMovingAverage(),
		started:    now,
		lastSample: now,
	}
}

func (m *progressMeter) advance(n int64) {
	m.written += n
	now := time.Now()
	if elapsed := now.Sub(m.lastSample); elapsed > 0 {
		m.speed.Add(float64(n) / elapsed.Seconds())
		m.lastSample = now
	}
	if !m.render || now.Sub(m.lastRender) < progressInterval {
		return
	}
	m.lastRender = now

	var line string
	if m.total > 0 {
		line = fmt.Sprintf("Downloading %3d%%  %s  %s/s",
			100*m.written/m.total,
			bytefmt.ByteSize(uint64(m.written)),
			bytefmt.ByteSize(uint64(m.speed.Value())))
	} else {
		line = fmt.Sprintf("Downloading  %s  %s/s",
			bytefmt.ByteSize(uint64(m.written)),
			bytefmt.ByteSize(uint64(m.speed.Value())))
	}
	m.repaint(line)
}

// repaint redraws the progress line in place, padding with spaces when the
// new line is shorter than the previous one. The width is measured on the
// escape-free text so coloring the line would not break the padding.
func (m *progressMeter) repaint(line string) {
	width := len(stripansi.Strip(line))
	padding := ""
	if width < m.lastWidth {
		padding = strings.Repeat(" ", m.lastWidth-width)
	}
	fmt.Fprintf(m.writer, "\r%s%s", line, padding)
	m.lastWidth = width
}

func (m *progressMeter) finish(filename string) {
	if m.writer == nil {
		return
	}
	elapsed := time.Since(m.started).Seconds()
	average := float64(m.written)
	if elapsed > 0 {
		average = float64(m.written) / elapsed
	}
	summary := fmt.Sprintf("Done. %s in %.1fs (%s/s) -> %s",
		bytefmt.ByteSize(uint64(m.written)), elapsed, bytefmt.ByteSize(uint64(average)), filename)
	if m.render {
		m.repaint(summary)
		fmt.Fprintln(m.writer)
	} else {
		fmt.Fprintln(m.writer, summary)
	}
}

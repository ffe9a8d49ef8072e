package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/quick"
	"github.com/fatih/color"
	"github.com/niels/tinyhttp/pkg/response"
)

// Chroma settings used for bodies
const (
	HighlightFormatter = "terminal16m"
	HighlightStyle     = "monokai"
)

// Formatter prints server replies for the terminal
type Formatter struct {
	useColor bool
	raw      bool
	writer   io.Writer

	status *color.Color
	ok     *color.Color
	warn   *color.Color
	fail   *color.Color
	key    *color.Color
}

// NewFormatter creates a formatter that writes to stdout
func NewFormatter(useColor bool) *Formatter {
	f := &Formatter{
		useColor: useColor,
		writer:   os.Stdout,
		status:   color.New(color.FgBlue, color.Bold),
		ok:       color.New(color.FgGreen, color.Bold),
		warn:     color.New(color.FgYellow, color.Bold),
		fail:     color.New(color.FgRed, color.Bold),
		key:      color.New(color.FgCyan),
	}

	for _, c := range []*color.Color{f.status, f.ok, f.warn, f.fail, f.key} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// WithWriter sets the writer output goes to
func (f *Formatter) WithWriter(writer io.Writer) *Formatter {
	f.writer = writer
	return f
}

// WithRaw makes Print write replies byte for byte
func (f *Formatter) WithRaw(raw bool) *Formatter {
	f.raw = raw
	return f
}

// Print writes a reply. Replies that do not parse are written unchanged.
func (f *Formatter) Print(reply string) error {
	if f.raw {
		_, err := io.WriteString(f.writer, reply)
		return err
	}

	resp, err := response.Parse(reply)
	if err != nil {
		_, werr := io.WriteString(f.writer, reply)
		return werr
	}

	if _, err := io.WriteString(f.writer, f.FormatHead(resp)); err != nil {
		return err
	}
	if resp.Body == "" {
		return nil
	}
	return f.HighlightBody(resp.Body, resp.ContentType())
}

// FormatHead renders the status line and the headers in sorted order,
// followed by a blank line
func (f *Formatter) FormatHead(resp *response.Response) string {
	var sb strings.Builder

	sb.WriteString(f.status.Sprint(resp.Version))
	sb.WriteString(" ")
	sb.WriteString(f.statusColor(resp.StatusCode).Sprintf("%s %s", resp.StatusCode, resp.StatusText))
	sb.WriteString("\n")

	keys := make([]string, 0, len(resp.Header))
	for k := range resp.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("%s: %s\n", f.key.Sprint(k), resp.Header[k]))
	}
	sb.WriteString("\n")

	return sb.String()
}

// HighlightBody writes the body, highlighted by content type when color is on
func (f *Formatter) HighlightBody(body, contentType string) error {
	language := LexerFor(contentType)
	if language == "json" {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, []byte(body), "", "  "); err == nil {
			body = pretty.String()
		}
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}

	if !f.useColor || language == "" {
		_, err := io.WriteString(f.writer, body)
		return err
	}

	if err := quick.Highlight(f.writer, body, language, HighlightFormatter, HighlightStyle); err != nil {
		_, werr := io.WriteString(f.writer, body)
		return werr
	}
	return nil
}

func (f *Formatter) statusColor(code string) *color.Color {
	switch {
	case strings.HasPrefix(code, "2"):
		return f.ok
	case strings.HasPrefix(code, "4"):
		return f.warn
	case strings.HasPrefix(code, "5"):
		return f.fail
	default:
		return f.status
	}
}

// LexerFor maps a Content-Type to a chroma lexer name, or "" for plain text
func LexerFor(contentType string) string {
	mediaType, _, _ := strings.Cut(strings.ToLower(contentType), ";")
	mediaType = strings.TrimSpace(mediaType)

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return "json"
	case mediaType == "text/html":
		return "html"
	case mediaType == "text/css":
		return "css"
	case mediaType == "application/javascript" || mediaType == "text/javascript":
		return "javascript"
	case mediaType == "application/xml" || mediaType == "text/xml":
		return "xml"
	default:
		return ""
	}
}

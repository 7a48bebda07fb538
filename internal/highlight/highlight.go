// Package highlight renders response bodies as tview color-tagged text.
package highlight

import (
	"bytes"
	"encoding/json"
	"mime"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rivo/tview"
)

// Highlighter colors text with a fixed chroma style.
type Highlighter struct {
	style   *chroma.Style
	enabled bool
}

// New returns a highlighter for the named chroma style. Unknown names fall
// back to chroma's default style.
func New(styleName string, enabled bool) *Highlighter {
	return &Highlighter{
		style:   styles.Get(styleName),
		enabled: enabled,
	}
}

// Format pretty-prints JSON bodies and returns tview-tagged text.
func (h *Highlighter) Format(body, contentType string) string {
	lang := Language(contentType, body)
	if lang == "json" {
		body = PrettyJSON(body)
	}
	if !h.enabled {
		return tview.Escape(body)
	}
	return h.colorize(body, lang)
}

func (h *Highlighter) colorize(body, lang string) string {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(body)
	}
	if lexer == nil {
		return tview.Escape(body)
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, body)
	if err != nil {
		return tview.Escape(body)
	}

	var b strings.Builder
	b.Grow(len(body) * 2)
	for tok := it(); tok != chroma.EOF; tok = it() {
		entry := h.style.Get(tok.Type)
		text := tview.Escape(tok.Value)
		if !entry.Colour.IsSet() {
			b.WriteString(text)
			continue
		}
		b.WriteString("[")
		b.WriteString(entry.Colour.String())
		b.WriteString("]")
		b.WriteString(text)
		b.WriteString("[-]")
	}
	return b.String()
}

// Language guesses a lexer name from the content type, then from the body.
func Language(contentType, body string) string {
	if contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err == nil {
			switch {
			case mt == "application/json" || strings.HasSuffix(mt, "+json"):
				return "json"
			case mt == "text/html":
				return "html"
			case mt == "application/xml" || mt == "text/xml" || strings.HasSuffix(mt, "+xml"):
				return "xml"
			case mt == "application/javascript" || mt == "text/javascript":
				return "javascript"
			case mt == "text/css":
				return "css"
			case mt == "application/yaml" || mt == "application/x-yaml" || mt == "text/yaml":
				return "yaml"
			}
		}
	}
	if json.Valid([]byte(strings.TrimSpace(body))) && body != "" {
		return "json"
	}
	return ""
}

// PrettyJSON indents valid JSON and returns anything else unchanged.
func PrettyJSON(body string) string {
	var out bytes.Buffer
	if err := json.Indent(&out, []byte(body), "", "  "); err != nil {
		return body
	}
	return out.String()
}

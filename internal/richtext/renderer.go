// Package richtext serializes structured rich text to HTML and plain text.
package richtext

import (
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/bilgisen/spacetraveling/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

// ErrInvalidSpan is returned when a span range does not fit its element text.
var ErrInvalidSpan = errors.New("richtext: invalid span")

// Renderer turns rich text elements into sanitized HTML or plain text.
type Renderer struct {
	sanitizer *bluemonday.Policy
}

// NewRenderer creates a renderer with a UGC sanitizer policy.
func NewRenderer() *Renderer {
	sanitizer := bluemonday.UGCPolicy()
	sanitizer.AllowAttrs("class").OnElements("p", "span")
	sanitizer.AllowAttrs("target").OnElements("a")

	return &Renderer{sanitizer: sanitizer}
}

// RenderMarkup serializes elements to HTML. Consecutive list items are
// grouped into a single ul or ol.
func (r *Renderer) RenderMarkup(elements []models.RichTextElement) (string, error) {
	var b strings.Builder
	openList := ""

	for i, el := range elements {
		if list := listTag(el.Type); list != openList {
			if openList != "" {
				b.WriteString("</" + openList + ">")
			}
			if list != "" {
				b.WriteString("<" + list + ">")
			}
			openList = list
		}

		inner, err := serializeText(el)
		if err != nil {
			return "", fmt.Errorf("element %d (%s): %w", i, el.Type, err)
		}

		switch el.Type {
		case models.ElementHeading1, models.ElementHeading2, models.ElementHeading3,
			models.ElementHeading4, models.ElementHeading5, models.ElementHeading6:
			tag := "h" + strings.TrimPrefix(el.Type, "heading")
			b.WriteString("<" + tag + ">" + inner + "</" + tag + ">")
		case models.ElementPreformatted:
			b.WriteString("<pre>" + inner + "</pre>")
		case models.ElementListItem, models.ElementOListItem:
			b.WriteString("<li>" + inner + "</li>")
		case models.ElementImage:
			fmt.Fprintf(&b, `<p class="block-img"><img src="%s" alt="%s" /></p>`,
				html.EscapeString(el.URL), html.EscapeString(el.Alt))
		case models.ElementEmbed:
			// embeds carry third-party markup and are not rendered
		default:
			b.WriteString("<p>" + inner + "</p>")
		}
	}
	if openList != "" {
		b.WriteString("</" + openList + ">")
	}

	return r.sanitizer.Sanitize(b.String()), nil
}

// RenderPlainText joins the text of every element with a single space.
func (r *Renderer) RenderPlainText(elements []models.RichTextElement) (string, error) {
	texts := make([]string, 0, len(elements))
	for _, el := range elements {
		if el.Text != "" {
			texts = append(texts, el.Text)
		}
	}
	return strings.Join(texts, " "), nil
}

func listTag(elementType string) string {
	switch elementType {
	case models.ElementListItem:
		return "ul"
	case models.ElementOListItem:
		return "ol"
	}
	return ""
}

func serializeText(el models.RichTextElement) (string, error) {
	units := utf16.Encode([]rune(el.Text))

	spans := make([]models.Span, 0, len(el.Spans))
	for _, s := range el.Spans {
		if s.Start < 0 || s.End < s.Start || s.End > len(units) {
			return "", fmt.Errorf("%w: [%d,%d) over %d units", ErrInvalidSpan, s.Start, s.End, len(units))
		}
		if s.Start == s.End {
			continue
		}
		spans = append(spans, s)
	}
	sortSpans(spans)

	return serializeRange(units, spans, 0, len(units)), nil
}

// serializeRange writes units[start:end] wrapping every span in its tag.
// spans must lie within [start, end) and be sorted by sortSpans. A span that
// crosses the end of an enclosing span is split at that boundary.
func serializeRange(units []uint16, spans []models.Span, start, end int) string {
	var b strings.Builder
	pos := start

	for len(spans) > 0 {
		s := spans[0]
		b.WriteString(escapeText(units[pos:s.Start]))

		var inner, rest []models.Span
		for _, c := range spans[1:] {
			switch {
			case c.Start >= s.End:
				rest = append(rest, c)
			case c.End <= s.End:
				inner = append(inner, c)
			default:
				head, tail := c, c
				head.End = s.End
				tail.Start = s.End
				inner = append(inner, head)
				rest = append(rest, tail)
			}
		}

		open, closeTag := spanTags(s)
		b.WriteString(open)
		b.WriteString(serializeRange(units, inner, s.Start, s.End))
		b.WriteString(closeTag)

		pos = s.End
		sortSpans(rest)
		spans = rest
	}

	b.WriteString(escapeText(units[pos:end]))
	return b.String()
}

func sortSpans(spans []models.Span) {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})
}

func spanTags(s models.Span) (string, string) {
	switch s.Type {
	case models.SpanStrong:
		return "<strong>", "</strong>"
	case models.SpanEm:
		return "<em>", "</em>"
	case models.SpanHyperlink:
		if s.Data == nil || s.Data.URL == "" {
			return "", ""
		}
		open := `<a href="` + html.EscapeString(s.Data.URL) + `"`
		if s.Data.Target != "" {
			open += ` target="` + html.EscapeString(s.Data.Target) + `"`
		}
		return open + ">", "</a>"
	case models.SpanLabel:
		if s.Data == nil || s.Data.Label == "" {
			return "<span>", "</span>"
		}
		return `<span class="` + html.EscapeString(s.Data.Label) + `">`, "</span>"
	}
	return "", ""
}

func escapeText(units []uint16) string {
	text := html.EscapeString(string(utf16.Decode(units)))
	return strings.ReplaceAll(text, "\n", "<br />")
}

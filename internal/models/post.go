package models

import "time"

// PostSummary is one entry of the home page post list.
type PostSummary struct {
	UID                  string     `json:"uid"`
	FirstPublicationDate *time.Time `json:"first_publication_date"`
	FormattedDate        string     `json:"formatted_date,omitempty"`
	Title                string     `json:"title"`
	Subtitle             string     `json:"subtitle"`
	Author               string     `json:"author"`
}

// PostPage is one page of a paginated post listing. An empty NextPage means
// the listing is exhausted.
type PostPage struct {
	Results  []PostSummary `json:"results"`
	NextPage string        `json:"next_page"`
}

// Banner is the hero image of a post.
type Banner struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// PostDetail is a full post as stored in the content repository.
type PostDetail struct {
	UID                  string         `json:"uid"`
	FirstPublicationDate *time.Time     `json:"first_publication_date"`
	Title                string         `json:"title"`
	Banner               Banner         `json:"banner"`
	Author               string         `json:"author"`
	Content              []ContentBlock `json:"content"`
}

// ContentBlock is a titled section of a post body.
type ContentBlock struct {
	Heading string            `json:"heading"`
	Body    []RichTextElement `json:"body"`
}

// Rich text element types
const (
	ElementHeading1     = "heading1"
	ElementHeading2     = "heading2"
	ElementHeading3     = "heading3"
	ElementHeading4     = "heading4"
	ElementHeading5     = "heading5"
	ElementHeading6     = "heading6"
	ElementParagraph    = "paragraph"
	ElementPreformatted = "preformatted"
	ElementListItem     = "list-item"
	ElementOListItem    = "o-list-item"
	ElementImage        = "image"
	ElementEmbed        = "embed"
)

// Inline span types
const (
	SpanStrong    = "strong"
	SpanEm        = "em"
	SpanHyperlink = "hyperlink"
	SpanLabel     = "label"
)

// RichTextElement is one block-level unit of rich text: a paragraph, a
// heading, a list item or an image.
type RichTextElement struct {
	Type  string `json:"type" validate:"required"`
	Text  string `json:"text"`
	Spans []Span `json:"spans" validate:"dive"`
	URL   string `json:"url,omitempty"`
	Alt   string `json:"alt,omitempty"`
}

// Span annotates the [Start, End) range of its element's text. Offsets count
// UTF-16 code units.
type Span struct {
	Start int       `json:"start" validate:"gte=0"`
	End   int       `json:"end" validate:"gtefield=Start"`
	Type  string    `json:"type" validate:"required"`
	Data  *SpanData `json:"data,omitempty"`
}

// SpanData carries the payload of hyperlink and label spans.
type SpanData struct {
	LinkType string `json:"link_type,omitempty"`
	URL      string `json:"url,omitempty"`
	Target   string `json:"target,omitempty"`
	Label    string `json:"label,omitempty"`
}

package post

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bilgisen/spacetraveling/internal/dateformat"
	"github.com/bilgisen/spacetraveling/internal/models"
	"github.com/bilgisen/spacetraveling/internal/richtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjector(t *testing.T, renderer RichTextRenderer) *Projector {
	t.Helper()
	if renderer == nil {
		renderer = richtext.NewRenderer()
	}
	dates, err := dateformat.New("pt-BR", time.UTC)
	require.NoError(t, err)
	return NewProjector(renderer, dates, "dd LLL yyyy")
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("palavra ", n))
}

func paragraph(text string) models.RichTextElement {
	return models.RichTextElement{Type: models.ElementParagraph, Text: text}
}

func published() *time.Time {
	t := time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestProject(t *testing.T) {
	p := newProjector(t, nil)

	vm, err := p.Project(models.PostDetail{
		UID:                  "como-utilizar-hooks",
		FirstPublicationDate: published(),
		Title:                "Como utilizar Hooks",
		Banner:               models.Banner{URL: "https://images.prismic.io/banner.png", Alt: "banner"},
		Author:               "Joseph Oliveira",
		Content: []models.ContentBlock{
			{Heading: "Proin et varius", Body: []models.RichTextElement{
				{Type: models.ElementParagraph, Text: "Lorem ipsum", Spans: []models.Span{{Start: 0, End: 5, Type: models.SpanStrong}}},
			}},
			{Heading: "Cras laoreet", Body: []models.RichTextElement{paragraph("Nullam dolor")}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "como-utilizar-hooks", vm.UID)
	assert.Equal(t, "Como utilizar Hooks", vm.Title)
	assert.Equal(t, "Joseph Oliveira", vm.Author)
	assert.Equal(t, "https://images.prismic.io/banner.png", vm.BannerURL)
	assert.Equal(t, "banner", vm.BannerAlt)
	assert.Equal(t, "15 mar 2021", vm.FormattedDate)
	assert.Equal(t, 1, vm.ReadingTimeMinutes)
	assert.Equal(t, []models.RenderedBlock{
		{Heading: "Proin et varius", BodyHTML: "<p><strong>Lorem</strong> ipsum</p>"},
		{Heading: "Cras laoreet", BodyHTML: "<p>Nullam dolor</p>"},
	}, vm.Blocks)
}

func TestReadingTime(t *testing.T) {
	p := newProjector(t, nil)

	tests := []struct {
		name    string
		content []models.ContentBlock
		want    int
	}{
		{name: "no content", content: nil, want: 0},
		{name: "empty body", content: []models.ContentBlock{{Heading: "only a heading"}}, want: 0},
		{name: "one word", content: []models.ContentBlock{{Body: []models.RichTextElement{paragraph("one")}}}, want: 1},
		{name: "200 words", content: []models.ContentBlock{{Body: []models.RichTextElement{paragraph(words(200))}}}, want: 1},
		{name: "201 words", content: []models.ContentBlock{{Body: []models.RichTextElement{paragraph(words(201))}}}, want: 2},
		{
			name: "summed across blocks",
			content: []models.ContentBlock{
				{Body: []models.RichTextElement{paragraph(words(150))}},
				{Body: []models.RichTextElement{paragraph(words(100)), paragraph(words(150))}},
			},
			want: 2,
		},
		{
			name:    "irregular whitespace",
			content: []models.ContentBlock{{Body: []models.RichTextElement{paragraph("  a\t\tb\n\nc  ")}}},
			want:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ReadingTime(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectWithoutPublicationDate(t *testing.T) {
	p := newProjector(t, nil)

	_, err := p.Project(models.PostDetail{UID: "draft", Title: "Draft"})

	assert.ErrorIs(t, err, ErrPrecondition)
}

type failingRenderer struct {
	err error
}

func (f failingRenderer) RenderMarkup([]models.RichTextElement) (string, error) { return "", f.err }
func (f failingRenderer) RenderPlainText([]models.RichTextElement) (string, error) {
	return "", f.err
}

func TestProjectPropagatesRendererFailure(t *testing.T) {
	renderErr := errors.New("renderer exploded")
	p := newProjector(t, failingRenderer{err: renderErr})

	_, err := p.Project(models.PostDetail{
		UID:                  "a",
		FirstPublicationDate: published(),
		Content:              []models.ContentBlock{{Body: []models.RichTextElement{paragraph("x")}}},
	})

	assert.ErrorIs(t, err, renderErr)
}

func TestProjectInvalidSpan(t *testing.T) {
	p := newProjector(t, nil)

	_, err := p.Project(models.PostDetail{
		UID:                  "a",
		FirstPublicationDate: published(),
		Content: []models.ContentBlock{{Body: []models.RichTextElement{
			{Type: models.ElementParagraph, Text: "abc", Spans: []models.Span{{Start: 0, End: 10, Type: models.SpanEm}}},
		}}},
	})

	assert.ErrorIs(t, err, richtext.ErrInvalidSpan)
}

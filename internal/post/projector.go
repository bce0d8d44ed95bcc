// Package post projects a fetched post into the data its page displays.
package post

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bilgisen/spacetraveling/internal/models"
)

// WordsPerMinute is the reading speed used for reading time estimates.
const WordsPerMinute = 200

// ErrPrecondition marks a post that violates a data-integrity guarantee of
// the content source, such as a published post without a publication date.
var ErrPrecondition = errors.New("post: precondition violated")

// RichTextRenderer serializes rich text bodies.
type RichTextRenderer interface {
	RenderMarkup(elements []models.RichTextElement) (string, error)
	RenderPlainText(elements []models.RichTextElement) (string, error)
}

// DateFormatter renders a timestamp with a pattern.
type DateFormatter interface {
	Format(t *time.Time, pattern string) string
}

// Projector derives a PostDetailViewModel from a PostDetail. It performs no
// I/O.
type Projector struct {
	renderer    RichTextRenderer
	dates       DateFormatter
	datePattern string
}

// NewProjector creates a projector formatting dates with datePattern.
func NewProjector(renderer RichTextRenderer, dates DateFormatter, datePattern string) *Projector {
	return &Projector{
		renderer:    renderer,
		dates:       dates,
		datePattern: datePattern,
	}
}

// Project builds the view model of detail.
func (p *Projector) Project(detail models.PostDetail) (*models.PostDetailViewModel, error) {
	if detail.FirstPublicationDate == nil {
		return nil, fmt.Errorf("%w: post %q has no publication date", ErrPrecondition, detail.UID)
	}

	blocks := make([]models.RenderedBlock, 0, len(detail.Content))
	for i, block := range detail.Content {
		body, err := p.renderer.RenderMarkup(block.Body)
		if err != nil {
			return nil, fmt.Errorf("post %q block %d: %w", detail.UID, i, err)
		}
		blocks = append(blocks, models.RenderedBlock{Heading: block.Heading, BodyHTML: body})
	}

	minutes, err := p.ReadingTime(detail.Content)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", detail.UID, err)
	}

	return &models.PostDetailViewModel{
		UID:                detail.UID,
		Title:              detail.Title,
		Author:             detail.Author,
		BannerURL:          detail.Banner.URL,
		BannerAlt:          detail.Banner.Alt,
		FormattedDate:      p.dates.Format(detail.FirstPublicationDate, p.datePattern),
		ReadingTimeMinutes: minutes,
		Blocks:             blocks,
	}, nil
}

// ReadingTime returns the whole minutes needed to read the bodies of
// content, rounding any partial minute up. Headings are not counted.
func (p *Projector) ReadingTime(content []models.ContentBlock) (int, error) {
	words := 0
	for i, block := range content {
		text, err := p.renderer.RenderPlainText(block.Body)
		if err != nil {
			return 0, fmt.Errorf("block %d: %w", i, err)
		}
		words += len(strings.Fields(text))
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute, nil
}

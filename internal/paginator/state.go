package paginator

import (
	"time"

	"github.com/bilgisen/spacetraveling/internal/models"
)

// SummaryFormatter derives display fields of a summary, such as its
// formatted publication date.
type SummaryFormatter func(models.PostSummary) models.PostSummary

// DateFormatter renders a timestamp with a pattern. It must accept nil.
type DateFormatter interface {
	Format(t *time.Time, pattern string) string
}

// FormatDates returns a SummaryFormatter that fills FormattedDate. Drafts
// without a publication date pass through unchanged.
func FormatDates(f DateFormatter, pattern string) SummaryFormatter {
	return func(s models.PostSummary) models.PostSummary {
		if s.FirstPublicationDate == nil {
			return s
		}
		s.FormattedDate = f.Format(s.FirstPublicationDate, pattern)
		return s
	}
}

// State is an immutable snapshot of an accumulated post listing.
type State struct {
	Posts   []models.PostSummary
	Cursor  string
	HasMore bool
}

// Seed builds the state for a first page.
func Seed(page models.PostPage, format SummaryFormatter) State {
	return State{
		Posts:   formatAll(nil, page.Results, format),
		Cursor:  page.NextPage,
		HasMore: page.NextPage != "",
	}
}

// Append returns the state after page was fetched with s.Cursor. Posts of
// page follow all posts already in s, in page order.
func (s State) Append(page models.PostPage, format SummaryFormatter) State {
	return State{
		Posts:   formatAll(s.Posts, page.Results, format),
		Cursor:  page.NextPage,
		HasMore: page.NextPage != "",
	}
}

// FormatPage formats every summary of page, leaving order and cursor intact.
func FormatPage(page models.PostPage, format SummaryFormatter) models.PostPage {
	return models.PostPage{
		Results:  formatAll(nil, page.Results, format),
		NextPage: page.NextPage,
	}
}

func formatAll(existing, results []models.PostSummary, format SummaryFormatter) []models.PostSummary {
	out := make([]models.PostSummary, len(existing), len(existing)+len(results))
	copy(out, existing)
	for _, s := range results {
		if format != nil {
			s = format(s)
		}
		out = append(out, s)
	}
	return out
}

func (s State) clone() State {
	posts := make([]models.PostSummary, len(s.Posts))
	copy(posts, s.Posts)
	s.Posts = posts
	return s
}

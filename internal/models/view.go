package models

// PostDetailViewModel is everything the post page needs to render.
type PostDetailViewModel struct {
	UID                string          `json:"uid"`
	Title              string          `json:"title"`
	Author             string          `json:"author"`
	BannerURL          string          `json:"banner_url"`
	BannerAlt          string          `json:"banner_alt,omitempty"`
	FormattedDate      string          `json:"formatted_date"`
	ReadingTimeMinutes int             `json:"reading_time_minutes"`
	Blocks             []RenderedBlock `json:"blocks"`
}

// RenderedBlock is a content section with its body serialized to HTML.
type RenderedBlock struct {
	Heading  string `json:"heading"`
	BodyHTML string `json:"body_html"`
}

// PageView is a formatted post page as served to the load-more button.
type PageView struct {
	Results  []PostSummary `json:"results"`
	NextPage string        `json:"next_page"`
	HasMore  bool          `json:"has_more"`
}

// NewPageView wraps a formatted page.
func NewPageView(page PostPage) PageView {
	results := page.Results
	if results == nil {
		results = []PostSummary{}
	}
	return PageView{
		Results:  results,
		NextPage: page.NextPage,
		HasMore:  page.NextPage != "",
	}
}

package content

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bilgisen/spacetraveling/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Prismic writes offsets without a colon ("+0000").
const prismicTimeLayout = "2006-01-02T15:04:05-0700"

type apiResponse struct {
	Refs []ref `json:"refs" validate:"required,dive"`
}

type ref struct {
	ID          string `json:"id"`
	Ref         string `json:"ref" validate:"required"`
	IsMasterRef bool   `json:"isMasterRef"`
}

type searchResponse struct {
	Page     int        `json:"page"`
	NextPage *string    `json:"next_page"`
	Results  []document `json:"results" validate:"required,dive"`
}

type document struct {
	ID                   string          `json:"id" validate:"required"`
	UID                  string          `json:"uid" validate:"required"`
	Type                 string          `json:"type"`
	FirstPublicationDate *string         `json:"first_publication_date"`
	Data                 json.RawMessage `json:"data" validate:"required"`
}

type summaryData struct {
	Title    string `json:"title" validate:"required"`
	Subtitle string `json:"subtitle"`
	Author   string `json:"author"`
}

type detailData struct {
	Title  string `json:"title" validate:"required"`
	Banner struct {
		URL string  `json:"url"`
		Alt *string `json:"alt"`
	} `json:"banner"`
	Author  string       `json:"author"`
	Content []contentRaw `json:"content" validate:"dive"`
}

type contentRaw struct {
	Heading string                   `json:"heading"`
	Body    []models.RichTextElement `json:"body" validate:"dive"`
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}

func decodeStrict(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return malformed("decode: %v", err)
	}
	if err := validate.Struct(v); err != nil {
		return malformed("validate: %v", err)
	}
	return nil
}

func decodeMasterRef(body []byte) (string, error) {
	var api apiResponse
	if err := decodeStrict(body, &api); err != nil {
		return "", err
	}
	for _, r := range api.Refs {
		if r.IsMasterRef {
			return r.Ref, nil
		}
	}
	return "", malformed("no master ref")
}

func decodePage(body []byte) (*models.PostPage, error) {
	var resp searchResponse
	if err := decodeStrict(body, &resp); err != nil {
		return nil, err
	}

	page := &models.PostPage{Results: make([]models.PostSummary, 0, len(resp.Results))}
	if resp.NextPage != nil {
		page.NextPage = *resp.NextPage
	}

	for i, doc := range resp.Results {
		published, err := parseTimestamp(doc.FirstPublicationDate)
		if err != nil {
			return nil, malformed("result %d: %v", i, err)
		}

		var data summaryData
		if err := decodeStrict(doc.Data, &data); err != nil {
			return nil, fmt.Errorf("result %d (%s): %w", i, doc.UID, err)
		}

		page.Results = append(page.Results, models.PostSummary{
			UID:                  doc.UID,
			FirstPublicationDate: published,
			Title:                data.Title,
			Subtitle:             data.Subtitle,
			Author:               data.Author,
		})
	}
	return page, nil
}

func decodeDetail(body []byte) (*models.PostDetail, error) {
	var resp searchResponse
	if err := decodeStrict(body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, ErrNotFound
	}

	doc := resp.Results[0]
	published, err := parseTimestamp(doc.FirstPublicationDate)
	if err != nil {
		return nil, malformed("%v", err)
	}

	var data detailData
	if err := decodeStrict(doc.Data, &data); err != nil {
		return nil, fmt.Errorf("document %s: %w", doc.UID, err)
	}

	detail := &models.PostDetail{
		UID:                  doc.UID,
		FirstPublicationDate: published,
		Title:                data.Title,
		Banner:               models.Banner{URL: data.Banner.URL},
		Author:               data.Author,
		Content:              make([]models.ContentBlock, 0, len(data.Content)),
	}
	if data.Banner.Alt != nil {
		detail.Banner.Alt = *data.Banner.Alt
	}
	for _, c := range data.Content {
		detail.Content = append(detail.Content, models.ContentBlock{
			Heading: c.Heading,
			Body:    c.Body,
		})
	}
	return detail, nil
}

func parseTimestamp(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(prismicTimeLayout, *raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, *raw)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q", *raw)
		}
	}
	return &t, nil
}

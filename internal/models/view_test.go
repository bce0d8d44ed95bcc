package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPageViewJSON(t *testing.T) {
	published := time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)
	view := NewPageView(PostPage{
		Results: []PostSummary{
			{UID: "published", FirstPublicationDate: &published, FormattedDate: "15 mar 2021", Title: "A"},
			{UID: "draft", Title: "B"},
		},
		NextPage: "https://repo.cdn.prismic.io/api/v2/documents/search?page=2",
	})

	data, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("Failed to marshal PageView: %v", err)
	}

	var result struct {
		Results []map[string]interface{} `json:"results"`
		NextPage string                  `json:"next_page"`
		HasMore  bool                    `json:"has_more"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if !result.HasMore {
		t.Errorf("Expected has_more to be true when next_page is set")
	}
	if len(result.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(result.Results))
	}
	if result.Results[0]["formatted_date"] != "15 mar 2021" {
		t.Errorf("Expected formatted_date '15 mar 2021', got %v", result.Results[0]["formatted_date"])
	}
	if result.Results[1]["first_publication_date"] != nil {
		t.Errorf("Expected draft first_publication_date to be null, got %v", result.Results[1]["first_publication_date"])
	}
	if _, ok := result.Results[1]["formatted_date"]; ok {
		t.Errorf("Expected draft to omit formatted_date")
	}
}

func TestNewPageViewEmptyResults(t *testing.T) {
	view := NewPageView(PostPage{})

	if view.HasMore {
		t.Errorf("Expected has_more to be false without next_page")
	}
	if view.Results == nil {
		t.Errorf("Expected empty, non-nil results so JSON encodes []")
	}
}

package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

// Mock HTTP Transport
type RoundTripFunc func(req *http.Request) *http.Response

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func NewMockClient(fn RoundTripFunc) *http.Client {
	return &http.Client{
		Transport: fn,
	}
}

func TestSearch(t *testing.T) {
	var gotQuery map[string]string

	mockTransport := RoundTripFunc(func(req *http.Request) *http.Response {
		gotQuery = map[string]string{}
		for k := range req.URL.Query() {
			gotQuery[k] = req.URL.Query().Get(k)
		}
		jsonBody := `{
			"items": [
				{
					"id": { "videoId": "vid1" },
					"snippet": {
						"title": "Video 1",
						"channelId": "chan1",
						"channelTitle": "Channel 1",
						"description": "first",
						"thumbnails": { "high": { "url": "http://img/high1" }, "medium": { "url": "http://img/med1" } }
					}
				},
				{
					"id": { "videoId": "vid2" },
					"snippet": {
						"title": "Video 2",
						"channelId": "chan2",
						"channelTitle": "Channel 2",
						"description": "second",
						"thumbnails": { "medium": { "url": "http://img/med2" } }
					}
				},
				{
					"id": { "videoId": "vid3" },
					"snippet": {
						"title": "Video 3",
						"channelId": "chan3",
						"channelTitle": "Channel 3",
						"description": "third",
						"thumbnails": { "default": { "url": "http://img/def3" } }
					}
				}
			]
		}`
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(jsonBody)),
			Header:     make(http.Header),
		}
	})

	client := NewYouTubeClient("apikey", "https://mock.com/search")
	client.http = NewMockClient(mockTransport)

	items, err := client.Search(context.Background(), "pmp exam", 10)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if gotQuery["q"] != "pmp exam" {
		t.Errorf("Expected q=pmp exam, got %q", gotQuery["q"])
	}
	if gotQuery["type"] != "video" {
		t.Errorf("Expected type=video, got %q", gotQuery["type"])
	}
	if gotQuery["order"] != "relevance" {
		t.Errorf("Expected order=relevance, got %q", gotQuery["order"])
	}
	if gotQuery["maxResults"] != "10" {
		t.Errorf("Expected maxResults=10, got %q", gotQuery["maxResults"])
	}
	if gotQuery["key"] != "apikey" {
		t.Errorf("Expected key=apikey, got %q", gotQuery["key"])
	}

	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}

	if items[0].YTVideoID != "vid1" {
		t.Errorf("Expected vid1, got %s", items[0].YTVideoID)
	}
	if items[0].ChannelTitle != "Channel 1" {
		t.Errorf("Expected Channel 1, got %s", items[0].ChannelTitle)
	}

	// thumbnail fallback: high, then medium, then default
	if items[0].ThumbnailURL != "http://img/high1" {
		t.Errorf("Expected high thumbnail, got %s", items[0].ThumbnailURL)
	}
	if items[1].ThumbnailURL != "http://img/med2" {
		t.Errorf("Expected medium thumbnail, got %s", items[1].ThumbnailURL)
	}
	if items[2].ThumbnailURL != "http://img/def3" {
		t.Errorf("Expected default thumbnail, got %s", items[2].ThumbnailURL)
	}
}

func TestSearch_DefaultMaxResults(t *testing.T) {
	tests := []struct {
		name       string
		maxResults int
	}{
		{"zero", 0},
		{"negative", -5},
		{"over cap", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			mockTransport := RoundTripFunc(func(req *http.Request) *http.Response {
				got = req.URL.Query().Get("maxResults")
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(strings.NewReader(`{"items":[]}`)),
					Header:     make(http.Header),
				}
			})

			client := NewYouTubeClient("apikey", "https://mock.com/search")
			client.http = NewMockClient(mockTransport)

			if _, err := client.Search(context.Background(), "query", tt.maxResults); err != nil {
				t.Fatalf("Search returned error: %v", err)
			}
			if got != "20" {
				t.Errorf("Expected maxResults=20, got %q", got)
			}
		})
	}
}

func TestSearch_UpstreamFailure(t *testing.T) {
	tests := []struct {
		name string
		resp *http.Response
	}{
		{
			name: "quota exceeded",
			resp: &http.Response{
				StatusCode: 403,
				Body:       io.NopCloser(strings.NewReader(`{"error":{"message":"quotaExceeded"}}`)),
				Header:     make(http.Header),
			},
		},
		{
			name: "garbage payload",
			resp: &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader("<html>not json</html>")),
				Header:     make(http.Header),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewYouTubeClient("apikey", "https://mock.com/search")
			client.http = NewMockClient(RoundTripFunc(func(req *http.Request) *http.Response {
				return tt.resp
			}))

			_, err := client.Search(context.Background(), "query", 10)
			if !errors.Is(err, ErrUpstream) {
				t.Errorf("Expected ErrUpstream, got %v", err)
			}
		})
	}
}

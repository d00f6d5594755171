package queue

import (
	"testing"
)

func TestJobFromValues_OK(t *testing.T) {
	job, err := jobFromValues(map[string]interface{}{
		"url": "https://example.com",
		"id":  "w1",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if job.URL != "https://example.com" || string(job.WebsiteID) != "w1" {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestJobFromValues_Malformed(t *testing.T) {
	cases := []struct {
		name   string
		values map[string]interface{}
	}{
		{"missing url", map[string]interface{}{"id": "w1"}},
		{"missing id", map[string]interface{}{"url": "https://example.com"}},
		{"empty url", map[string]interface{}{"url": "", "id": "w1"}},
		{"wrong type", map[string]interface{}{"url": 42, "id": "w1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := jobFromValues(tc.values); err == nil {
				t.Fatalf("want error for %v", tc.values)
			}
		})
	}
}

func TestStreamName_PerRegion(t *testing.T) {
	if streamName("india") == streamName("usa") {
		t.Fatal("regions must map to distinct streams")
	}
	if streamName("india") != "betteruptime:website:india" {
		t.Fatalf("unexpected stream name: %s", streamName("india"))
	}
}

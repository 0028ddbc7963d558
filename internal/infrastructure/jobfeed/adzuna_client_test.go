package jobfeed

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleResponse = `{
  "count": 2,
  "results": [
    {
      "id": "4212345678",
      "title": "Senior Golang Developer",
      "description": "Build APIs in golang on top of PostgreSQL and Redis. Docker is a plus.",
      "company": {"display_name": "Acme Labs"},
      "location": {"display_name": "Bengaluru, Karnataka"},
      "redirect_url": "https://www.adzuna.in/details/4212345678",
      "salary_min": 1200000.4,
      "salary_max": 1800000,
      "contract_time": "full_time"
    },
    {
      "id": 99,
      "title": "Part-time Support Agent",
      "description": "Answer emails.",
      "company": {"display_name": "Helpdesk Co"},
      "contract_time": "part_time"
    }
  ]
}`

func TestAdzunaClient_FetchPage(t *testing.T) {
	var gotPath, gotAppID, gotWhat, gotPerPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAppID = r.URL.Query().Get("app_id")
		gotWhat = r.URL.Query().Get("what")
		gotPerPage = r.URL.Query().Get("results_per_page")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, sampleResponse)
	}))
	defer srv.Close()

	c := NewAdzunaClient(AdzunaConfig{
		BaseURL:        srv.URL,
		AppID:          "id",
		AppKey:         "key",
		Country:        "in",
		Query:          "developer",
		ResultsPerPage: 5,
	}, log.New(io.Discard, "", 0))

	listings, err := c.FetchPage(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotPath != "/jobs/in/search/2" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAppID != "id" || gotWhat != "developer" || gotPerPage != "5" {
		t.Fatalf("unexpected query app_id=%q what=%q per_page=%q", gotAppID, gotWhat, gotPerPage)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first.Source != SourceAdzuna || first.ExternalID != "4212345678" {
		t.Fatalf("unexpected identity %q/%q", first.Source, first.ExternalID)
	}
	if first.Company != "Acme Labs" || first.Location != "Bengaluru, Karnataka" {
		t.Fatalf("unexpected company/location %q %q", first.Company, first.Location)
	}
	if first.SalaryMin == nil || *first.SalaryMin != 1200000 || first.SalaryMax == nil || *first.SalaryMax != 1800000 {
		t.Fatalf("unexpected salary %v %v", first.SalaryMin, first.SalaryMax)
	}
	if first.Skills != "Go, PostgreSQL, Redis, Docker" {
		t.Fatalf("unexpected skills %q", first.Skills)
	}
	if first.JobType != "full-time" {
		t.Fatalf("unexpected job type %q", first.JobType)
	}

	second := listings[1]
	if second.ExternalID != "99" || second.JobType != "part-time" {
		t.Fatalf("unexpected second listing %#v", second)
	}
	if second.SalaryMin != nil || second.Skills != "" {
		t.Fatalf("expected no salary and no skills, got %#v", second)
	}
}

func TestAdzunaClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"exception":"AUTH_FAIL"}`)
	}))
	defer srv.Close()

	c := NewAdzunaClient(AdzunaConfig{BaseURL: srv.URL, AppID: "id", AppKey: "bad"}, log.New(io.Discard, "", 0))
	if _, err := c.FetchPage(context.Background(), 1); err == nil {
		t.Fatalf("expected error for 401")
	}
}

func TestNewAdzunaClient_RequiresCredentials(t *testing.T) {
	if c := NewAdzunaClient(AdzunaConfig{AppID: "id"}, nil); c != nil {
		t.Fatalf("expected nil client without app key")
	}
}

func TestExtractSkills(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"JavaScript and TypeScript with Node.js", "JavaScript, TypeScript, Node.js"},
		{"Java backend, k8s on AWS", "Java, Kubernetes, AWS"},
		{"mysql only", "MySQL"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ExtractSkills(tc.text); got != tc.want {
			t.Fatalf("ExtractSkills(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

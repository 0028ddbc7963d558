package jobfeed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"jobboard/internal/usecase"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const SourceAdzuna = "adzuna"

type Client interface {
	FetchPage(ctx context.Context, page int) ([]usecase.ExternalListing, error)
}

type AdzunaConfig struct {
	BaseURL        string
	AppID          string
	AppKey         string
	Country        string
	Query          string
	ResultsPerPage int
}

type adzunaClient struct {
	cfg    AdzunaConfig
	http   *resty.Client
	logger *log.Logger
}

// NewAdzunaClient returns nil when credentials are missing.
func NewAdzunaClient(cfg AdzunaConfig, logger *log.Logger) Client {
	cfg.AppID = strings.TrimSpace(cfg.AppID)
	cfg.AppKey = strings.TrimSpace(cfg.AppKey)
	if cfg.AppID == "" || cfg.AppKey == "" {
		return nil
	}
	if logger == nil {
		logger = log.Default()
	}
	if strings.TrimSpace(cfg.Country) == "" {
		cfg.Country = "in"
	}
	if cfg.ResultsPerPage <= 0 {
		cfg.ResultsPerPage = 20
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = "https://api.adzuna.com/v1/api"
	}

	client := resty.New().
		SetBaseURL(base).
		SetTimeout(10*time.Second).
		SetHeader("Accept", "application/json")

	return &adzunaClient{cfg: cfg, http: client, logger: logger}
}

func (c *adzunaClient) FetchPage(ctx context.Context, page int) ([]usecase.ExternalListing, error) {
	if c == nil || c.http == nil {
		return nil, errors.New("nil adzuna client")
	}
	if page <= 0 {
		page = 1
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"country": c.cfg.Country,
			"page":    strconv.Itoa(page),
		}).
		SetQueryParams(map[string]string{
			"app_id":           c.cfg.AppID,
			"app_key":          c.cfg.AppKey,
			"what":             c.cfg.Query,
			"results_per_page": strconv.Itoa(c.cfg.ResultsPerPage),
			"content-type":     "application/json",
		}).
		Get("/jobs/{country}/search/{page}")
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		body := strings.TrimSpace(resp.String())
		if len(body) > 512 {
			body = body[:512]
		}
		c.logger.Printf("[JobFeed] FetchPage error page=%d status=%d body=%q", page, resp.StatusCode(), body)
		return nil, fmt.Errorf("adzuna fetch failed: status=%d", resp.StatusCode())
	}

	listings := parseAdzunaResults(resp.String())
	c.logger.Printf("[JobFeed] FetchPage ok page=%d results=%d", page, len(listings))
	return listings, nil
}

func parseAdzunaResults(body string) []usecase.ExternalListing {
	results := gjson.Get(body, "results").Array()
	out := make([]usecase.ExternalListing, 0, len(results))
	for _, r := range results {
		title := strings.TrimSpace(r.Get("title").String())
		description := strings.TrimSpace(r.Get("description").String())

		out = append(out, usecase.ExternalListing{
			Source:      SourceAdzuna,
			ExternalID:  strings.TrimSpace(r.Get("id").String()),
			URL:         strings.TrimSpace(r.Get("redirect_url").String()),
			Title:       title,
			Company:     strings.TrimSpace(r.Get("company.display_name").String()),
			Location:    strings.TrimSpace(r.Get("location.display_name").String()),
			Description: description,
			Skills:      ExtractSkills(title + "\n" + description),
			SalaryMin:   salary(r.Get("salary_min")),
			SalaryMax:   salary(r.Get("salary_max")),
			JobType:     jobType(r.Get("contract_type").String(), r.Get("contract_time").String()),
		})
	}
	return out
}

func salary(v gjson.Result) *int {
	if !v.Exists() {
		return nil
	}
	f := v.Float()
	if f <= 0 {
		return nil
	}
	n := int(math.Round(f))
	return &n
}

func jobType(contractType, contractTime string) string {
	if strings.EqualFold(contractType, "contract") {
		return "contract"
	}
	if strings.EqualFold(contractTime, "part_time") {
		return "part-time"
	}
	return "full-time"
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/model"
)

// MaxLiveJobs caps the listings shown next to a roadmap.
const MaxLiveJobs = 5

const (
	defaultJobTitle    = "Developer"
	defaultJobLocation = "India"
	notDisclosed       = "Not disclosed"
)

const jsearchBaseURL = "https://jsearch.p.rapidapi.com"

// JSearchClient wraps the JSearch API on RapidAPI
type JSearchClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewJSearchClient(apiKey, baseURL string) *JSearchClient {
	if baseURL == "" {
		baseURL = jsearchBaseURL
	}
	return &JSearchClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// ── JSearch API response types ────────────────────────

type jsearchResponse struct {
	Status string       `json:"status"`
	Data   []jsearchJob `json:"data"`
}

type jsearchJob struct {
	JobTitle          string   `json:"job_title"`
	EmployerName      string   `json:"employer_name"`
	JobCity           string   `json:"job_city"`
	JobState          string   `json:"job_state"`
	JobCountry        string   `json:"job_country"`
	JobIsRemote       bool     `json:"job_is_remote"`
	JobApplyLink      string   `json:"job_apply_link"`
	EmployerWebsite   string   `json:"employer_website"`
	JobMinSalary      *float64 `json:"job_min_salary"`
	JobMaxSalary      *float64 `json:"job_max_salary"`
	JobSalaryCurrency string   `json:"job_salary_currency"`
	JobSalaryPeriod   string   `json:"job_salary_period"`
}

// ── Search ────────────────────────────────────────────

// SearchLiveJobs returns up to MaxLiveJobs recent listings for jobTitle.
// Blank inputs fall back to "Developer" in "India".
func (c *JSearchClient) SearchLiveJobs(ctx context.Context, jobTitle, location string) ([]model.LiveJob, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("RapidAPI key not configured")
	}
	jobTitle = strings.TrimSpace(jobTitle)
	if jobTitle == "" {
		jobTitle = defaultJobTitle
	}
	location = strings.TrimSpace(location)
	if location == "" {
		location = defaultJobLocation
	}

	params := url.Values{}
	params.Set("query", jobTitle+" in "+location)
	params.Set("page", "1")
	params.Set("num_pages", "1")
	params.Set("date_posted", "week")

	reqURL := c.baseURL + "/search?" + params.Encode()
	log.Info().Str("title", jobTitle).Str("location", location).Msg("Searching JSearch API")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-rapidapi-host", "jsearch.p.rapidapi.com")
	req.Header.Set("x-rapidapi-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling JSearch API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JSearch API returned %d: %s", resp.StatusCode, string(body[:min(len(body), 500)]))
	}

	var result jsearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing JSearch response: %w", err)
	}

	jobs := make([]model.LiveJob, 0, MaxLiveJobs)
	for _, j := range result.Data {
		if len(jobs) == MaxLiveJobs {
			break
		}
		jobs = append(jobs, toLiveJob(j, location))
	}

	log.Info().Int("results", len(jobs)).Msg("JSearch API returned results")
	return jobs, nil
}

func toLiveJob(j jsearchJob, location string) model.LiveJob {
	job := model.LiveJob{
		Title:    firstNonEmpty(j.JobTitle, "Unknown Role"),
		Company:  firstNonEmpty(j.EmployerName, "Unknown Company"),
		Salary:   formatSalary(j),
		Location: location,
		URL:      firstNonEmpty(j.JobApplyLink, j.EmployerWebsite, "https://www.google.com/search?q="+url.QueryEscape(j.JobTitle+" jobs")),
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{j.JobCity, j.JobState, j.JobCountry} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		job.Location = strings.Join(parts, ", ")
	}
	if j.JobIsRemote {
		job.Location = "Remote"
	}
	return job
}

func formatSalary(j jsearchJob) string {
	if j.JobMinSalary == nil && j.JobMaxSalary == nil {
		return notDisclosed
	}
	cur := j.JobSalaryCurrency
	if cur != "" {
		cur += " "
	}
	var s string
	switch {
	case j.JobMinSalary != nil && j.JobMaxSalary != nil:
		s = fmt.Sprintf("%s%.0f - %.0f", cur, *j.JobMinSalary, *j.JobMaxSalary)
	case j.JobMinSalary != nil:
		s = fmt.Sprintf("%sfrom %.0f", cur, *j.JobMinSalary)
	default:
		s = fmt.Sprintf("%sup to %.0f", cur, *j.JobMaxSalary)
	}
	if j.JobSalaryPeriod != "" {
		s += " / " + strings.ToLower(j.JobSalaryPeriod)
	}
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

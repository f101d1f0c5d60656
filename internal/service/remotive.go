package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/model"
)

const remotiveBaseURL = "https://remotive.com/api"

// RemotiveClient wraps the Remotive free remote jobs API.
// No API key required.
type RemotiveClient struct {
	baseURL string
	client  *http.Client
}

func NewRemotiveClient(baseURL string) *RemotiveClient {
	if baseURL == "" {
		baseURL = remotiveBaseURL
	}
	return &RemotiveClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// ── Remotive API response types ──────────────────────

type remotiveResponse struct {
	JobCount int           `json:"job-count"`
	Jobs     []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	ID                        int    `json:"id"`
	Title                     string `json:"title"`
	CompanyName               string `json:"company_name"`
	Category                  string `json:"category"`
	JobType                   string `json:"job_type"`
	CandidateRequiredLocation string `json:"candidate_required_location"`
	Salary                    string `json:"salary"`
	URL                       string `json:"url"`
}

// ── Search method ────────────────────────────────────

// SearchLiveJobs returns up to MaxLiveJobs remote listings for jobTitle.
// Every Remotive listing is remote, so location only decorates the result.
func (c *RemotiveClient) SearchLiveJobs(ctx context.Context, jobTitle, location string) ([]model.LiveJob, error) {
	jobTitle = strings.TrimSpace(jobTitle)
	if jobTitle == "" {
		jobTitle = defaultJobTitle
	}

	params := url.Values{}
	params.Set("search", jobTitle)
	params.Set("limit", strconv.Itoa(MaxLiveJobs))
	reqURL := c.baseURL + "/remote-jobs?" + params.Encode()

	log.Info().Str("search", jobTitle).Msg("Searching Remotive API")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating remotive request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Remotive API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading remotive response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Remotive API returned %d: %s",
			resp.StatusCode, string(body[:min(len(body), 500)]))
	}

	var result remotiveResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing Remotive response: %w", err)
	}

	jobs := make([]model.LiveJob, 0, min(len(result.Jobs), MaxLiveJobs))
	for _, rj := range result.Jobs {
		if len(jobs) == MaxLiveJobs {
			break
		}
		jobs = append(jobs, convertRemotiveJob(rj))
	}

	log.Info().Int("results", len(jobs)).Str("search", jobTitle).Msg("Remotive API search complete")
	return jobs, nil
}

// ── Converter ────────────────────────────────────────

func convertRemotiveJob(rj remotiveJob) model.LiveJob {
	// Location: always remote, may include required location
	location := "Remote"
	loc := strings.TrimSpace(rj.CandidateRequiredLocation)
	if loc != "" && !strings.EqualFold(loc, "Anywhere") && !strings.EqualFold(loc, "Worldwide") {
		location = "Remote / " + loc
	}

	salary := strings.TrimSpace(rj.Salary)
	if salary == "" {
		salary = notDisclosed
	}

	return model.LiveJob{
		Title:    rj.Title,
		Company:  rj.CompanyName,
		Salary:   salary,
		Location: location,
		URL:      rj.URL,
	}
}

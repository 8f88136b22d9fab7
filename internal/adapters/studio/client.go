// Package studio talks to the generation backend over HTTP: multipart
// submission, job status lookups and the health probe.
package studio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/genstudio-cli/internal/domain"
	"github.com/bnema/genstudio-cli/internal/ports"
)

const maxResponseBytes = 1 << 20

const (
	statusPathPrefix = "/status/"
	healthPath       = "/health"
)

type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.StudioClient = Client{}

type submitResponse struct {
	JobID      string      `json:"job_id"`
	Status     string      `json:"status"`
	Progress   string      `json:"progress"`
	VideoURL   string      `json:"video_url"`
	ImageURL   string      `json:"image_url"`
	ImageURLs  []string    `json:"image_urls"`
	Variations []variation `json:"variations"`
}

type statusResponse struct {
	Status     string      `json:"status"`
	Progress   string      `json:"progress"`
	VideoURL   string      `json:"video_url"`
	ImageURLs  []string    `json:"image_urls"`
	Variations []variation `json:"variations"`
}

type variation struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type healthResponse struct {
	OK   bool `json:"ok"`
	Jobs int  `json:"jobs"`
}

type apiErrorResponse struct {
	Detail string `json:"detail"`
}

func (c Client) Submit(ctx context.Context, req ports.SubmitRequest) (ports.SubmitReceipt, error) {
	if strings.TrimSpace(req.Prompt) == "" && len(req.Attachments) == 0 {
		return ports.SubmitReceipt{}, errors.New("prompt or attachment is required")
	}

	endpoint, err := buildAPIURL(c.BaseURL, req.Endpoint)
	if err != nil {
		return ports.SubmitReceipt{}, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("prompt", req.Prompt); err != nil {
		return ports.SubmitReceipt{}, fmt.Errorf("encode submit form: %w", err)
	}
	if err := writer.WriteField("tool", string(req.Tool)); err != nil {
		return ports.SubmitReceipt{}, fmt.Errorf("encode submit form: %w", err)
	}
	if err := writer.WriteField("model", req.Model); err != nil {
		return ports.SubmitReceipt{}, fmt.Errorf("encode submit form: %w", err)
	}
	if req.Metadata != "" {
		if err := writer.WriteField("metadata", req.Metadata); err != nil {
			return ports.SubmitReceipt{}, fmt.Errorf("encode submit form: %w", err)
		}
	}
	for _, path := range req.Attachments {
		if err := appendAttachment(writer, path); err != nil {
			return ports.SubmitReceipt{}, err
		}
	}
	if err := writer.Close(); err != nil {
		return ports.SubmitReceipt{}, fmt.Errorf("encode submit form: %w", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	httpReq, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, body)
	if err != nil {
		return ports.SubmitReceipt{}, fmt.Errorf("create submit request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return ports.SubmitReceipt{}, fmt.Errorf("submit generation request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ports.SubmitReceipt{}, fmt.Errorf("submit generation request: %s", decodeAPIError(resp))
	}

	var payload submitResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return ports.SubmitReceipt{}, fmt.Errorf("decode submit response: %w", err)
	}

	imageURLs := collectImageURLs(payload.ImageURLs, payload.ImageURL, payload.Variations)
	if payload.JobID == "" && payload.VideoURL == "" && len(imageURLs) == 0 {
		return ports.SubmitReceipt{}, errors.New("submit response carries neither a job id nor a result")
	}

	return ports.SubmitReceipt{
		JobID:     domain.JobID(payload.JobID),
		Status:    payload.Status,
		Progress:  payload.Progress,
		VideoURL:  payload.VideoURL,
		ImageURLs: imageURLs,
	}, nil
}

func (c Client) JobStatus(ctx context.Context, id domain.JobID) (ports.JobUpdate, error) {
	if id == "" {
		return ports.JobUpdate{}, errors.New("job id is required")
	}

	endpoint, err := buildAPIURL(c.BaseURL, statusPathPrefix+url.PathEscape(string(id)))
	if err != nil {
		return ports.JobUpdate{}, err
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	httpReq, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.JobUpdate{}, fmt.Errorf("create job status request: %w", err)
	}

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return ports.JobUpdate{}, fmt.Errorf("fetch job status: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ports.JobUpdate{}, fmt.Errorf("fetch job status: %w", domain.ErrJobNotFound)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ports.JobUpdate{}, fmt.Errorf("fetch job status: %s", decodeAPIError(resp))
	}

	var payload statusResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return ports.JobUpdate{}, fmt.Errorf("decode job status response: %w", err)
	}

	return ports.JobUpdate{
		Status:    payload.Status,
		Progress:  payload.Progress,
		VideoURL:  payload.VideoURL,
		ImageURLs: collectImageURLs(payload.ImageURLs, "", payload.Variations),
	}, nil
}

// collectImageURLs flattens the three shapes the backend uses for image
// results: a plural image_urls list, a single image_url, or variation records.
func collectImageURLs(urls []string, single string, variations []variation) []string {
	if len(urls) > 0 {
		return urls
	}

	collected := make([]string, 0, len(variations)+1)
	if single != "" {
		collected = append(collected, single)
	}
	for _, v := range variations {
		if v.URL != "" {
			collected = append(collected, v.URL)
		}
	}
	if len(collected) == 0 {
		return nil
	}

	return collected
}

func (c Client) Health(ctx context.Context) (ports.HealthReport, error) {
	endpoint, err := buildAPIURL(c.BaseURL, healthPath)
	if err != nil {
		return ports.HealthReport{}, err
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	httpReq, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.HealthReport{}, fmt.Errorf("create health request: %w", err)
	}

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return ports.HealthReport{}, fmt.Errorf("fetch backend health: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ports.HealthReport{}, fmt.Errorf("fetch backend health: %s", decodeAPIError(resp))
	}

	var payload healthResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return ports.HealthReport{}, fmt.Errorf("decode health response: %w", err)
	}

	return ports.HealthReport{OK: payload.OK, Jobs: payload.Jobs}, nil
}

func appendAttachment(writer *multipart.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open attachment: %w", err)
	}
	defer func() { _ = file.Close() }()

	part, err := writer.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("encode attachment %s: %w", filepath.Base(path), err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("encode attachment %s: %w", filepath.Base(path), err)
	}

	return nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func decodeAPIError(resp *http.Response) string {
	var apiErr apiErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&apiErr); err != nil || apiErr.Detail == "" {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	return apiErr.Detail
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}

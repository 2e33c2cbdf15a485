package atcoder

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"acgarden/pkg/errors"
	"acgarden/pkg/logger"
)

// Client talks to the two remote collaborators: the AtCoder Problems
// submission API and the judge's submission pages.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	apiURL     string
	baseURL    string
	logger     logger.Logger
}

// NewClient creates a judge client with the given request timeout
func NewClient(timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{
			"User-Agent": "ac-garden (+https://github.com/ac-garden)",
			"Accept":     "application/json, text/html;q=0.9, */*;q=0.8",
		},
		apiURL:  SubmissionAPIURL,
		baseURL: BaseURL,
		logger:  log,
	}
}

// SetAPIURL overrides the submission list endpoint, used by tests
func (c *Client) SetAPIURL(u string) {
	c.apiURL = u
}

// SetBaseURL overrides the submission page base URL, used by tests
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// get performs a GET request with the configured headers
func (c *Client) get(rawURL string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.KindNetwork, err, "failed to create request for %s", rawURL)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    rawURL,
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"url":      rawURL,
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, errors.Wrapf(errors.KindNetwork, err, "request to %s failed", rawURL)
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      rawURL,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Newf(errors.KindNetwork, "%s returned status %d", rawURL, resp.StatusCode)
	}

	return resp, nil
}

// getJSON performs a GET request and decodes the JSON response body
func (c *Client) getJSON(rawURL string, target interface{}) error {
	resp, err := c.get(rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(errors.KindNetwork, err, "failed to read response from %s", rawURL)
	}

	if err := json.Unmarshal(body, target); err != nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          rawURL,
			"body_preview": preview,
		})
		return errors.Wrapf(errors.KindDecode, err, "malformed response from %s", rawURL)
	}
	return nil
}

// FetchSubmissions retrieves a user's complete submission history in one
// bulk request
func (c *Client) FetchSubmissions(userID string) ([]Submission, error) {
	endpoint := SubmissionsURL(c.apiURL, userID)

	c.logger.DebugWithFields("fetching submission list", map[string]interface{}{
		"user_id": userID,
		"url":     endpoint,
	})

	var submissions []Submission
	if err := c.getJSON(endpoint, &submissions); err != nil {
		return nil, err
	}

	c.logger.InfoWithFields("fetched submission list", map[string]interface{}{
		"user_id": userID,
		"count":   len(submissions),
	})
	return submissions, nil
}

// FetchSubmissionPage retrieves the HTML page of one submission
func (c *Client) FetchSubmissionPage(contestID string, submissionID int64) (string, error) {
	endpoint := SubmissionPageURL(c.baseURL, contestID, submissionID)

	resp, err := c.get(endpoint)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(errors.KindNetwork, err, "failed to read submission page %s", endpoint)
	}
	return string(body), nil
}

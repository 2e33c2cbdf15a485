package atcoder

import (
	"fmt"
	"net/url"
)

const (
	// Host is the judge host name, also the top-level directory of the
	// archive tree
	Host = "atcoder.jp"

	// BaseURL is the base URL for submission pages
	BaseURL = "https://" + Host

	// SubmissionAPIURL is the AtCoder Problems bulk submission endpoint
	SubmissionAPIURL = "https://kenkoooo.com/atcoder/atcoder-api/results"

	// SourceSelector is the CSS selector of the element holding the
	// submitted source on a submission page
	SourceSelector = "#submission-code"
)

// SubmissionsURL constructs the URL returning a user's full submission
// history from the given API endpoint
func SubmissionsURL(apiURL, userID string) string {
	params := url.Values{}
	params.Set("user", userID)
	return fmt.Sprintf("%s?%s", apiURL, params.Encode())
}

// SubmissionPageURL constructs the URL of one submission's page under
// the given judge base URL
func SubmissionPageURL(baseURL, contestID string, submissionID int64) string {
	return fmt.Sprintf("%s/contests/%s/submissions/%d", baseURL, contestID, submissionID)
}

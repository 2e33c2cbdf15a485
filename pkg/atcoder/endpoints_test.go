package atcoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionsURL(t *testing.T) {
	assert.Equal(t,
		"https://kenkoooo.com/atcoder/atcoder-api/results?user=tourist",
		SubmissionsURL(SubmissionAPIURL, "tourist"))
}

func TestSubmissionPageURL(t *testing.T) {
	assert.Equal(t,
		"https://atcoder.jp/contests/abc100/submissions/123456",
		SubmissionPageURL(BaseURL, "abc100", 123456))
}

func TestSubmissionKey(t *testing.T) {
	s := Submission{ContestID: "abc100", ProblemID: "abc100_a"}
	assert.Equal(t, "abc100_abc100_a", s.Key())
}

func TestIsAccepted(t *testing.T) {
	assert.True(t, (&Submission{Result: "AC"}).IsAccepted())
	assert.False(t, (&Submission{Result: "WA"}).IsAccepted())
	assert.False(t, (&Submission{Result: "TLE"}).IsAccepted())
}

package atcoder

import "fmt"

// ResultAccepted is the judge result denoting a fully correct submission
const ResultAccepted = "AC"

// Submission is one entry of the AtCoder Problems submission API response
type Submission struct {
	ID            int64   `json:"id"`
	EpochSecond   int64   `json:"epoch_second"`
	ProblemID     string  `json:"problem_id"`
	ContestID     string  `json:"contest_id"`
	UserID        string  `json:"user_id"`
	Language      string  `json:"language"`
	Point         float64 `json:"point"`
	Length        int64   `json:"length"`
	Result        string  `json:"result"`
	ExecutionTime *int64  `json:"execution_time"`
}

// IsAccepted reports whether the submission was judged fully correct
func (s *Submission) IsAccepted() bool {
	return s.Result == ResultAccepted
}

// Key returns the archive key identifying the problem this submission
// solves. At most one archive entry may exist per key.
func (s *Submission) Key() string {
	return fmt.Sprintf("%s_%s", s.ContestID, s.ProblemID)
}

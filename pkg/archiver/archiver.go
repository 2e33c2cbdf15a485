// Package archiver wires the archive pipeline together: index the
// existing tree, fetch the submission history, select what is new,
// then retrieve, write and commit each selected submission in order.
package archiver

import (
	"fmt"
	"time"

	"acgarden/pkg/archive"
	"acgarden/pkg/atcoder"
	"acgarden/pkg/config"
	"acgarden/pkg/logger"
	"acgarden/pkg/ratelimit"
	"acgarden/pkg/vcs"
)

const requestTimeout = 30 * time.Second

// Stats summarizes one archive run
type Stats struct {
	Fetched   int
	Selected  int
	Archived  int
	Skipped   int
	Committed int
}

// Archiver runs the archive pipeline for one configured service
type Archiver struct {
	client  *atcoder.Client
	limiter ratelimit.Limiter
	config  *config.Config
	logger  logger.Logger
}

// New creates an Archiver from configuration
func New(cfg *config.Config) *Archiver {
	log := logger.GetLogger()
	return &Archiver{
		client:  atcoder.NewClient(requestTimeout, log),
		limiter: ratelimit.NewInterval(cfg.Throttle.MinInterval()),
		config:  cfg,
		logger:  log,
	}
}

// SetClient replaces the judge client, used by tests
func (a *Archiver) SetClient(client *atcoder.Client) {
	a.client = client
}

// Run executes one archive run. Submissions are processed strictly one
// at a time: commits must stay linear on the repository head, and the
// page endpoint is throttled to one request per configured interval.
// Any error is fatal and aborts the run; the only recoverable condition
// is an empty source extraction, which skips that submission.
func (a *Archiver) Run() (*Stats, error) {
	root := a.config.AtCoder.RepositoryPath
	stats := &Stats{}

	archived, err := archive.ScanKeys(root)
	if err != nil {
		return stats, err
	}
	a.logger.InfoWithFields("scanned archive", map[string]interface{}{
		"root":          root,
		"archived_keys": len(archived),
	})

	submissions, err := a.client.FetchSubmissions(a.config.AtCoder.UserID)
	if err != nil {
		return stats, err
	}
	stats.Fetched = len(submissions)

	selected := archive.Select(submissions, archived)
	stats.Selected = len(selected)
	a.logger.InfoWithFields("selected submissions to archive", map[string]interface{}{
		"count": len(selected),
	})
	if len(selected) == 0 {
		return stats, nil
	}

	writer := archive.NewWriter(root, a.logger)

	var recorder *vcs.Recorder
	if vcs.HasRepository(root) {
		recorder, err = vcs.Open(root)
		if err != nil {
			return stats, err
		}
	} else {
		a.logger.WithField("root", root).Warn("no repository found, archiving files only")
	}

	for i := range selected {
		submission := &selected[i]
		if err := a.archiveOne(submission, writer, recorder, stats); err != nil {
			return stats, err
		}
	}

	a.logger.InfoWithFields("archive run finished", map[string]interface{}{
		"fetched":   stats.Fetched,
		"selected":  stats.Selected,
		"archived":  stats.Archived,
		"skipped":   stats.Skipped,
		"committed": stats.Committed,
	})
	return stats, nil
}

// archiveOne processes a single selected submission through retrieve,
// write and commit
func (a *Archiver) archiveOne(submission *atcoder.Submission, writer *archive.Writer, recorder *vcs.Recorder, stats *Stats) error {
	fields := map[string]interface{}{
		"submission_id": submission.ID,
		"contest_id":    submission.ContestID,
		"problem_id":    submission.ProblemID,
	}

	a.limiter.Wait()
	page, err := a.client.FetchSubmissionPage(submission.ContestID, submission.ID)
	// Stamp the throttle as soon as the request returns so the gap is
	// uniform whether or not the retrieval succeeded.
	a.limiter.Touch()
	if err != nil {
		return err
	}

	source, ok := atcoder.ExtractSource(page)
	if !ok {
		stats.Skipped++
		a.logger.WarnWithFields("empty source extraction, skipping submission", fields)
		return nil
	}

	sourcePath, metadataPath, err := writer.WriteEntry(submission, source)
	if err != nil {
		return err
	}
	stats.Archived++

	if recorder == nil {
		return nil
	}

	message := fmt.Sprintf("[AC] %s %s", submission.ContestID, submission.ProblemID)
	identity := vcs.Identity{
		Name:  submission.UserID,
		Email: a.config.AtCoder.UserEmail,
	}
	hash, err := recorder.Commit(
		[]string{sourcePath, metadataPath},
		identity,
		time.Unix(submission.EpochSecond, 0),
		message,
	)
	if err != nil {
		return err
	}
	stats.Committed++

	fields["commit"] = hash
	a.logger.InfoWithFields("committed archive entry", fields)
	return nil
}

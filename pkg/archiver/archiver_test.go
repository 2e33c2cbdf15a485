package archiver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acgarden/pkg/atcoder"
	"acgarden/pkg/config"
)

// mockJudge serves the submission list endpoint and submission pages
type mockJudge struct {
	server      *httptest.Server
	submissions []atcoder.Submission
	sources     map[int64]string
}

func newMockJudge(t *testing.T) *mockJudge {
	m := &mockJudge{sources: make(map[int64]string)}

	mux := http.NewServeMux()
	mux.HandleFunc("/results", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(m.submissions)
	})
	mux.HandleFunc("/contests/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 4 {
			http.NotFound(w, r)
			return
		}
		id, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		source, ok := m.sources[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `<html><body><pre id="submission-code">%s</pre></body></html>`, source)
	})

	m.server = httptest.NewServer(mux)
	t.Cleanup(m.server.Close)
	return m
}

func (m *mockJudge) client() *atcoder.Client {
	client := atcoder.NewClient(5*time.Second, nil)
	client.SetAPIURL(m.server.URL + "/results")
	client.SetBaseURL(m.server.URL)
	return client
}

func (m *mockJudge) add(id, epoch int64, contestID, problemID, language, result, source string) {
	m.submissions = append(m.submissions, atcoder.Submission{
		ID:          id,
		EpochSecond: epoch,
		ContestID:   contestID,
		ProblemID:   problemID,
		UserID:      "tourist",
		Language:    language,
		Result:      result,
	})
	m.sources[id] = source
}

func testConfig(root string) *config.Config {
	return &config.Config{
		AtCoder: config.ServiceConfig{
			RepositoryPath: root,
			UserID:         "tourist",
			UserEmail:      "tourist@example.com",
		},
		Throttle: config.ThrottleConfig{MinIntervalMillis: 1},
		Logging:  config.LoggingConfig{Level: "error"},
	}
}

func newTestArchiver(judge *mockJudge, root string) *Archiver {
	a := New(testConfig(root))
	a.SetClient(judge.client())
	return a
}

func commitLog(t *testing.T, root string) []*object.Commit {
	t.Helper()
	repo, err := git.PlainOpen(root)
	require.NoError(t, err)

	iter, err := repo.Log(&git.LogOptions{})
	require.NoError(t, err)

	var commits []*object.Commit
	require.NoError(t, iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, c)
		return nil
	}))
	return commits
}

func TestRunEndToEnd(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	judge := newMockJudge(t)
	judge.add(42, 1570000000, "abc100", "abc100_a", "C++17 (GCC 9.2.1)", "AC", "int main() { return 0; }")

	stats, err := newTestArchiver(judge, root).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Fetched)
	assert.Equal(t, 1, stats.Selected)
	assert.Equal(t, 1, stats.Archived)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 1, stats.Committed)

	source, err := os.ReadFile(filepath.Join(root, "atcoder.jp", "abc100", "abc100_a", "Main.cpp"))
	require.NoError(t, err)
	assert.Equal(t, "int main() { return 0; }", string(source))

	record, err := os.ReadFile(filepath.Join(root, "atcoder.jp", "abc100", "abc100_a", "submission.json"))
	require.NoError(t, err)
	var archived atcoder.Submission
	require.NoError(t, json.Unmarshal(record, &archived))
	assert.Equal(t, int64(42), archived.ID)

	commits := commitLog(t, root)
	require.Len(t, commits, 1)
	assert.Equal(t, "[AC] abc100 abc100_a", commits[0].Message)
	assert.Equal(t, "tourist", commits[0].Author.Name)
	assert.Equal(t, "tourist@example.com", commits[0].Author.Email)
	assert.Equal(t, int64(1570000000), commits[0].Author.When.Unix())
}

func TestRunIsIdempotent(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	judge := newMockJudge(t)
	judge.add(1, 1570000000, "abc100", "abc100_a", "Python3", "AC", "print(1)")
	judge.add(2, 1570000100, "abc101", "abc101_b", "Python3", "AC", "print(2)")

	stats, err := newTestArchiver(judge, root).Run()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Archived)
	require.Len(t, commitLog(t, root), 2)

	// A second run with the same remote history finds nothing new
	stats, err = newTestArchiver(judge, root).Run()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Selected)
	assert.Equal(t, 0, stats.Archived)
	assert.Len(t, commitLog(t, root), 2)
}

func TestRunArchivesNewestSubmissionPerProblem(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	judge := newMockJudge(t)
	judge.add(1, 1570000000, "abc100", "abc100_a", "Python3", "AC", "print('old')")
	judge.add(2, 1570000500, "abc100", "abc100_a", "Python3", "AC", "print('new')")

	stats, err := newTestArchiver(judge, root).Run()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Archived)

	source, err := os.ReadFile(filepath.Join(root, "atcoder.jp", "abc100", "abc100_a", "Main.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('new')", string(source))

	commits := commitLog(t, root)
	require.Len(t, commits, 1)
	assert.Equal(t, int64(1570000500), commits[0].Author.When.Unix())
}

func TestRunSkipsEmptySourceAndContinues(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	judge := newMockJudge(t)
	judge.add(1, 1570000200, "abc100", "abc100_a", "Python3", "AC", "")
	judge.add(2, 1570000100, "abc101", "abc101_b", "Python3", "AC", "print(2)")

	stats, err := newTestArchiver(judge, root).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Archived)
	assert.Equal(t, 1, stats.Committed)

	// No entry directory for the skipped submission
	_, err = os.Stat(filepath.Join(root, "atcoder.jp", "abc100"))
	assert.True(t, os.IsNotExist(err))

	commits := commitLog(t, root)
	require.Len(t, commits, 1)
	assert.Equal(t, "[AC] abc101 abc101_b", commits[0].Message)
}

func TestRunWithoutRepositoryArchivesFilesOnly(t *testing.T) {
	root := t.TempDir()

	judge := newMockJudge(t)
	judge.add(1, 1570000000, "abc100", "abc100_a", "Python3", "AC", "print(1)")

	stats, err := newTestArchiver(judge, root).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Archived)
	assert.Equal(t, 0, stats.Committed)
	assert.FileExists(t, filepath.Join(root, "atcoder.jp", "abc100", "abc100_a", "Main.py"))
}

func TestRunFailsOnListEndpointError(t *testing.T) {
	root := t.TempDir()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := atcoder.NewClient(5*time.Second, nil)
	client.SetAPIURL(server.URL + "/results")
	client.SetBaseURL(server.URL)

	a := New(testConfig(root))
	a.SetClient(client)

	_, err := a.Run()
	assert.Error(t, err)
}

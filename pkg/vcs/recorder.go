// Package vcs records archive entries as version-control commits. It is
// the only place aware of the repository format; the pipeline sees just
// HasRepository, Open and Commit.
package vcs

import (
	"os"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"acgarden/pkg/errors"
)

// Identity is the author and committer identity of an archive commit
type Identity struct {
	Name  string
	Email string
}

// HasRepository reports whether root contains version-control metadata.
// Without it the run proceeds as a plain file archive.
func HasRepository(root string) bool {
	info, err := os.Stat(filepath.Join(root, git.GitDirName))
	return err == nil && info.IsDir()
}

// Recorder stages and commits archive entries in one repository
type Recorder struct {
	root string
	repo *git.Repository
}

// Open opens the repository at root
func Open(root string) (*Recorder, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, errors.Wrapf(errors.KindRepository, err, "failed to open repository at %s", root)
	}
	return &Recorder{root: root, repo: repo}, nil
}

// Commit stages the given root-relative paths and creates one commit on
// the current head with author and committer set to the identity at the
// given time. On a repository with no commits yet the result is a
// parentless root commit. The new commit's hash is returned.
func (r *Recorder) Commit(paths []string, who Identity, when time.Time, message string) (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", errors.Wrap(errors.KindRepository, err, "failed to open worktree")
	}

	for _, path := range paths {
		if _, err := worktree.Add(filepath.ToSlash(path)); err != nil {
			return "", errors.Wrapf(errors.KindRepository, err, "failed to stage %s", path)
		}
	}

	signature := &object.Signature{
		Name:  who.Name,
		Email: who.Email,
		When:  when,
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author:    signature,
		Committer: signature,
	})
	if err != nil {
		return "", errors.Wrapf(errors.KindRepository, err, "failed to commit %q", message)
	}

	return hash.String(), nil
}

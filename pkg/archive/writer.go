package archive

import (
	"encoding/json"
	"os"
	"path/filepath"

	"acgarden/pkg/atcoder"
	"acgarden/pkg/errors"
	"acgarden/pkg/logger"
)

// Writer persists archive entries under the repository root
type Writer struct {
	root   string
	logger logger.Logger
}

// NewWriter creates a Writer rooted at the repository path
func NewWriter(root string, log logger.Logger) *Writer {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Writer{root: root, logger: log}
}

// EntryDir returns the directory of the submission's archive entry,
// relative to the repository root
func EntryDir(s *atcoder.Submission) string {
	return filepath.Join(atcoder.Host, s.ContestID, s.ProblemID)
}

// WriteEntry creates the archive entry for a submission: the source file
// under a language-derived name and the serialized submission record
// next to it. It returns the two file paths relative to the repository
// root, ready for staging. Writing is not transactional; a failure
// between the two writes leaves a partial entry and aborts the run.
func (w *Writer) WriteEntry(s *atcoder.Submission, source string) (sourcePath, metadataPath string, err error) {
	relDir := EntryDir(s)
	dir := filepath.Join(w.root, relDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", errors.Wrapf(errors.KindFilesystem, err, "failed to create %s", dir)
	}

	fileName := LanguageFileName(s.Language)
	sourcePath = filepath.Join(relDir, fileName)
	if err := os.WriteFile(filepath.Join(w.root, sourcePath), []byte(source), 0644); err != nil {
		return "", "", errors.Wrapf(errors.KindFilesystem, err, "failed to write %s", sourcePath)
	}

	record, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", "", errors.Wrap(errors.KindDecode, err, "failed to serialize submission record")
	}

	metadataPath = filepath.Join(relDir, MetadataFileName)
	if err := os.WriteFile(filepath.Join(w.root, metadataPath), record, 0644); err != nil {
		return "", "", errors.Wrapf(errors.KindFilesystem, err, "failed to write %s", metadataPath)
	}

	w.logger.InfoWithFields("archived submission", map[string]interface{}{
		"contest_id": s.ContestID,
		"problem_id": s.ProblemID,
		"file":       sourcePath,
	})
	return sourcePath, metadataPath, nil
}

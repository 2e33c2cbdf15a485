package archive

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"acgarden/pkg/atcoder"
	"acgarden/pkg/errors"
)

// MetadataFileName is the serialized submission record written next to
// the source file of every archive entry
const MetadataFileName = "submission.json"

// ScanKeys walks the archive tree under root and returns the set of
// archive keys already present, recovered from every metadata record
// found. A missing root means a first run and yields an empty set. A
// metadata record that cannot be decoded is fatal: silently skipping it
// would re-archive the entry and double-commit.
func ScanKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return keys, nil
	}
	if err != nil {
		return nil, errors.Wrapf(errors.KindFilesystem, err, "failed to stat archive root %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.KindFilesystem, "archive root %s is not a directory", root)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(errors.KindFilesystem, err, "failed to walk %s", path)
		}
		if d.IsDir() || d.Name() != MetadataFileName {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(errors.KindFilesystem, err, "failed to read %s", path)
		}

		var submission atcoder.Submission
		if err := json.Unmarshal(data, &submission); err != nil {
			return errors.Wrapf(errors.KindDecode, err, "malformed metadata record %s", path)
		}

		keys[submission.Key()] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return keys, nil
}

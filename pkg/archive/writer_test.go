package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acgarden/pkg/atcoder"
)

func TestWriteEntry(t *testing.T) {
	root := t.TempDir()
	writer := NewWriter(root, nil)

	executionTime := int64(17)
	sub := &atcoder.Submission{
		ID:            123456,
		EpochSecond:   1570000000,
		ProblemID:     "abc100_a",
		ContestID:     "abc100",
		UserID:        "tourist",
		Language:      "C++17 (GCC 9.2.1)",
		Point:         100,
		Length:        512,
		Result:        "AC",
		ExecutionTime: &executionTime,
	}

	sourcePath, metadataPath, err := writer.WriteEntry(sub, "int main() { return 0; }\n")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("atcoder.jp", "abc100", "abc100_a", "Main.cpp"), sourcePath)
	assert.Equal(t, filepath.Join("atcoder.jp", "abc100", "abc100_a", "submission.json"), metadataPath)

	source, err := os.ReadFile(filepath.Join(root, sourcePath))
	require.NoError(t, err)
	assert.Equal(t, "int main() { return 0; }\n", string(source))

	record, err := os.ReadFile(filepath.Join(root, metadataPath))
	require.NoError(t, err)

	var loaded atcoder.Submission
	require.NoError(t, json.Unmarshal(record, &loaded))
	assert.Equal(t, *sub, loaded)

	// Pretty-printed, not a single line
	assert.Contains(t, string(record), "\n  \"id\": 123456")
}

func TestWriteEntryUnknownLanguage(t *testing.T) {
	root := t.TempDir()
	writer := NewWriter(root, nil)

	sub := &atcoder.Submission{
		ID:        1,
		ContestID: "abc100",
		ProblemID: "abc100_a",
		Language:  "Zig",
		Result:    "AC",
	}

	sourcePath, _, err := writer.WriteEntry(sub, "pub fn main() void {}")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("atcoder.jp", "abc100", "abc100_a", "Main.txt"), sourcePath)
}

package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscovery(t *testing.T) {
	basePath := "/test/base"
	discovery := NewDiscovery(basePath)

	assert.NotNil(t, discovery)
	assert.Equal(t, basePath, discovery.basePath)
}

func TestFindTranscripts(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		wantIDs []string
	}{
		{
			name:    "sorted by applicant id",
			files:   []string{"1000000003.xlsx", "1000000001.xlsx", "1000000002.XLSX"},
			wantIDs: []string{"1000000001", "1000000002", "1000000003"},
		},
		{
			name:    "other files ignored",
			files:   []string{"1000000001.xlsx", "notes.txt", "roster.csv", "old.xls"},
			wantIDs: []string{"1000000001"},
		},
		{
			name:    "lock files ignored",
			files:   []string{"~$1000000001.xlsx", "1000000001.xlsx"},
			wantIDs: []string{"1000000001"},
		},
		{
			name:    "empty directory",
			files:   nil,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			dir := filepath.Join(tmpDir, "transcripts")
			require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.xlsx"), 0755))

			for _, name := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("test content"), 0644))
			}

			transcripts, err := NewDiscovery(tmpDir).FindTranscripts("transcripts")
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, IDs(transcripts))

			for _, tr := range transcripts {
				assert.Equal(t, filepath.Join(dir, tr.ID+filepath.Ext(tr.Path)), tr.Path)
				assert.Equal(t, int64(len("test content")), tr.Size)
			}
		})
	}
}

func TestFindTranscripts_AbsoluteDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.xlsx"), nil, 0644))

	transcripts, err := NewDiscovery("/unused").FindTranscripts(dir)
	require.NoError(t, err)
	require.Len(t, transcripts, 1)
	assert.Equal(t, filepath.Join(dir, "A.xlsx"), transcripts[0].Path)
}

func TestFindTranscripts_DuplicateApplicantID(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.xlsx"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.XLSX"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "B.xlsx"), nil, 0644))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	if len(entries) < 3 {
		t.Skip("file system folds name case")
	}

	_, err = NewDiscovery("").FindTranscripts(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `both map to applicant id "A"`)
}

func TestFindTranscripts_MissingDir(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).FindTranscripts("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read directory")
}

func TestIndex(t *testing.T) {
	index := Index([]Transcript{{ID: "A", Path: "/a.xlsx"}, {ID: "B", Path: "/b.xlsx"}})
	assert.Len(t, index, 2)
	assert.Equal(t, "/b.xlsx", index["B"].Path)
}

func TestReadApplicantIDs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr string
	}{
		{
			name:    "one id per line",
			content: "B\nA\nC\n",
			want:    []string{"B", "A", "C"},
		},
		{
			name:    "blanks and comments skipped",
			content: "# roster\n\n  A  \r\nB\n",
			want:    []string{"A", "B"},
		},
		{
			name:    "duplicate rejected",
			content: "A\nB\nA\n",
			wantErr: `applicant id "A" already listed on line 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ids.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			ids, err := ReadApplicantIDs(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids)
		})
	}
}

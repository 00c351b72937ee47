package files

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gradecli/internal/config"
)

// Transcript represents one applicant workbook found on disk
type Transcript struct {
	ID      string
	Path    string
	Size    int64
	ModTime time.Time
}

// Discovery provides transcript discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// FindTranscripts finds all applicant workbooks in dir, sorted by applicant id.
// Office lock files ("~$...") and subdirectories are ignored. Two workbooks
// whose names differ only in the extension's case would share an applicant id
// and are rejected.
func (d *Discovery) FindTranscripts(dir string) ([]Transcript, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var transcripts []Transcript
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		if !strings.EqualFold(ext, config.TranscriptExtension) || strings.HasPrefix(name, "~$") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		id := strings.TrimSuffix(name, ext)
		if other, dup := seen[id]; dup {
			return nil, fmt.Errorf("workbooks %s and %s both map to applicant id %q", other, name, id)
		}
		seen[id] = name

		transcripts = append(transcripts, Transcript{
			ID:      id,
			Path:    filepath.Join(fullPath, name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(transcripts, func(i, j int) bool {
		return transcripts[i].ID < transcripts[j].ID
	})

	return transcripts, nil
}

// IDs returns the applicant ids of transcripts in the same order.
func IDs(transcripts []Transcript) []string {
	ids := make([]string, len(transcripts))
	for i, t := range transcripts {
		ids[i] = t.ID
	}
	return ids
}

// Index maps applicant id to transcript.
func Index(transcripts []Transcript) map[string]Transcript {
	index := make(map[string]Transcript, len(transcripts))
	for _, t := range transcripts {
		index[t.ID] = t
	}
	return index
}

// ReadApplicantIDs reads one applicant id per line. Blank lines and lines
// starting with "#" are skipped. Duplicate ids are rejected.
func ReadApplicantIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open id list %s: %w", path, err)
	}
	defer f.Close()

	var ids []string
	seen := make(map[string]int)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		id := strings.TrimSpace(scanner.Text())
		if id == "" || strings.HasPrefix(id, "#") {
			continue
		}
		if first, dup := seen[id]; dup {
			return nil, fmt.Errorf("%s:%d: applicant id %q already listed on line %d", path, line, id, first)
		}
		seen[id] = line
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read id list %s: %w", path, err)
	}

	return ids, nil
}

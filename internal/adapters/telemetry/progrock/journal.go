package progrock

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/zerr"
	"google.golang.org/protobuf/encoding/protojson"
)

// Journal is a progrock.Writer that appends every status update to a file
// as one JSON line, so a run can be inspected after the job finished.
type Journal struct {
	mu   sync.Mutex
	file *os.File
}

// OpenJournal opens path for appending, creating it and its parent.
func OpenJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create journal directory"), "path", path)
	}
	//nolint:gosec // path comes from the operator's settings
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.FilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open journal"), "path", path)
	}
	return &Journal{file: file}, nil
}

// WriteStatus implements progrock.Writer.
func (j *Journal) WriteStatus(update *progrock.StatusUpdate) error {
	line, err := protojson.Marshal(update)
	if err != nil {
		return zerr.Wrap(err, "failed to encode status update")
	}
	line = append(line, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return nil
	}
	_, err = j.file.Write(line)
	return err
}

// Close implements progrock.Writer.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	return err
}

var _ progrock.Writer = (*Journal)(nil)

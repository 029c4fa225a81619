package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/signupdesk/signupdesk/backend/internal/submission"
)

// FileRepo stores the whole record collection as a pretty-printed JSON array in
// a single file. Every mutation reads the full file and rewrites it; the mutex
// serializes those cycles within one process.
type FileRepo struct {
	mu   sync.Mutex
	path string
}

// NewFileRepo opens the store at path, creating it holding [] when missing.
func NewFileRepo(path string) (*FileRepo, error) {
	f := &FileRepo{path: path}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := f.Save(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", submission.ErrStorageRead, err)
	}
	return f, nil
}

// Path returns the backing file location.
func (f *FileRepo) Path() string { return f.path }

// Load reads the entire collection.
func (f *FileRepo) Load() ([]submission.Record, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", submission.ErrStorageRead, err)
	}
	var records []submission.Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", submission.ErrStorageRead, f.path, err)
	}
	return records, nil
}

// Save overwrites the file with records, indented two spaces. The data is
// written to a sibling temp file and renamed into place.
func (f *FileRepo) Save(records []submission.Record) error {
	if records == nil {
		records = []submission.Record{}
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", submission.ErrStorageWrite, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", submission.ErrStorageWrite, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", submission.ErrStorageWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", submission.ErrStorageWrite, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", submission.ErrStorageWrite, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("%w: %v", submission.ErrStorageWrite, err)
	}
	return nil
}

func (f *FileRepo) List(ctx context.Context) ([]submission.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Load()
}

func (f *FileRepo) Insert(ctx context.Context, rec *submission.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	records, err := f.Load()
	if err != nil {
		return err
	}
	if containsID(records, rec.ID) {
		return submission.ErrDuplicateID
	}
	return f.Save(append(records, *rec))
}

func (f *FileRepo) DeleteMany(ctx context.Context, ids []string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records, err := f.Load()
	if err != nil {
		return 0, err
	}
	kept, removed := without(records, ids)
	if err := f.Save(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func (f *FileRepo) Ping(ctx context.Context) error {
	_, err := f.List(ctx)
	return err
}

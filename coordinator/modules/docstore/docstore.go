package docstore

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/juju/fslock"
)

// DocumentType partitions the byte store, the platform keeps originals
// and signed results apart.
type DocumentType string

const (
	DocumentTypeOriginal = DocumentType("original")
	DocumentTypeSigned   = DocumentType("signed")
)

// Storage is the document byte storage collaborator. The coordinator
// never interprets document bytes, it only moves them between the
// prepare/embed service and this store.
type Storage interface {
	Read(documentType DocumentType, id string) ([]byte, error)
	Save(documentType DocumentType, id string, data []byte) error
}

var _ Storage = (*FileStorage)(nil)

const defaultLockFile = "/tmp/cardroom_docstore_lock"

// FileStorage keeps documents on local disk under per-type directories.
// Writes go through a temp file plus rename, guarded by a file lock so
// concurrent daemon processes on one host do not interleave.
type FileStorage struct {
	baseDir  string
	lockFile *fslock.Lock
}

func NewFileStorage(baseDir string, lockFilename ...string) (*FileStorage, error) {
	fs := &FileStorage{baseDir: baseDir}

	if len(lockFilename) > 0 && lockFilename[0] != "" {
		fs.lockFile = fslock.New(lockFilename[0])
	} else {
		fs.lockFile = fslock.New(defaultLockFile)
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create document storage dir: %w", err)
	}

	return fs, nil
}

func (fs *FileStorage) documentPath(documentType DocumentType, id string) string {
	return filepath.Join(fs.baseDir, string(documentType), id)
}

func (fs *FileStorage) Read(documentType DocumentType, id string) ([]byte, error) {
	data, err := ioutil.ReadFile(fs.documentPath(documentType, id))
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s/%s: %w", documentType, id, err)
	}

	return data, nil
}

func (fs *FileStorage) Save(documentType DocumentType, id string, data []byte) error {
	if err := fs.lockFile.Lock(); err != nil {
		return fmt.Errorf("failed to lock document storage: %w", err)
	}
	defer fs.lockFile.Unlock()

	dir := filepath.Join(fs.baseDir, string(documentType))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create document type dir: %w", err)
	}

	tmpPath := filepath.Join(dir, uuid.New().String()+".tmp")
	if err := ioutil.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write a document temp file: %w", err)
	}

	if err := os.Rename(tmpPath, fs.documentPath(documentType, id)); err != nil {
		return fmt.Errorf("failed to move a document into place: %w", err)
	}

	return nil
}

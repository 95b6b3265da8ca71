package printing

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PDFStorage defines the interface for storing and retrieving rendered
// billing documents
type PDFStorage interface {
	// Store saves a PDF file and returns its path/URL
	Store(ctx context.Context, req *StoreRequest) (*StoreResult, error)
	// Get retrieves a PDF file by its path
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes a PDF file
	Delete(ctx context.Context, path string) error
	// CleanupOlderThan removes files older than the specified duration
	CleanupOlderThan(ctx context.Context, age time.Duration) (int, error)
	// GetURL returns the accessible URL for a stored PDF
	GetURL(path string) string
}

// StoreRequest contains the parameters for storing a PDF
type StoreRequest struct {
	// Kind groups documents in storage, e.g. "invoices" or "receipts"
	Kind string
	// Number is the document's display number, used as the file name
	Number string
	// PDFData is the raw PDF content
	PDFData []byte
}

// StoreResult contains the result of storing a PDF
type StoreResult struct {
	// Path is the storage path (relative to base)
	Path string
	// URL is the accessible URL for the PDF
	URL string
	// Size is the file size in bytes
	Size int64
}

// FileSystemStorageConfig contains configuration for file system storage
type FileSystemStorageConfig struct {
	// BasePath is the root directory for PDF storage
	BasePath string
	// BaseURL is the URL prefix for accessing PDFs
	BaseURL string
	// Logger for operations
	Logger *zap.Logger
}

// FileSystemStorage stores PDFs on the local file system
type FileSystemStorage struct {
	config *FileSystemStorageConfig
	logger *zap.Logger
}

// NewFileSystemStorage creates a new file system based PDF storage
func NewFileSystemStorage(config *FileSystemStorageConfig) (*FileSystemStorage, error) {
	if config == nil {
		config = &FileSystemStorageConfig{}
	}
	if config.BasePath == "" {
		config.BasePath = "/data/documents"
	}
	if config.BaseURL == "" {
		config.BaseURL = "/api/v1/documents/files"
	}

	if err := os.MkdirAll(config.BasePath, 0755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed,
			fmt.Sprintf("failed to create storage directory: %s", config.BasePath), err)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileSystemStorage{
		config: config,
		logger: logger,
	}, nil
}

// Store writes the PDF under <base>/<kind>/<number>.pdf
func (s *FileSystemStorage) Store(ctx context.Context, req *StoreRequest) (*StoreResult, error) {
	if req == nil || len(req.PDFData) == 0 {
		return nil, NewRenderError(ErrCodeStorageFailed, "no PDF data to store", nil)
	}
	kind := sanitizePathSegment(req.Kind)
	if kind == "" {
		kind = "misc"
	}
	name := sanitizePathSegment(req.Number)
	if name == "" {
		return nil, NewRenderError(ErrCodeStorageFailed, "document number is required", nil)
	}

	dir := filepath.Join(s.config.BasePath, kind)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to create directory: "+dir, err)
	}

	relPath := filepath.Join(kind, name+".pdf")
	fullPath := filepath.Join(s.config.BasePath, relPath)
	if err := os.WriteFile(fullPath, req.PDFData, 0644); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to write PDF file", err)
	}

	s.logger.Info("PDF stored",
		zap.String("path", relPath),
		zap.Int("bytes", len(req.PDFData)))

	return &StoreResult{
		Path: relPath,
		URL:  s.GetURL(relPath),
		Size: int64(len(req.PDFData)),
	}, nil
}

// Get opens a stored PDF for reading
func (s *FileSystemStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewRenderError(ErrCodeStorageFailed, "PDF not found: "+path, err)
		}
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to open PDF", err)
	}
	return f, nil
}

// Delete removes a stored PDF
func (s *FileSystemStorage) Delete(ctx context.Context, path string) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return NewRenderError(ErrCodeStorageFailed, "failed to delete PDF", err)
	}
	return nil
}

// CleanupOlderThan removes stored PDFs older than the given age
func (s *FileSystemStorage) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age)
	removed := 0

	err := filepath.Walk(s.config.BasePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if info.IsDir() || !strings.HasSuffix(path, ".pdf") {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err == nil {
				removed++
			}
		}
		return nil
	})
	if err != nil {
		return removed, NewRenderError(ErrCodeStorageFailed, "cleanup walk failed", err)
	}

	if removed > 0 {
		s.logger.Info("cleaned up old PDFs", zap.Int("removed", removed))
	}
	return removed, nil
}

// GetURL returns the accessible URL for a stored path
func (s *FileSystemStorage) GetURL(path string) string {
	return strings.TrimSuffix(s.config.BaseURL, "/") + "/" + filepath.ToSlash(path)
}

// resolve joins the path against the base and refuses traversal outside it
func (s *FileSystemStorage) resolve(path string) (string, error) {
	fullPath := filepath.Join(s.config.BasePath, path)
	base, err := filepath.Abs(s.config.BasePath)
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "invalid base path", err)
	}
	abs, err := filepath.Abs(fullPath)
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "invalid path", err)
	}
	if !strings.HasPrefix(abs, base+string(os.PathSeparator)) {
		return "", NewRenderError(ErrCodeStorageFailed, "path escapes storage root", nil)
	}
	return abs, nil
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	segment = strings.ReplaceAll(segment, "/", "-")
	segment = strings.ReplaceAll(segment, "\\", "-")
	segment = strings.ReplaceAll(segment, "..", "-")
	return segment
}

// Package services holds collaborators that live outside the database:
// currently the public upload store backing project images.
package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// uploadsPrefix is the root-relative prefix recorded in the database for
// every stored file.
const uploadsPrefix = "/uploads/"

// UploadStore saves multipart uploads under <publicDir>/uploads and hands
// back the root-relative path stored in the database. Removal resolves
// that public path against publicDir again.
type UploadStore struct {
	publicDir string
	logger    zerolog.Logger
}

func NewUploadStore(publicDir string) *UploadStore {
	logger := log.With().Str("component", "uploadStore").Str("publicDir", publicDir).Logger()
	return &UploadStore{publicDir: publicDir, logger: logger}
}

// Save copies one uploaded file into the uploads area under a generated
// name and returns its public path (e.g. /uploads/<uuid>.png).
func (s *UploadStore) Save(header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %q: %w", header.Filename, err)
	}
	defer src.Close()

	uploadsDir := filepath.Join(s.publicDir, "uploads")
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads directory: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(uploadsDir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return uploadsPrefix + name, nil
}

// Remove deletes the backing file for a stored public path, best-effort.
// The database record is the authoritative state, so a missing file is
// not an error and any other failure is logged, never escalated.
func (s *UploadStore) Remove(publicPath string) {
	if !strings.HasPrefix(publicPath, uploadsPrefix) {
		s.logger.Warn().Str("path", publicPath).Msg("refusing to remove file outside uploads area")
		return
	}

	// Base strips any traversal the stored path could smuggle in.
	name := filepath.Base(publicPath)
	realPath := filepath.Join(s.publicDir, "uploads", name)

	if err := os.Remove(realPath); err != nil {
		if os.IsNotExist(err) {
			return
		}
		s.logger.Error().Err(err).Str("path", realPath).Msg("failed to remove upload file")
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/rs/zerolog/log"
)

// ExportService downloads the server-rendered CSV export.
type ExportService struct {
	session *SessionService
}

// NewExportService creates a new ExportService
func NewExportService(session *SessionService) *ExportService {
	return &ExportService{session: session}
}

// Download fetches the CSV export and returns the raw bytes.
func (s *ExportService) Download(ctx context.Context) ([]byte, error) {
	client, err := s.session.AuthedClient()
	if err != nil {
		return nil, err
	}
	data, err := client.ExportCSV(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.session.Invalidate()
		}
		return nil, err
	}
	return data, nil
}

// DownloadToFile fetches the CSV export and writes it to path.
func (s *ExportService) DownloadToFile(ctx context.Context, path string) error {
	data, err := s.Download(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	log.Info().Str("path", path).Int("bytes", len(data)).Msg("Exported expenses")
	return nil
}

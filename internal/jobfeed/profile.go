package jobfeed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/resume"
	"github.com/spigell/job-radar/internal/storage"
)

// IngestResume parses an uploaded file and stores it as the user's only resume.
func (s *Service) IngestResume(ctx context.Context, userID, fileName, mimeType string, data []byte) (*resume.Resume, error) {
	userID = orDefaultUser(userID)

	r, err := resume.Ingest(userID, fileName, mimeType, data, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.SetResume(ctx, userID, r); err != nil {
		return nil, fmt.Errorf("store resume: %w", err)
	}

	s.logger.Info("resume stored",
		zap.String("user_id", userID),
		zap.String("file_type", r.FileType),
		zap.Int("text_length", len(r.Text)),
		zap.Strings("skills", r.Info.Skills),
	)
	return r, nil
}

// SetResumeText stores plain resume text for the user.
func (s *Service) SetResumeText(ctx context.Context, userID, text string) (*resume.Resume, error) {
	userID = orDefaultUser(userID)

	r, err := resume.FromText(userID, text, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.SetResume(ctx, userID, r); err != nil {
		return nil, fmt.Errorf("store resume: %w", err)
	}
	return r, nil
}

// Resume returns the user's resume or ErrNotFound.
func (s *Service) Resume(ctx context.Context, userID string) (*resume.Resume, error) {
	return s.store.GetResume(ctx, orDefaultUser(userID))
}

// TrackApplication validates in and records it for the user.
func (s *Service) TrackApplication(ctx context.Context, userID string, in storage.NewApplication) (*storage.Application, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: missing required fields: %w", ErrInvalidInput, err)
	}
	return s.store.AddApplication(ctx, orDefaultUser(userID), in)
}

// UpdateApplicationStatus moves an application to status.
func (s *Service) UpdateApplicationStatus(ctx context.Context, userID, appID, status string) (*storage.Application, error) {
	return s.store.UpdateApplicationStatus(ctx, orDefaultUser(userID), appID, storage.Status(status))
}

// Applications lists the user's applications, newest first, optionally
// filtered by status, with counts per status.
func (s *Service) Applications(ctx context.Context, userID, status string) ([]*storage.Application, storage.Stats, error) {
	var filter storage.Status
	if status != "" {
		parsed, err := storage.ParseStatus(status)
		if err != nil {
			return nil, storage.Stats{}, err
		}
		filter = parsed
	}

	apps, err := s.store.GetApplications(ctx, orDefaultUser(userID))
	if err != nil {
		return nil, storage.Stats{}, err
	}

	list, stats := storage.Summarize(apps, filter)
	return list, stats, nil
}

// ClearApplications removes every application of the user.
func (s *Service) ClearApplications(ctx context.Context, userID string) error {
	return s.store.ClearApplications(ctx, orDefaultUser(userID))
}

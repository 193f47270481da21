package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/ulticlub/roster-service/metrics"
	"github.com/ulticlub/roster-service/models"
	"github.com/ulticlub/roster-service/storage"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// optionalString trims s and maps the empty result to nil.
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// parseID turns a raw identifier into a UUID, reporting problems against field.
func parseID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, newValidationError(field, "is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, newValidationError(field, "must be a valid UUID")
	}
	return id, nil
}

// isUUID is an ozzo-validation rule body; empty values are left to validation.Required.
func isUUID(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return errors.New("must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := uuid.Parse(s); err != nil {
		return errors.New("must be a valid UUID")
	}
	return nil
}

func requireAdmin(caller models.Caller) error {
	if !caller.Authenticated() {
		return ErrAuthenticationRequired
	}
	if !caller.IsAdmin() {
		return ErrForbiddenOperation
	}
	return nil
}

// storageError logs err and wraps it with ErrStorage so callers see a single kind.
// Failures caused by a cancelled context are not logged.
func storageError(ctx context.Context, logger *slog.Logger, op string, err error, attrs ...slog.Attr) error {
	if ctx.Err() == nil {
		args := []any{slog.String("operation", op), slog.Any("error", err)}
		for _, a := range attrs {
			args = append(args, a)
		}
		logger.ErrorContext(ctx, "storage operation failed", args...)
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrDuplicateAssignment):
		return metrics.OutcomeDuplicate
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrValidationFailed):
		return metrics.OutcomeInvalid
	case errors.Is(err, ErrForbiddenOperation):
		return metrics.OutcomeForbidden
	default:
		return metrics.OutcomeError
	}
}

func populatePlayerPhotoURL(player *models.Player, uploader storage.FileUploader) {
	if player == nil || player.PhotoKey == nil || *player.PhotoKey == "" || uploader == nil {
		return
	}
	if url := uploader.GetPublicURL(*player.PhotoKey); url != "" {
		player.PhotoURL = &url
	}
}

func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("unsupported image content type: %q", contentType)
	}
}

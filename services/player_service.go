package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"github.com/ulticlub/roster-service/models"
	"github.com/ulticlub/roster-service/repositories"
	"github.com/ulticlub/roster-service/storage"
)

const (
	minJerseyNumber     = 0
	maxJerseyNumber     = 99
	minGraduationYear   = 1900
	maxGraduationYear   = 2200
	maxPlayerNameLength = 100
)

// NumericText is a number as typed into a form. It accepts a JSON string or number
// and is only converted to an int by PlayerInput.Parse.
type NumericText string

func (n *NumericText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericText(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = NumericText(num.String())
	return nil
}

func (n NumericText) intValue() (*int, error) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, errors.New("must be a whole number")
	}
	return &v, nil
}

func intBetween(lo, hi int) validation.RuleFunc {
	return func(value interface{}) error {
		n, ok := value.(NumericText)
		if !ok {
			return errors.New("must be a number")
		}
		v, err := n.intValue()
		if err != nil {
			return err
		}
		if v != nil && (*v < lo || *v > hi) {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

// PlayerInput is the raw player form. Parse turns it into a typed player.
type PlayerInput struct {
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	StudentID      string      `json:"studentId,omitempty"`
	Gender         string      `json:"gender,omitempty"`
	Position       string      `json:"position,omitempty"`
	Experience     string      `json:"experience,omitempty"`
	JerseyNumber   NumericText `json:"jerseyNumber,omitempty"`
	GraduationYear NumericText `json:"graduationYear,omitempty"`
	IsActive       *bool       `json:"isActive,omitempty"`
}

// PlayerDraft is a validated PlayerInput.
type PlayerDraft struct {
	Name           string
	Email          string
	StudentID      *string
	Gender         models.Gender
	Position       models.PlayerPosition
	Experience     models.Experience
	JerseyNumber   *int
	GraduationYear *int
	IsActive       *bool
}

func (in PlayerInput) Parse() (*PlayerDraft, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Gender = strings.ToLower(strings.TrimSpace(in.Gender))
	in.Position = strings.ToLower(strings.TrimSpace(in.Position))
	in.Experience = strings.ToLower(strings.TrimSpace(in.Experience))

	err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, maxPlayerNameLength)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Gender, validation.In(
			string(models.GenderMale), string(models.GenderFemale), string(models.GenderOther))),
		validation.Field(&in.Position, validation.In(rosterPositions...)),
		validation.Field(&in.Experience, validation.In(
			string(models.ExperienceBeginner), string(models.ExperienceIntermediate),
			string(models.ExperienceAdvanced), string(models.ExperienceExpert))),
		validation.Field(&in.JerseyNumber, validation.By(intBetween(minJerseyNumber, maxJerseyNumber))),
		validation.Field(&in.GraduationYear, validation.By(intBetween(minGraduationYear, maxGraduationYear))),
	)
	if err != nil {
		return nil, asValidationError(err)
	}

	jersey, _ := in.JerseyNumber.intValue()
	gradYear, _ := in.GraduationYear.intValue()
	draft := &PlayerDraft{
		Name:           in.Name,
		Email:          in.Email,
		StudentID:      optionalString(in.StudentID),
		Gender:         models.GenderOther,
		Position:       models.PositionAny,
		Experience:     models.ExperienceBeginner,
		JerseyNumber:   jersey,
		GraduationYear: gradYear,
		IsActive:       in.IsActive,
	}
	if in.Gender != "" {
		draft.Gender = models.Gender(in.Gender)
	}
	if in.Position != "" {
		draft.Position = models.PlayerPosition(in.Position)
	}
	if in.Experience != "" {
		draft.Experience = models.Experience(in.Experience)
	}
	return draft, nil
}

func (d *PlayerDraft) applyTo(p *models.Player) {
	p.Name = d.Name
	p.Email = d.Email
	p.StudentID = d.StudentID
	p.Gender = d.Gender
	p.Position = d.Position
	p.Experience = d.Experience
	p.JerseyNumber = d.JerseyNumber
	p.GraduationYear = d.GraduationYear
	if d.IsActive != nil {
		p.IsActive = *d.IsActive
	}
}

type PlayerService interface {
	CreatePlayer(ctx context.Context, caller models.Caller, input PlayerInput) (*models.Player, error)
	GetPlayer(ctx context.Context, id string) (*models.Player, error)
	ListPlayers(ctx context.Context, filter models.PlayerFilter) ([]*models.Player, error)
	UpdatePlayer(ctx context.Context, caller models.Caller, id string, input PlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, caller models.Caller, id string) error
	UploadPhoto(ctx context.Context, caller models.Caller, id string, contentType string, r io.Reader) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

// NewPlayerService builds the player directory service. uploader may be nil, in which
// case photo uploads are rejected.
func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader, logger *slog.Logger) PlayerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &playerService{
		playerRepo: playerRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, caller models.Caller, input PlayerInput) (*models.Player, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	draft, err := input.Parse()
	if err != nil {
		return nil, err
	}

	player := &models.Player{IsActive: true, CreatedBy: caller.Actor(), UpdatedBy: caller.Actor()}
	draft.applyTo(player)

	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, s.mapPlayerWriteError(ctx, "create player", err)
	}
	s.logger.InfoContext(ctx, "player created", slog.String("player_id", player.ID.String()))
	return player, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	playerID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, storageError(ctx, s.logger, "get player", err, slog.String("player_id", id))
	}
	populatePlayerPhotoURL(player, s.uploader)
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context, filter models.PlayerFilter) ([]*models.Player, error) {
	players, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, storageError(ctx, s.logger, "list players", err)
	}
	for _, p := range players {
		populatePlayerPhotoURL(p, s.uploader)
	}
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, caller models.Caller, id string, input PlayerInput) (*models.Player, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	playerID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}
	draft, err := input.Parse()
	if err != nil {
		return nil, err
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, storageError(ctx, s.logger, "get player", err, slog.String("player_id", id))
	}
	draft.applyTo(player)
	player.UpdatedBy = caller.Actor()

	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, s.mapPlayerWriteError(ctx, "update player", err)
	}
	populatePlayerPhotoURL(player, s.uploader)
	return player, nil
}

// DeletePlayer removes the player and, through the store's cascade, their roster entries.
func (s *playerService) DeletePlayer(ctx context.Context, caller models.Caller, id string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	playerID, err := parseID("id", id)
	if err != nil {
		return err
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return storageError(ctx, s.logger, "get player", err, slog.String("player_id", id))
	}
	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return storageError(ctx, s.logger, "delete player", err, slog.String("player_id", id))
	}
	if player.PhotoKey != nil {
		s.deletePhoto(ctx, *player.PhotoKey)
	}
	s.logger.InfoContext(ctx, "player deleted", slog.String("player_id", id))
	return nil
}

func (s *playerService) UploadPhoto(ctx context.Context, caller models.Caller, id string, contentType string, r io.Reader) (*models.Player, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, ErrPhotoStorageDisabled
	}
	playerID, err := parseID("id", id)
	if err != nil {
		return nil, err
	}
	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, newValidationError("photo", err.Error())
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, storageError(ctx, s.logger, "get player", err, slog.String("player_id", id))
	}

	key := fmt.Sprintf("players/%s/photo-%s%s", playerID, uuid.NewString(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, r); err != nil {
		return nil, storageError(ctx, s.logger, "upload player photo", err, slog.String("player_id", id))
	}
	if err := s.playerRepo.UpdatePhotoKey(ctx, playerID, &key); err != nil {
		s.deletePhoto(ctx, key)
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, storageError(ctx, s.logger, "save player photo key", err, slog.String("player_id", id))
	}

	if player.PhotoKey != nil && *player.PhotoKey != key {
		s.deletePhoto(ctx, *player.PhotoKey)
	}
	player.PhotoKey = &key
	populatePlayerPhotoURL(player, s.uploader)
	return player, nil
}

func (s *playerService) deletePhoto(ctx context.Context, key string) {
	if s.uploader == nil || key == "" {
		return
	}
	if err := s.uploader.Delete(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "failed to delete player photo", slog.String("key", key), slog.Any("error", err))
	}
}

func (s *playerService) mapPlayerWriteError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrPlayerEmailConflict):
		return ErrPlayerEmailConflict
	case errors.Is(err, repositories.ErrPlayerJerseyConflict):
		return ErrJerseyNumberConflict
	default:
		return storageError(ctx, s.logger, op, err)
	}
}

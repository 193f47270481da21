package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulticlub/roster-service/models"
	"github.com/ulticlub/roster-service/repositories"
	"github.com/ulticlub/roster-service/storage"
)

func TestNumericText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want NumericText
	}{
		{name: "number", body: `{"jerseyNumber": 7}`, want: "7"},
		{name: "string", body: `{"jerseyNumber": "07"}`, want: "07"},
		{name: "null", body: `{"jerseyNumber": null}`, want: ""},
		{name: "absent", body: `{}`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in PlayerInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			assert.Equal(t, tt.want, in.JerseyNumber)
		})
	}

	var in PlayerInput
	assert.Error(t, json.Unmarshal([]byte(`{"jerseyNumber": true}`), &in))
}

func TestPlayerInput_Parse(t *testing.T) {
	valid := func() PlayerInput {
		return PlayerInput{Name: "Sam Rivera", Email: "Sam@Club.test"}
	}

	t.Run("defaults", func(t *testing.T) {
		draft, err := valid().Parse()
		require.NoError(t, err)
		assert.Equal(t, "sam@club.test", draft.Email)
		assert.Equal(t, models.GenderOther, draft.Gender)
		assert.Equal(t, models.PositionAny, draft.Position)
		assert.Equal(t, models.ExperienceBeginner, draft.Experience)
		assert.Nil(t, draft.JerseyNumber)
		assert.Nil(t, draft.GraduationYear)
		assert.Nil(t, draft.StudentID)
	})

	t.Run("typed values", func(t *testing.T) {
		in := valid()
		in.Gender = " Female "
		in.Position = "CUTTER"
		in.Experience = "advanced"
		in.JerseyNumber = " 12 "
		in.GraduationYear = "2027"
		in.StudentID = "  s-123 "

		draft, err := in.Parse()
		require.NoError(t, err)
		assert.Equal(t, models.GenderFemale, draft.Gender)
		assert.Equal(t, models.PositionCutter, draft.Position)
		assert.Equal(t, models.ExperienceAdvanced, draft.Experience)
		require.NotNil(t, draft.JerseyNumber)
		assert.Equal(t, 12, *draft.JerseyNumber)
		require.NotNil(t, draft.GraduationYear)
		assert.Equal(t, 2027, *draft.GraduationYear)
		require.NotNil(t, draft.StudentID)
		assert.Equal(t, "s-123", *draft.StudentID)
	})

	invalid := []struct {
		name   string
		mutate func(*PlayerInput)
		field  string
	}{
		{name: "missing name", mutate: func(in *PlayerInput) { in.Name = "  " }, field: "name"},
		{name: "bad email", mutate: func(in *PlayerInput) { in.Email = "not-an-email" }, field: "email"},
		{name: "unknown gender", mutate: func(in *PlayerInput) { in.Gender = "robot" }, field: "gender"},
		{name: "unknown experience", mutate: func(in *PlayerInput) { in.Experience = "legend" }, field: "experience"},
		{name: "jersey out of range", mutate: func(in *PlayerInput) { in.JerseyNumber = "100" }, field: "jerseyNumber"},
		{name: "jersey not a number", mutate: func(in *PlayerInput) { in.JerseyNumber = "seven" }, field: "jerseyNumber"},
		{name: "graduation year too early", mutate: func(in *PlayerInput) { in.GraduationYear = "1850" }, field: "graduationYear"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			_, err := in.Parse()
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.field)
		})
	}
}

func newPlayerService(t *testing.T, uploader storage.FileUploader) (PlayerService, *repositories.MemoryStore) {
	t.Helper()
	store := repositories.NewMemoryStore()
	return NewPlayerService(store.Players(), uploader, nil), store
}

func TestCreatePlayer(t *testing.T) {
	svc, _ := newPlayerService(t, nil)
	ctx := context.Background()

	p, err := svc.CreatePlayer(ctx, adminCaller, PlayerInput{Name: "Ada", Email: "ada@club.test", JerseyNumber: "10"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.True(t, p.IsActive)
	assert.Equal(t, adminCaller.UserID, derefString(p.CreatedBy))

	_, err = svc.CreatePlayer(ctx, adminCaller, PlayerInput{Name: "Ada Again", Email: "ADA@club.test"})
	assert.ErrorIs(t, err, ErrPlayerEmailConflict)

	_, err = svc.CreatePlayer(ctx, adminCaller, PlayerInput{Name: "Bo", Email: "bo@club.test", JerseyNumber: "10"})
	assert.ErrorIs(t, err, ErrJerseyNumberConflict)

	inactive := false
	_, err = svc.CreatePlayer(ctx, adminCaller, PlayerInput{Name: "Bo", Email: "bo@club.test", JerseyNumber: "10", IsActive: &inactive})
	assert.NoError(t, err, "jersey numbers only clash between active players")

	_, err = svc.CreatePlayer(ctx, memberCaller, PlayerInput{Name: "Cy", Email: "cy@club.test"})
	assert.ErrorIs(t, err, ErrForbiddenOperation)

	all, err := svc.ListPlayers(ctx, models.PlayerFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	active, err := svc.ListPlayers(ctx, models.PlayerFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestUpdatePlayer(t *testing.T) {
	svc, _ := newPlayerService(t, nil)
	ctx := context.Background()
	p, err := svc.CreatePlayer(ctx, adminCaller, PlayerInput{Name: "Ada", Email: "ada@club.test"})
	require.NoError(t, err)

	updated, err := svc.UpdatePlayer(ctx, adminCaller, p.ID.String(), PlayerInput{
		Name:     "Ada Lovelace",
		Email:    "ada@club.test",
		Position: "handler",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, models.PositionHandler, updated.Position)
	assert.True(t, updated.IsActive, "isActive is kept when omitted")
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)

	_, err = svc.UpdatePlayer(ctx, adminCaller, uuid.NewString(), PlayerInput{Name: "X", Email: "x@club.test"})
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestGetPlayer(t *testing.T) {
	svc, _ := newPlayerService(t, nil)
	ctx := context.Background()

	_, err := svc.GetPlayer(ctx, "abc")
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = svc.GetPlayer(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestUploadPhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without uploader", func(t *testing.T) {
		svc, _ := newPlayerService(t, nil)
		p, err := svc.CreatePlayer(ctx, adminCaller, PlayerInput{Name: "Ada", Email: "ada@club.test"})
		require.NoError(t, err)

		_, err = svc.UploadPhoto(ctx, adminCaller, p.ID.String(), "image/png", strings.NewReader("png"))
		assert.ErrorIs(t, err, ErrPhotoStorageDisabled)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("replaces previous photo", func(t *testing.T) {
		uploader := NewFakeUploader()
		svc, _ := newPlayerService(t, uploader)
		p, err := svc.CreatePlayer(ctx, adminCaller, PlayerInput{Name: "Ada", Email: "ada@club.test"})
		require.NoError(t, err)

		first, err := svc.UploadPhoto(ctx, adminCaller, p.ID.String(), "image/png", strings.NewReader("one"))
		require.NoError(t, err)
		require.NotNil(t, first.PhotoURL)
		firstKey := *first.PhotoKey
		assert.True(t, strings.HasPrefix(firstKey, "players/"+p.ID.String()+"/photo-"))
		assert.True(t, strings.HasSuffix(firstKey, ".png"))

		second, err := svc.UploadPhoto(ctx, adminCaller, p.ID.String(), "image/jpeg", strings.NewReader("two"))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(*second.PhotoKey, ".jpg"))

		assert.Equal(t, []string{*second.PhotoKey}, uploader.Keys())
		assert.Equal(t, []string{firstKey}, uploader.Deleted())

		got, err := svc.GetPlayer(ctx, p.ID.String())
		require.NoError(t, err)
		require.NotNil(t, got.PhotoURL)
		assert.Equal(t, uploader.GetPublicURL(*second.PhotoKey), *got.PhotoURL)
	})

	t.Run("unsupported content type", func(t *testing.T) {
		svc, _ := newPlayerService(t, NewFakeUploader())
		p, err := svc.CreatePlayer(ctx, adminCaller, PlayerInput{Name: "Ada", Email: "ada@club.test"})
		require.NoError(t, err)

		_, err = svc.UploadPhoto(ctx, adminCaller, p.ID.String(), "application/pdf", strings.NewReader("%PDF"))
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "photo")
	})

	t.Run("upload failure is a storage error", func(t *testing.T) {
		uploader := NewFakeUploader()
		uploader.UploadFunc = func(context.Context, string, string, io.Reader) (*storage.UploadResult, error) {
			return nil, errors.New("s3: access denied")
		}
		svc, _ := newPlayerService(t, uploader)
		p, err := svc.CreatePlayer(ctx, adminCaller, PlayerInput{Name: "Ada", Email: "ada@club.test"})
		require.NoError(t, err)

		_, err = svc.UploadPhoto(ctx, adminCaller, p.ID.String(), "image/webp", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrStorage)
	})
}

func TestDeletePlayer_RemovesPhoto(t *testing.T) {
	uploader := NewFakeUploader()
	svc, store := newPlayerService(t, uploader)
	ctx := context.Background()
	p, err := svc.CreatePlayer(ctx, adminCaller, PlayerInput{Name: "Ada", Email: "ada@club.test"})
	require.NoError(t, err)
	withPhoto, err := svc.UploadPhoto(ctx, adminCaller, p.ID.String(), "image/gif", strings.NewReader("gif"))
	require.NoError(t, err)

	require.NoError(t, svc.DeletePlayer(ctx, adminCaller, p.ID.String()))
	assert.Equal(t, []string{*withPhoto.PhotoKey}, uploader.Deleted())
	assert.Empty(t, uploader.Keys())

	count, err := store.Players().Count(ctx, false)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.DeletePlayer(ctx, adminCaller, p.ID.String()), ErrPlayerNotFound)
}

package service

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/utepsa-eventos/eventos-api/internal/models"
	"github.com/utepsa-eventos/eventos-api/pkg/config"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
	"github.com/utepsa-eventos/eventos-api/pkg/storage"
)

type mockPublicationRepo struct {
	byCode  map[string]*models.Publication
	byEvent []models.Publication
}

func (m *mockPublicationRepo) FindByShareCode(ctx context.Context, code string) (*models.Publication, error) {
	pub, ok := m.byCode[code]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return pub, nil
}

func (m *mockPublicationRepo) ListByEvent(ctx context.Context, eventID string) ([]models.Publication, error) {
	return m.byEvent, nil
}

func newTestPublicationService(t *testing.T, repo *mockPublicationRepo) (*PublicationService, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	cfg := config.PublicationsConfig{SignedURLSecret: "secret", SignedURLTTL: time.Hour}
	return NewPublicationService(repo, store, cfg, zap.NewNop()), store
}

func TestPublicationServiceGetByShareCode(t *testing.T) {
	image := "e1/banner.jpg"
	repo := &mockPublicationRepo{byCode: map[string]*models.Publication{
		"ABC123": {ID: "p1", EventID: "e1", ShareCode: "ABC123", Title: "Ganadores", ImagePath: &image},
	}}
	svc, _ := newTestPublicationService(t, repo)

	res, err := svc.GetByShareCode(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "Ganadores", res.Title)
	require.NotNil(t, res.ImageURL)
	assert.Contains(t, *res.ImageURL, "/publications/images/")
}

func TestPublicationServiceGetByShareCodeWithoutImage(t *testing.T) {
	repo := &mockPublicationRepo{byCode: map[string]*models.Publication{
		"ABC123": {ID: "p1", EventID: "e1", ShareCode: "ABC123", Title: "Aviso"},
	}}
	svc, _ := newTestPublicationService(t, repo)

	res, err := svc.GetByShareCode(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Nil(t, res.ImageURL)
}

func TestPublicationServiceUnknownShareCode(t *testing.T) {
	svc, _ := newTestPublicationService(t, &mockPublicationRepo{byCode: map[string]*models.Publication{}})

	_, err := svc.GetByShareCode(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPublicationServiceOpenImageRoundTrip(t *testing.T) {
	image := "e1/banner.jpg"
	repo := &mockPublicationRepo{byCode: map[string]*models.Publication{
		"ABC123": {ID: "p1", EventID: "e1", ShareCode: "ABC123", Title: "Ganadores", ImagePath: &image},
	}}
	svc, store := newTestPublicationService(t, repo)
	_, err := store.Save(image, []byte("jpeg-bytes"))
	require.NoError(t, err)

	res, err := svc.GetByShareCode(context.Background(), "ABC123")
	require.NoError(t, err)
	require.NotNil(t, res.ImageURL)

	token := (*res.ImageURL)[len("/publications/images/"):]
	file, err := svc.OpenImage(context.Background(), token)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(content))
}

func TestPublicationServiceOpenImageBadToken(t *testing.T) {
	svc, _ := newTestPublicationService(t, &mockPublicationRepo{})

	_, err := svc.OpenImage(context.Background(), "garbage")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestPublicationServiceListByEvent(t *testing.T) {
	repo := &mockPublicationRepo{byEvent: []models.Publication{
		{ID: "p1", EventID: "e1", ShareCode: "A1", Title: "Primera"},
		{ID: "p2", EventID: "e1", ShareCode: "A2", Title: "Segunda"},
	}}
	svc, _ := newTestPublicationService(t, repo)

	res, err := svc.ListByEvent(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Primera", res[0].Title)
}

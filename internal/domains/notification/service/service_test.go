package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novalib-backend/internal/domains/notification"
	"novalib-backend/internal/infrastructure/storage"
)

// ========================================
// fakes
// ========================================

type fakeRepo struct {
	byID    map[uuid.UUID]*notification.Notification
	codes   map[string]bool
	entries []notification.FeedEntry
	deleted []uuid.UUID
	created []*notification.Notification
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:  make(map[uuid.UUID]*notification.Notification),
		codes: make(map[string]bool),
	}
}

func (f *fakeRepo) Create(ctx context.Context, n *notification.Notification) error {
	f.created = append(f.created, n)
	f.byID[n.ID] = n
	f.codes[n.Code] = true
	n.CreatedAt = time.Now()
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	if n, ok := f.byID[id]; ok {
		return n, nil
	}
	return nil, notification.ErrNotFound
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return notification.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	return f.codes[code], nil
}

func (f *fakeRepo) ListByChannel(ctx context.Context, ch notification.Channel) ([]notification.FeedEntry, error) {
	return f.entries, nil
}

type fakeStore struct {
	uploads map[string][]byte
	deletes []string
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploads: make(map[string][]byte)}
}

func (f *fakeStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads[key] = data
	return "http://minio.local/novalib/" + key, nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	if f.err != nil {
		return f.err
	}
	f.deletes = append(f.deletes, key)
	return nil
}

type memCache struct {
	values map[string][]byte
}

func (m *memCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (m *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (m *memCache) Delete(ctx context.Context, keys ...string) error                { return nil }
func (m *memCache) Ping(ctx context.Context) error                                  { return nil }
func (m *memCache) Increment(ctx context.Context, key string) (int64, error)        { return 1, nil }
func (m *memCache) Expire(ctx context.Context, key string, ttl time.Duration) error { return nil }

func newService(repo *fakeRepo, store *fakeStore) *NotificationService {
	return NewNotificationService(repo, store, storage.NewImageProcessor(), &memCache{})
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// ========================================
// tests
// ========================================

func TestCreateWithoutImage(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStore()
	svc := newService(repo, store)

	n, err := svc.Create(context.Background(), notification.CreateNotificationRequest{
		Channel: notification.ChannelLibrary,
		Title:   "Closed Friday",
		Message: "The library closes early.",
	}, 7, nil)
	require.NoError(t, err)

	assert.Regexp(t, `^[A-Z]{3}[0-9]{5}$`, n.Code)
	assert.Nil(t, n.ImageURL)
	assert.Empty(t, store.uploads)
}

func TestCreateTranscodesImageToJPEG(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStore()
	svc := newService(repo, store)

	n, err := svc.Create(context.Background(), notification.CreateNotificationRequest{
		Channel: notification.ChannelDeveloper,
		Title:   "Deploy window",
		Message: "Tonight 22:00.",
	}, 7, pngBytes(t, 40, 30))
	require.NoError(t, err)

	key := "developer_notifications/" + n.Code + ".jpeg"
	data, ok := store.uploads[key]
	require.True(t, ok, "image stored under the code with .jpeg extension")
	// JPEG SOI marker, regardless of the PNG input.
	require.GreaterOrEqual(t, len(data), 2)
	assert.Equal(t, []byte{0xFF, 0xD8}, data[:2])
	require.NotNil(t, n.ImageURL)
	assert.Contains(t, *n.ImageURL, key)
}

func TestCreateRejectsNonImage(t *testing.T) {
	svc := newService(newFakeRepo(), newFakeStore())

	_, err := svc.Create(context.Background(), notification.CreateNotificationRequest{
		Channel: notification.ChannelLibrary,
		Title:   "t",
		Message: "m",
	}, 7, []byte("not an image"))
	assert.Error(t, err)
}

func TestCreateRejectsBadChannel(t *testing.T) {
	svc := newService(newFakeRepo(), newFakeStore())

	_, err := svc.Create(context.Background(), notification.CreateNotificationRequest{
		Channel: "urgent",
		Title:   "t",
		Message: "m",
	}, 7, nil)
	assert.ErrorIs(t, err, notification.ErrInvalidChannel)
}

func TestDeleteRemovesBlobBeforeRow(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStore()
	svc := newService(repo, store)

	url := "http://minio.local/novalib/notifications/ABC12345.jpeg"
	id := uuid.New()
	repo.byID[id] = &notification.Notification{
		ID: id, Code: "ABC12345", Channel: notification.ChannelLibrary, ImageURL: &url,
	}

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, []string{"notifications/ABC12345.jpeg"}, store.deletes)
	assert.Equal(t, []uuid.UUID{id}, repo.deleted)
}

func TestDeleteKeepsRowWhenBlobDeleteFails(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStore()
	svc := newService(repo, store)

	url := "http://minio.local/novalib/notifications/ABC12345.jpeg"
	id := uuid.New()
	repo.byID[id] = &notification.Notification{
		ID: id, Code: "ABC12345", Channel: notification.ChannelLibrary, ImageURL: &url,
	}
	store.err = assert.AnError

	err := svc.Delete(context.Background(), id)
	assert.Error(t, err)
	assert.Empty(t, repo.deleted, "row survives for a later retry")
}

func TestFeedRowsFormat(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, newFakeStore())

	created := time.Date(2026, 8, 31, 14, 5, 0, 0, time.UTC) // a Monday
	url := "http://minio.local/novalib/notifications/XYZ00001.jpeg"
	repo.entries = []notification.FeedEntry{
		{
			Notification: notification.Notification{
				Title: "Closed", Message: "Early close", ImageURL: &url, CreatedAt: created,
			},
			AuthorFirstName: "Ada", AuthorLastName: "Lovelace",
		},
		{
			Notification:  notification.Notification{Title: "Hi", Message: "m", CreatedAt: created},
			AuthorBarcode: "LIB-002",
		},
	}

	rows, err := svc.Feed(context.Background(), notification.ChannelLibrary)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Ada Lovelace", rows[0].UploadedBy)
	assert.Equal(t, url, rows[0].UploadedImage)
	assert.Equal(t, "Monday 14:05", rows[0].Timestamp)

	assert.Equal(t, "LIB-002", rows[1].UploadedBy, "blank name falls back to barcode")
	assert.Equal(t, "", rows[1].UploadedImage)
}

func TestFeedRejectsUnknownChannel(t *testing.T) {
	svc := newService(newFakeRepo(), newFakeStore())

	_, err := svc.Feed(context.Background(), "urgent")
	assert.ErrorIs(t, err, notification.ErrInvalidChannel)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"novalib-backend/internal/domains/notification"
	"novalib-backend/internal/infrastructure/storage"
	"novalib-backend/pkg/cache"
	"novalib-backend/pkg/logger"
)

const feedCacheTTL = 60 * time.Second

// ObjectStorage is the slice of the object store the feed needs.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// NotificationService manages the two announcement feeds and their
// image attachments.
type NotificationService struct {
	repo   notification.Repository
	store  ObjectStorage
	images *storage.ImageProcessor
	cache  cache.Cache
}

func NewNotificationService(
	repo notification.Repository,
	store ObjectStorage,
	images *storage.ImageProcessor,
	c cache.Cache,
) *NotificationService {
	return &NotificationService{repo: repo, store: store, images: images, cache: c}
}

// Create posts an announcement. A supplied image is validated,
// re-encoded to JPEG and stored under the generated code before the
// row is written.
func (s *NotificationService) Create(ctx context.Context, req notification.CreateNotificationRequest, authorID int64, image []byte) (*notification.Notification, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	code, err := notification.GenerateCode(ctx, s.repo.CodeExists)
	if err != nil {
		return nil, err
	}

	n := &notification.Notification{
		ID:         uuid.New(),
		Code:       code,
		Channel:    req.Channel,
		Title:      req.Title,
		Message:    req.Message,
		UploadedBy: authorID,
	}

	if len(image) > 0 {
		if err := s.images.ValidateImage(image); err != nil {
			return nil, fmt.Errorf("%w: %v", notification.ErrInvalidImage, err)
		}
		jpegData, err := s.images.TranscodeJPEG(image)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", notification.ErrInvalidImage, err)
		}
		url, err := s.store.Upload(ctx, imageKey(req.Channel, code), jpegData, "image/jpeg")
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		n.ImageURL = &url
	}

	if err := s.repo.Create(ctx, n); err != nil {
		// Best effort: don't leave an orphan blob behind a failed row.
		if n.ImageURL != nil {
			if derr := s.store.Delete(ctx, imageKey(req.Channel, code)); derr != nil {
				logger.Warn("orphan image cleanup failed", map[string]interface{}{
					"code":  code,
					"error": derr.Error(),
				})
			}
		}
		return nil, err
	}

	s.invalidateFeed(ctx, req.Channel)
	logger.Info("notification posted", map[string]interface{}{
		"code":    code,
		"channel": string(req.Channel),
	})
	return n, nil
}

// Delete removes the blob first, then the row. A missing blob is not
// fatal; a failing object store is, so the row is kept for retry.
func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if n.ImageURL != nil {
		if err := s.store.Delete(ctx, imageKey(n.Channel, n.Code)); err != nil {
			return fmt.Errorf("delete image: %w", err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateFeed(ctx, n.Channel)
	logger.Info("notification deleted", map[string]interface{}{"code": n.Code})
	return nil
}

// Feed serves a channel's rows newest-first, via a short-lived cache.
func (s *NotificationService) Feed(ctx context.Context, ch notification.Channel) ([]notification.FeedRow, error) {
	if !ch.Valid() {
		return nil, notification.ErrInvalidChannel
	}

	var cached []notification.FeedRow
	if hit, err := s.cache.Get(ctx, feedCacheKey(ch), &cached); err == nil && hit {
		return cached, nil
	}

	entries, err := s.repo.ListByChannel(ctx, ch)
	if err != nil {
		return nil, err
	}

	rows := make([]notification.FeedRow, 0, len(entries))
	for i := range entries {
		rows = append(rows, feedRow(&entries[i]))
	}

	if err := s.cache.Set(ctx, feedCacheKey(ch), rows, feedCacheTTL); err != nil {
		logger.Warn("feed cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return rows, nil
}

func (s *NotificationService) invalidateFeed(ctx context.Context, ch notification.Channel) {
	if err := s.cache.Delete(ctx, feedCacheKey(ch)); err != nil {
		logger.Warn("feed cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

func feedRow(e *notification.FeedEntry) notification.FeedRow {
	author := strings.TrimSpace(e.AuthorFirstName + " " + e.AuthorLastName)
	if author == "" {
		author = e.AuthorBarcode
	}
	image := ""
	if e.ImageURL != nil {
		image = *e.ImageURL
	}
	return notification.FeedRow{
		Title:         e.Title,
		Message:       e.Message,
		UploadedBy:    author,
		UploadedImage: image,
		Timestamp:     e.CreatedAt.Format(notification.FeedTimestampLayout),
	}
}

func imageKey(ch notification.Channel, code string) string {
	return fmt.Sprintf("%s/%s.jpeg", ch.ImagePrefix(), code)
}

func feedCacheKey(ch notification.Channel) string {
	return "feed:" + string(ch)
}

package notification

import (
	"time"

	"github.com/google/uuid"
)

// Channel separates the general library feed from the staff-only
// developer feed.
type Channel string

const (
	ChannelLibrary   Channel = "library"
	ChannelDeveloper Channel = "developer"
)

// Valid reports whether the channel is one of the two known feeds.
func (c Channel) Valid() bool {
	return c == ChannelLibrary || c == ChannelDeveloper
}

// ImagePrefix is the object-store folder for this channel's images.
func (c Channel) ImagePrefix() string {
	if c == ChannelDeveloper {
		return "developer_notifications"
	}
	return "notifications"
}

// Notification is one announcement. Code is the human-facing id (3
// uppercase letters + 5 digits); the attached image, when present, is
// stored under the code with a fixed .jpeg extension.
type Notification struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Channel    Channel   `json:"channel"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	UploadedBy int64     `json:"uploaded_by"`
	ImageURL   *string   `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// FeedRow is one announcement as served on the legacy feeds.
type FeedRow struct {
	Title         string `json:"title"`
	Message       string `json:"message"`
	UploadedBy    string `json:"uploaded_by"`
	UploadedImage string `json:"uploaded_image"`
	Timestamp     string `json:"timestamp"`
}

// FeedTimestampLayout renders "Monday 15:04", matching what the feed
// clients already display.
const FeedTimestampLayout = "Monday 15:04"

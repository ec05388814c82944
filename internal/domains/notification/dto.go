package notification

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateNotificationRequest is the multipart form for posting an
// announcement; the image part is handled separately by the handler.
type CreateNotificationRequest struct {
	Channel Channel `form:"channel" json:"channel"`
	Title   string  `form:"title" json:"title"`
	Message string  `form:"message" json:"message"`
}

func (r CreateNotificationRequest) Validate() error {
	if !r.Channel.Valid() {
		return ErrInvalidChannel
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Message, validation.Required),
	)
}

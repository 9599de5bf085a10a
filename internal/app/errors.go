package app

import "errors"

var (
	// ErrNoProfile indicates no resident profile has been saved yet.
	ErrNoProfile = errors.New("profile not set up")
	// ErrNoPhoto indicates the profile has no photo.
	ErrNoPhoto = errors.New("profile has no photo")
	// ErrPhotoTooLarge indicates an upload above the configured size limit.
	ErrPhotoTooLarge = errors.New("photo too large")
	// ErrUnsupportedPhoto indicates an upload that is not a JPEG, PNG or WebP image.
	ErrUnsupportedPhoto = errors.New("unsupported photo type")
	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.New("invalid contact or password")
	// ErrUnauthorized indicates a missing, expired or revoked session.
	ErrUnauthorized = errors.New("unauthorized")
)

package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"condocare/pkg/auth"
	"condocare/pkg/domain"
	"condocare/pkg/storage"
	"condocare/pkg/validate"
)

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func (a *App) loadProfile(ctx context.Context) (domain.Profile, bool, error) {
	var p domain.Profile
	ok, err := a.getJSON(ctx, "profile", domain.KeyUserProfile, &p)
	return p, ok, err
}

func public(p domain.Profile) domain.Profile {
	p.PasswordHash = ""
	return p
}

// Profile returns the saved profile without its password hash.
func (a *App) Profile(ctx context.Context) (domain.Profile, error) {
	p, ok, err := a.loadProfile(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	if !ok {
		return domain.Profile{}, ErrNoProfile
	}
	return public(p), nil
}

// SaveProfile overwrites the profile. An empty password keeps the stored
// hash; the photo reference is always kept.
func (a *App) SaveProfile(ctx context.Context, in domain.ProfileInput) (domain.Profile, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Contact = strings.TrimSpace(in.Contact)
	in.UnitNumber = strings.TrimSpace(in.UnitNumber)

	current, _, err := a.loadProfile(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	if err := validate.Profile(in, current.PasswordHash != ""); err != nil {
		return domain.Profile{}, err
	}
	next := domain.Profile{
		Name:         in.Name,
		Contact:      in.Contact,
		UnitNumber:   in.UnitNumber,
		PasswordHash: current.PasswordHash,
		Image:        current.Image,
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("hash password: %w", err)
		}
		next.PasswordHash = hash
	}
	if err := a.putJSON(ctx, "save profile", domain.KeyUserProfile, next); err != nil {
		return domain.Profile{}, err
	}
	return public(next), nil
}

// UploadProfilePhoto stores a new photo and points the profile at it. The
// previous photo is removed afterwards.
func (a *App) UploadProfilePhoto(ctx context.Context, data []byte) (domain.Profile, error) {
	if int64(len(data)) > a.maxPhotoBytes {
		return domain.Profile{}, ErrPhotoTooLarge
	}
	contentType := http.DetectContentType(data)
	ext, ok := photoExtensions[contentType]
	if !ok {
		return domain.Profile{}, ErrUnsupportedPhoto
	}
	current, found, err := a.loadProfile(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	if !found {
		return domain.Profile{}, ErrNoProfile
	}

	key := uuid.NewString() + ext
	if err := a.photos.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return domain.Profile{}, fmt.Errorf("store photo: %w", err)
	}
	previous := current.Image
	current.Image = key
	if err := a.putJSON(ctx, "save profile photo", domain.KeyUserProfile, current); err != nil {
		if delErr := a.photos.Delete(ctx, key); delErr != nil {
			a.logger.Warn("failed to remove orphaned photo", "key", key, "err", delErr)
		}
		return domain.Profile{}, err
	}
	if previous != "" {
		if err := a.photos.Delete(ctx, previous); err != nil {
			a.logger.Warn("failed to remove previous photo", "key", previous, "err", err)
		}
	}
	return public(current), nil
}

// ProfilePhoto opens the current profile photo. The caller closes the reader.
func (a *App) ProfilePhoto(ctx context.Context) (io.ReadCloser, string, error) {
	p, ok, err := a.loadProfile(ctx)
	if err != nil {
		return nil, "", err
	}
	if !ok || p.Image == "" {
		return nil, "", ErrNoPhoto
	}
	rc, contentType, err := a.photos.Get(ctx, p.Image)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", ErrNoPhoto
	}
	if err != nil {
		return nil, "", fmt.Errorf("open photo: %w", err)
	}
	return rc, contentType, nil
}

// Login checks the contact and password against the profile and issues a
// session token.
func (a *App) Login(ctx context.Context, contact, password string) (string, error) {
	p, ok, err := a.loadProfile(ctx)
	if err != nil {
		return "", err
	}
	if !ok || p.Contact != strings.TrimSpace(contact) || !auth.CheckPassword(password, p.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	token, err := a.sessions.NewSession(p.Contact)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return token, nil
}

// Logout revokes token.
func (a *App) Logout(token string) error {
	if err := a.sessions.Delete(token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SessionUser resolves token to the profile it was issued for. A session
// outlives neither a profile contact change nor a reset.
func (a *App) SessionUser(ctx context.Context, token string) (domain.Profile, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Profile{}, ErrUnauthorized
	}
	subject, ok, err := a.sessions.Lookup(token)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("lookup session: %w", err)
	}
	if !ok {
		return domain.Profile{}, ErrUnauthorized
	}
	p, found, err := a.loadProfile(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	if !found || p.Contact != subject {
		return domain.Profile{}, ErrUnauthorized
	}
	return public(p), nil
}

// AuthorizeProfileChange allows profile edits without a session only until a
// password has been set.
func (a *App) AuthorizeProfileChange(ctx context.Context, token string) error {
	p, ok, err := a.loadProfile(ctx)
	if err != nil {
		return err
	}
	if !ok || p.PasswordHash == "" {
		return nil
	}
	_, err = a.SessionUser(ctx, token)
	return err
}

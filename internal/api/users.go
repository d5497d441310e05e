package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/abyxtask/taskctl/internal/domain/entities"
)

// UserService handles the signed-in account's profile.
//
// UpdatePassword responds 401 when the current password is wrong; callers
// branch on that with IsStatus.
type UserService struct {
	client *Client
}

// Me fetches the authenticated account.
func (s *UserService) Me(ctx context.Context) (*entities.User, error) {
	var user entities.User
	err := s.client.doJSON(ctx, http.MethodGet, s.client.endpoint("users", "me"), nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update patches the profile with the non-empty fields of user.
func (s *UserService) Update(ctx context.Context, user entities.User) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodPatch, s.client.endpoint("users", "me"), user, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// UpdateProfilePicture uploads the image at path as the profile picture,
// as a multipart form part named "profilePicture".
func (s *UserService) UpdateProfilePicture(ctx context.Context, path string) (*entities.Message, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := createImagePart(writer, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	var msg entities.Message
	err = s.client.do(ctx, http.MethodPatch, s.client.endpoint("users", "me"),
		writer.FormDataContentType(), &body, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// UpdatePassword changes the account password.
func (s *UserService) UpdatePassword(ctx context.Context, req entities.ChangePasswordRequest) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodPatch, s.client.endpoint("users", "me", "password"), req, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func createImagePart(writer *multipart.Writer, filename string) (io.Writer, error) {
	contentType := "image/*"
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="profilePicture"; filename=%q`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	return part, nil
}

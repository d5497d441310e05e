package api

import (
	"context"
	"net/http"

	"github.com/abyxtask/taskctl/internal/domain/entities"
)

// ProjectService handles the account's projects.
type ProjectService struct {
	client *Client
}

// List returns every project the account belongs to.
func (s *ProjectService) List(ctx context.Context) ([]entities.Project, error) {
	var projects []entities.Project
	err := s.client.doJSON(ctx, http.MethodGet, s.client.endpoint("projects"), nil, &projects)
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Create creates a new project.
func (s *ProjectService) Create(ctx context.Context, project entities.Project) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodPost, s.client.endpoint("projects"), project, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Edit replaces the project's fields.
func (s *ProjectService) Edit(ctx context.Context, id string, project entities.Project) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodPut, s.client.endpoint("projects", id), project, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Delete removes the project.
func (s *ProjectService) Delete(ctx context.Context, id string) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodDelete, s.client.endpoint("projects", id), nil, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

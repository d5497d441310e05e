package api

import (
	"context"
	"net/http"

	"github.com/abyxtask/taskctl/internal/domain/entities"
)

// TaskService handles the tasks inside a project.
//
// List responds 404 when the project has no tasks; that is a semantic branch
// for the caller (an empty board), not a failure. Branch with
// IsStatus(err, http.StatusNotFound).
type TaskService struct {
	client *Client
}

// List returns the project's tasks.
func (s *TaskService) List(ctx context.Context, projectID string) ([]entities.Task, error) {
	var tasks []entities.Task
	err := s.client.doJSON(ctx, http.MethodGet, s.client.endpoint("projects", projectID, "tasks"), nil, &tasks)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create adds a task to the project.
func (s *TaskService) Create(ctx context.Context, projectID string, task entities.Task) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodPost, s.client.endpoint("projects", projectID, "tasks"), task, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Update patches the task's fields.
func (s *TaskService) Update(ctx context.Context, projectID, taskID string, task entities.Task) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodPatch, s.client.endpoint("projects", projectID, "tasks", taskID), task, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Delete removes the task from the project.
func (s *TaskService) Delete(ctx context.Context, projectID, taskID string) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodDelete, s.client.endpoint("projects", projectID, "tasks", taskID), nil, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

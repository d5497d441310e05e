package entities

import (
	"errors"
)

// Common errors
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrNotSignedIn     = errors.New("not signed in")
)

// TaskStatus mirrors the backend's wire values for a task's board column.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "inProgress"
	TaskStatusDone       TaskStatus = "completed"
)

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// Label returns the column heading shown for this status.
func (ts TaskStatus) Label() string {
	switch ts {
	case TaskStatusTodo:
		return "To Do"
	case TaskStatusInProgress:
		return "Doing"
	case TaskStatusDone:
		return "Done"
	default:
		return string(ts)
	}
}

// User represents the authenticated account as returned by GET users/me.
type User struct {
	ID             string `json:"id,omitempty"`
	Email          string `json:"email,omitempty"`
	DisplayName    string `json:"displayName,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// ProjectUser is a membership entry inside a project.
type ProjectUser struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// Project represents a project as stored by the backend.
type Project struct {
	ID        string        `json:"_id,omitempty"`
	Name      string        `json:"name,omitempty"`
	Owner     string        `json:"owner,omitempty"`
	Users     []ProjectUser `json:"users,omitempty"`
	CreatedAt string        `json:"createdAt,omitempty"`
	UpdatedAt string        `json:"updatedAt,omitempty"`
	State     bool          `json:"state"`
}

// Task represents a task inside a project. Start and end datetimes travel
// as "YYYY-MM-DDTHH:MM[:SS][offset]" strings.
type Task struct {
	ID            string     `json:"id,omitempty"`
	Title         string     `json:"title,omitempty"`
	Description   string     `json:"description,omitempty"`
	Status        TaskStatus `json:"status,omitempty"`
	StartDatetime string     `json:"startDatetime,omitempty"`
	EndDatetime   string     `json:"endDatetime,omitempty"`
	TaskWeight    string     `json:"taskWeight,omitempty"`
	Progress      int        `json:"progress,omitempty"`
	Users         []string   `json:"users,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	ProjectID     string     `json:"projectId,omitempty"`
}

// Message is the generic success payload most mutating endpoints return.
type Message struct {
	Message string `json:"message"`
}

// Request payloads. Validated client-side before the request is sent.

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	DisplayName string `json:"displayName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"verificationCode" validate:"required"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	ResetCode   string `json:"resetCode" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
	OldPassword string `json:"oldPassword" validate:"required"`
}

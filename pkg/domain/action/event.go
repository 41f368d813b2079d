package action

import (
	"fmt"
	"time"
)

// Kind discriminates the tagged ActionEvent variant. Rule evaluation and
// gate checks switch exhaustively over it.
type Kind string

const (
	KindLogin      Kind = "login"
	KindUpload     Kind = "upload"
	KindRoleChange Kind = "role_change"
)

func (k Kind) Valid() bool {
	switch k {
	case KindLogin, KindUpload, KindRoleChange:
		return true
	}
	return false
}

type FilePayload struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type RoleChangePayload struct {
	OldRole string `json:"old_role"`
	NewRole string `json:"new_role"`
}

// Event is one inbound sensitive action. It is transient: constructed per
// request, evaluated, and never persisted directly.
type Event struct {
	Principal  string
	Address    string
	Kind       Kind
	File       *FilePayload
	RoleChange *RoleChangePayload
	OccurredAt time.Time
}

func (e *Event) Validate() error {
	if e.Principal == "" {
		return fmt.Errorf("principal is required")
	}
	if e.Address == "" {
		return fmt.Errorf("address is required")
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("invalid action kind: %s", e.Kind)
	}
	switch e.Kind {
	case KindUpload:
		if e.File == nil || e.File.Name == "" {
			return fmt.Errorf("file payload is required for upload")
		}
	case KindRoleChange:
		if e.RoleChange == nil || e.RoleChange.OldRole == "" || e.RoleChange.NewRole == "" {
			return fmt.Errorf("role change payload is required for role_change")
		}
	}
	return nil
}

package block

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is the authoritative block state for one subject. At most one
// entry exists per subject key (unique index); existence of an active
// entry implies denial regardless of trust status.
type Entry struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	SubjectKey   string     `json:"subject_key" gorm:"uniqueIndex"`
	Reason       string     `json:"reason"`
	BlockedBy    string     `json:"blocked_by"`
	BlockedAt    time.Time  `json:"blocked_at"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty"`
}

// NewEntry builds a fully populated entry so callers that persist via raw
// upserts do not depend on gorm hooks for the ID and timestamp.
func NewEntry(subject SubjectKey, reason, actor string, until *time.Time) *Entry {
	return &Entry{
		ID:           uuid.New(),
		SubjectKey:   subject.String(),
		Reason:       reason,
		BlockedBy:    actor,
		BlockedAt:    time.Now(),
		BlockedUntil: until,
	}
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.BlockedAt.IsZero() {
		e.BlockedAt = time.Now()
	}
	return e.Validate()
}

func (e *Entry) Validate() error {
	if e.SubjectKey == "" {
		return fmt.Errorf("subject key is required")
	}
	if _, err := ParseSubjectKey(e.SubjectKey); err != nil {
		return err
	}
	return nil
}

// Active reports whether the entry denies access at the given instant.
// An entry without BlockedUntil never expires.
func (e *Entry) Active(now time.Time) bool {
	if e == nil {
		return false
	}
	return e.BlockedUntil == nil || e.BlockedUntil.After(now)
}

func (e *Entry) Subject() SubjectKey {
	key, err := ParseSubjectKey(e.SubjectKey)
	if err != nil {
		return SubjectKey{}
	}
	return key
}

func (e *Entry) TableName() string {
	return "public.blocked_subjects"
}

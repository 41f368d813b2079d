package trust

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aegisops/actiongate/pkg/domain/action"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultQuotaWindowSeconds = 3600

// Entry marks a (principal, address) pair as explicitly trusted, with an
// optional wall-clock access window and optional per-action quotas. At
// most one entry exists per pair.
type Entry struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Principal string    `json:"principal" gorm:"uniqueIndex:idx_trust_pair"`
	Address   string    `json:"address" gorm:"uniqueIndex:idx_trust_pair"`

	// "HH:MM" bounds; both nil means allowed all day. AllowedFrom greater
	// than AllowedTo means the window wraps midnight.
	AllowedFrom *string `json:"allowed_from,omitempty"`
	AllowedTo   *string `json:"allowed_to,omitempty"`

	MaxLoginsPerWindow      *int `json:"max_logins_per_window,omitempty"`
	MaxUploadsPerWindow     *int `json:"max_uploads_per_window,omitempty"`
	MaxRoleChangesPerWindow *int `json:"max_role_changes_per_window,omitempty"`

	QuotaWindowSeconds int       `json:"quota_window_seconds"`
	AddedAt            time.Time `json:"added_at"`
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.AddedAt.IsZero() {
		e.AddedAt = time.Now()
	}
	if e.QuotaWindowSeconds <= 0 {
		e.QuotaWindowSeconds = DefaultQuotaWindowSeconds
	}
	return e.Validate()
}

func (e *Entry) Validate() error {
	if e.Principal == "" {
		return fmt.Errorf("principal is required")
	}
	if e.Address == "" {
		return fmt.Errorf("address is required")
	}
	if e.AllowedFrom != nil {
		if _, err := parseClock(*e.AllowedFrom); err != nil {
			return fmt.Errorf("invalid allowed_from: %w", err)
		}
	}
	if e.AllowedTo != nil {
		if _, err := parseClock(*e.AllowedTo); err != nil {
			return fmt.Errorf("invalid allowed_to: %w", err)
		}
	}
	return nil
}

// QuotaFor returns the configured maximum for the action kind, or nil when
// no quota applies.
func (e *Entry) QuotaFor(kind action.Kind) *int {
	switch kind {
	case action.KindLogin:
		return e.MaxLoginsPerWindow
	case action.KindUpload:
		return e.MaxUploadsPerWindow
	case action.KindRoleChange:
		return e.MaxRoleChangesPerWindow
	}
	return nil
}

func (e *Entry) QuotaWindow() time.Duration {
	seconds := e.QuotaWindowSeconds
	if seconds <= 0 {
		seconds = DefaultQuotaWindowSeconds
	}
	return time.Duration(seconds) * time.Second
}

// WindowContains reports whether the wall-clock time of day of now lies
// inside the allowed window. A window with either bound missing allows
// everything; AllowedFrom > AllowedTo wraps midnight (allowed when
// now >= from OR now <= to).
func (e *Entry) WindowContains(now time.Time) (bool, error) {
	if e.AllowedFrom == nil || e.AllowedTo == nil {
		return true, nil
	}
	from, err := parseClock(*e.AllowedFrom)
	if err != nil {
		return false, fmt.Errorf("invalid allowed_from: %w", err)
	}
	to, err := parseClock(*e.AllowedTo)
	if err != nil {
		return false, fmt.Errorf("invalid allowed_to: %w", err)
	}

	minutes := now.Hour()*60 + now.Minute()
	if from <= to {
		return minutes >= from && minutes <= to, nil
	}
	return minutes >= from || minutes <= to, nil
}

func (e *Entry) TableName() string {
	return "public.trusted_pairs"
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}

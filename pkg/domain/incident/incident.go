package incident

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aegisops/actiongate/pkg/domain/action"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record kinds beyond the three action kinds.
const (
	KindAdminBlock     = "admin_block"
	KindAdminUnblock   = "admin_unblock"
	KindBlockedAttempt = "blocked_attempt"
	KindWindowDenied   = "window_denied"
	KindQuotaDenied    = "quota_denied"
)

type DetailJSON map[string]interface{}

func (d DetailJSON) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func (d *DetailJSON) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, d)
}

// Record is one append-only audit row: a risk verdict, a gate denial, or
// an administrative registry mutation. Records are never mutated or
// deleted by this service (retention is an external job).
type Record struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Principal string          `json:"principal"`
	Address   string          `json:"address"`
	Kind      string          `json:"kind"`
	Reason    string          `json:"reason"`
	Severity  action.Severity `json:"severity"`
	Threat    bool            `json:"threat"`
	Detail    DetailJSON      `json:"detail,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time       `json:"created_at" gorm:"index"`
}

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return r.Validate()
}

func (r *Record) Validate() error {
	if r.Principal == "" {
		return fmt.Errorf("principal is required")
	}
	if r.Address == "" {
		return fmt.Errorf("address is required")
	}
	if r.Kind == "" {
		return fmt.Errorf("kind is required")
	}
	if r.Severity == "" {
		r.Severity = action.SeverityLow
	}
	return nil
}

func (r *Record) TableName() string {
	return "public.incidents"
}

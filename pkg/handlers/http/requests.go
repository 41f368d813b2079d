package http

// LoginActionRequest reports one login attempt for evaluation.
type LoginActionRequest struct {
	Principal string `json:"principal"`
}

// UploadActionRequest reports one file upload for evaluation.
type UploadActionRequest struct {
	Principal string `json:"principal"`
	FileName  string `json:"file_name"`
	FileSize  int64  `json:"file_size"`
}

// RoleChangeActionRequest reports one role mutation for evaluation.
type RoleChangeActionRequest struct {
	Principal string `json:"principal"`
	OldRole   string `json:"old_role"`
	NewRole   string `json:"new_role"`
}

// BlockSubjectRequest blocks an address or principal.
type BlockSubjectRequest struct {
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
	// Until is RFC3339; empty means the block never expires.
	Until string `json:"until,omitempty"`
}

// TrustedPairRequest registers or updates a trusted (principal, address)
// pair with its optional window and quotas.
type TrustedPairRequest struct {
	Principal               string  `json:"principal"`
	Address                 string  `json:"address"`
	AllowedFrom             *string `json:"allowed_from,omitempty"`
	AllowedTo               *string `json:"allowed_to,omitempty"`
	MaxLoginsPerWindow      *int    `json:"max_logins_per_window,omitempty"`
	MaxUploadsPerWindow     *int    `json:"max_uploads_per_window,omitempty"`
	MaxRoleChangesPerWindow *int    `json:"max_role_changes_per_window,omitempty"`
	QuotaWindowSeconds      int     `json:"quota_window_seconds,omitempty"`
}

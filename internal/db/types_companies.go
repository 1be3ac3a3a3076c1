package db

import (
	"time"

	"github.com/google/uuid"
)

// Company represents an employer identity's company record. One company
// exists per employer identity.
type Company struct {
	ID          uuid.UUID   `json:"id"`
	IdentityID  uuid.UUID   `json:"identity_id"`
	Name        string      `json:"name"`
	EmailDomain string      `json:"email_domain"`
	Verified    bool        `json:"verified"`
	Size        string      `json:"size,omitempty"`
	Industry    string      `json:"industry,omitempty"`
	Location    string      `json:"location,omitempty"`
	Tools       StringArray `json:"tools"` // JSONB array of AI tools in use
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CompanyInput holds the writable fields of a company record. Verification
// is not writable through the editor flow.
type CompanyInput struct {
	Name        string
	EmailDomain string
	Size        string
	Industry    string
	Location    string
	Tools       []string
	Description string
}

package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt,omitzero"`
	CreatedBy     string    `json:"createdBy,omitempty"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt,omitzero"`
	LastUpdatedBy string    `json:"lastUpdatedBy,omitempty"` // UserID Reference
}

// Touch stamps the update half of the audit fields.
func (a *AuditFields) Touch(by string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = by
}

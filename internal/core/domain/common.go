package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// DateLayout is the wire format for all calendar dates. The engine works on
// whole days only; times of day are never significant.
const DateLayout = "2006-01-02"

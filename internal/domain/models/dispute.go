package models

import "time"

type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "open"
	DisputeInReview DisputeStatus = "in_review"
	DisputeResolved DisputeStatus = "resolved"
)

func (s DisputeStatus) Valid() bool {
	switch s {
	case DisputeOpen, DisputeInReview, DisputeResolved:
		return true
	}
	return false
}

type Dispute struct {
	ID          string        `json:"id"`
	BookingID   string        `json:"bookingId"`
	ReporterID  string        `json:"reporterId"`
	Type        string        `json:"type"`
	Status      DisputeStatus `json:"status"`
	Description string        `json:"description"`
	Resolution  string        `json:"resolution,omitempty"`
	ResolvedBy  string        `json:"resolvedBy,omitempty"`
	ResolvedAt  *time.Time    `json:"resolvedAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func (d Dispute) Clone() Dispute {
	if d.ResolvedAt != nil {
		t := *d.ResolvedAt
		d.ResolvedAt = &t
	}
	return d
}

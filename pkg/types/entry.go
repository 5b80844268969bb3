package types

import "time"

// Entity is the minimal contract for ledger records: an integer identity.
type Entity interface {
	GetID() int
}

// LogEntry is an immutable inventory ledger record.
type LogEntry struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	DateAdded time.Time `json:"date_added"`
	Ref       string    `json:"ref"` // UUID v7, assigned when the entry is created.
}

func (e LogEntry) GetID() int { return e.ID }

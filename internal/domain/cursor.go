package domain

import "time"

// Cursor is the per-source resumption state. LastLink identifies the
// most recent item emitted by the previous successful run. A nil
// *Cursor means no prior run exists or resumption is disabled.
type Cursor struct {
	// Link of the most recent item from the previous successful run
	LastLink string `json:"last_link" db:"last_link"`
	// Time the previous successful run completed
	LastRunAt time.Time `json:"last_run_at" db:"last_run_at"`
}

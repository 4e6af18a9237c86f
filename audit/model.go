// audit/model.go
package audit

import "time"

// Entry is one auditable authorization event: a grant, a revoke, or an
// enforcement decision.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor,omitempty"`
	Event     string    `json:"event"` // "grant", "revoke" or "enforce"
	Subject   string    `json:"subject"`
	Level     string    `json:"level"`
	Object    string    `json:"object"`
	Role      string    `json:"role,omitempty"`
	Action    string    `json:"action,omitempty"`
	Allowed   *bool     `json:"allowed,omitempty"`
}

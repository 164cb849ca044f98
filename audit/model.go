// api/audit/model.go
package audit

import "time"

// Recorded actions.
const (
	ActionTokenRevoked = "token.revoked"
	ActionAIDecision   = "ai.decision"
	ActionLogin        = "auth.login"
)

type Entry struct {
	Timestamp     time.Time `json:"timestamp"`
	UserID        string    `json:"user_id"`
	Action        string    `json:"action"`
	Operation     string    `json:"operation,omitempty"`
	ResourceID    string    `json:"resource_id,omitempty"`
	AccessGranted bool      `json:"access_granted"`
	Reason        string    `json:"reason,omitempty"`
}

// api/authz/gate.go
package authz

import (
	"github.com/sagelms/sage/api/model"
)

// Action identifies an assistant operation subject to access control.
type Action string

const (
	ActionChatWithCourseContext Action = "chat-with-course-context"
	ActionGenerateQuiz          Action = "generate-quiz"
	ActionExtractConcepts       Action = "extract-concepts"
	ActionGenerateFeedback      Action = "generate-feedback"
)

// Denial reasons returned in Decision.Reason.
const (
	ReasonNotEnrolled = "not-enrolled"
	ReasonNotOwner    = "not-owner"
	ReasonRole        = "role"
)

// ResourceFacts are fetched by the caller from the system of record; the
// gate itself never does I/O.
type ResourceFacts struct {
	// OwnerID is the teacher id recorded on the resource's course.
	OwnerID string
	// Enrolled reports whether the principal is enrolled in the course the
	// resource belongs to.
	Enrolled bool
}

// Decision is the gate's verdict for one (principal, action, facts) triple.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Gate evaluates the platform's access policy for assistant operations.
type Gate struct{}

func NewGate() *Gate {
	return &Gate{}
}

// Decide applies the policy table in order; the first matching rule wins.
//
// Admins may do anything. Teachers may always chat, and may run the other
// operations only on resources of courses they own. Students may chat and
// extract concepts in courses they are enrolled in, and may never generate
// quizzes or feedback.
func (g *Gate) Decide(principal model.Principal, action Action, facts ResourceFacts) Decision {
	switch principal.Role {
	case model.RoleAdmin:
		return Allow()

	case model.RoleTeacher:
		if action == ActionChatWithCourseContext {
			return Allow()
		}
		if facts.OwnerID == principal.UserID {
			return Allow()
		}
		return Deny(ReasonNotOwner)

	case model.RoleStudent:
		switch action {
		case ActionChatWithCourseContext, ActionExtractConcepts:
			if facts.Enrolled {
				return Allow()
			}
			return Deny(ReasonNotEnrolled)
		default:
			return Deny(ReasonRole)
		}
	}

	return Deny(ReasonRole)
}

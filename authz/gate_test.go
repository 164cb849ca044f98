package authz_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagelms/sage/api/authz"
	"github.com/sagelms/sage/api/model"
)

// Every (action, principal/fact) combination from the policy table.
func TestGateDecide_PolicyTable(t *testing.T) {
	gate := authz.NewGate()

	actions := []authz.Action{
		authz.ActionChatWithCourseContext,
		authz.ActionGenerateQuiz,
		authz.ActionExtractConcepts,
		authz.ActionGenerateFeedback,
	}

	type subject struct {
		name      string
		principal model.Principal
		facts     authz.ResourceFacts
	}

	subjects := []subject{
		{"admin", model.Principal{UserID: "u-admin", Role: model.RoleAdmin}, authz.ResourceFacts{OwnerID: "someone-else"}},
		{"teacher_owner", model.Principal{UserID: "u-teacher", Role: model.RoleTeacher}, authz.ResourceFacts{OwnerID: "u-teacher"}},
		{"teacher_not_owner", model.Principal{UserID: "u-teacher", Role: model.RoleTeacher}, authz.ResourceFacts{OwnerID: "u-other"}},
		{"student_enrolled", model.Principal{UserID: "u-student", Role: model.RoleStudent}, authz.ResourceFacts{OwnerID: "u-other", Enrolled: true}},
		{"student_not_enrolled", model.Principal{UserID: "u-student", Role: model.RoleStudent}, authz.ResourceFacts{OwnerID: "u-other", Enrolled: false}},
	}

	// expected[action][subject] per the policy table
	expected := map[authz.Action]map[string]authz.Decision{
		authz.ActionChatWithCourseContext: {
			"admin":                authz.Allow(),
			"teacher_owner":        authz.Allow(),
			"teacher_not_owner":    authz.Allow(),
			"student_enrolled":     authz.Allow(),
			"student_not_enrolled": authz.Deny(authz.ReasonNotEnrolled),
		},
		authz.ActionGenerateQuiz: {
			"admin":                authz.Allow(),
			"teacher_owner":        authz.Allow(),
			"teacher_not_owner":    authz.Deny(authz.ReasonNotOwner),
			"student_enrolled":     authz.Deny(authz.ReasonRole),
			"student_not_enrolled": authz.Deny(authz.ReasonRole),
		},
		authz.ActionExtractConcepts: {
			"admin":                authz.Allow(),
			"teacher_owner":        authz.Allow(),
			"teacher_not_owner":    authz.Deny(authz.ReasonNotOwner),
			"student_enrolled":     authz.Allow(),
			"student_not_enrolled": authz.Deny(authz.ReasonNotEnrolled),
		},
		authz.ActionGenerateFeedback: {
			"admin":                authz.Allow(),
			"teacher_owner":        authz.Allow(),
			"teacher_not_owner":    authz.Deny(authz.ReasonNotOwner),
			"student_enrolled":     authz.Deny(authz.ReasonRole),
			"student_not_enrolled": authz.Deny(authz.ReasonRole),
		},
	}

	for _, action := range actions {
		for _, sub := range subjects {
			name := fmt.Sprintf("%s/%s", action, sub.name)
			t.Run(name, func(t *testing.T) {
				got := gate.Decide(sub.principal, action, sub.facts)
				assert.Equal(t, expected[action][sub.name], got)
			})
		}
	}
}

func TestGateDecide_UnknownRole(t *testing.T) {
	gate := authz.NewGate()

	got := gate.Decide(model.Principal{UserID: "u1", Role: "auditor"}, authz.ActionChatWithCourseContext, authz.ResourceFacts{Enrolled: true})
	assert.Equal(t, authz.Deny(authz.ReasonRole), got)
}

func TestGateDecide_TeacherOwnershipComparesIDs(t *testing.T) {
	gate := authz.NewGate()

	// lecture owned by teacher id 9, requested by teacher id 7
	principal := model.Principal{UserID: "7", Role: model.RoleTeacher}
	got := gate.Decide(principal, authz.ActionGenerateQuiz, authz.ResourceFacts{OwnerID: "9"})
	assert.False(t, got.Allowed)
	assert.Equal(t, authz.ReasonNotOwner, got.Reason)
}

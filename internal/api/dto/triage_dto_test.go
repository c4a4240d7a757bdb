package dto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/telecom-triage/internal/classifier"
	"github.com/spec-kit/telecom-triage/internal/domain"
)

func TestNewClassificationResponseRoutingDepartment(t *testing.T) {
	result := &domain.Classification{
		PrimaryIntent: "NETWORK_ISSUE",
		Category:      domain.CategoryGrievance,
		Type:          "NETWORK_CONNECTIVITY",
		Routing:       classifier.RouteTechnicalSupport,
	}

	resp := NewClassificationResponse(result)
	require.Equal(t, classifier.RouteTechnicalSupport, resp.Routing)
	require.Equal(t, classifier.DeptTechnicalSupport, resp.RoutingDept)
}

func TestNewConversationResponseRoutingDepartment(t *testing.T) {
	conv := domain.Conversation{
		ID:        42,
		QueryText: "bill galat aaya hai",
		Category:  domain.CategoryGrievance,
		Routing:   classifier.RouteBillingTeam,
	}

	resp := NewConversationResponse(conv)
	require.Equal(t, int64(42), resp.ID)
	require.Equal(t, classifier.DeptBilling, resp.RoutingDept)
}

package classifier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/telecom-triage/internal/domain"
)

func TestExtractEntities(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  domain.EntityBag
	}{
		{
			name:  "rupee symbol amount",
			query: "₹500 ka recharge",
			want:  domain.EntityBag{domain.EntityAmount: "500"},
		},
		{
			name:  "hinglish service outage",
			query: "internet nahi chal raha",
			want: domain.EntityBag{
				domain.EntityService: "internet",
				domain.EntityIssue:   "nahi chal raha",
			},
		},
		{
			name:  "rupees suffix",
			query: "recharge for 299 rupees",
			want:  domain.EntityBag{domain.EntityAmount: "299"},
		},
		{
			name:  "rs prefix with failure",
			query: "Rs. 100 recharge failed",
			want: domain.EntityBag{
				domain.EntityAmount: "100",
				domain.EntityIssue:  "failed",
			},
		},
		{
			name:  "service issue timeframe together",
			query: "slow wifi since morning",
			want: domain.EntityBag{
				domain.EntityService:   "wifi",
				domain.EntityIssue:     "slow",
				domain.EntityTimeframe: "since morning",
			},
		},
		{
			name:  "plan name with tier",
			query: "switch to jio premium",
			want:  domain.EntityBag{domain.EntityPlanName: "jio premium"},
		},
		{
			name:  "hinglish timeframe",
			query: "call drops kal se",
			want: domain.EntityBag{
				domain.EntityService:   "call",
				domain.EntityTimeframe: "kal",
			},
		},
		{
			name:  "nothing recognizable",
			query: "hello there",
			want:  domain.EntityBag{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ExtractEntities(tc.query))
		})
	}
}

func TestExtractEntitiesFirstAmountPatternWins(t *testing.T) {
	// Both the symbol and the suffix forms appear; the symbol pattern is
	// checked first.
	got := ExtractEntities("paid ₹200 but 500 rupees deducted")
	require.Equal(t, "200", got[domain.EntityAmount])
}

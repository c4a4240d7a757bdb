package classifier

import (
	"regexp"
	"strings"

	"github.com/spec-kit/telecom-triage/internal/domain"
)

// Entity extraction is a deterministic regex pass over the raw utterance,
// independent of intent and type resolution. At most one value per kind; the
// first matching pattern wins.

var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`₹\s*(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s*rupees?`),
	regexp.MustCompile(`(?i)rs\.?\s*(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s*rs`),
}

var (
	servicePattern   = regexp.MustCompile(`(?i)\b(data|internet|call|sms|roaming|network|hotspot|wifi)\b`)
	issuePattern     = regexp.MustCompile(`(?i)\b(slow|not working|stopped|failed|down|problem|issue|nahi chal raha|band)\b`)
	planPattern      = regexp.MustCompile(`(?i)\b(jio|airtel|vi|vodafone|bsnl)\s*(basic|smart|premium|value|max|super)?\b`)
	timeframePattern = regexp.MustCompile(`(?i)\b(today|yesterday|last week|since morning|this month|aaj|kal)\b`)
)

// ExtractEntities pulls structured fields out of the raw query text. Absence
// of a match omits the key; it never errors.
func ExtractEntities(query string) domain.EntityBag {
	entities := domain.EntityBag{}

	for _, pattern := range amountPatterns {
		if m := pattern.FindStringSubmatch(query); m != nil {
			entities[domain.EntityAmount] = m[1]
			break
		}
	}

	if m := servicePattern.FindStringSubmatch(query); m != nil {
		entities[domain.EntityService] = strings.ToLower(m[1])
	}

	if m := issuePattern.FindStringSubmatch(query); m != nil {
		entities[domain.EntityIssue] = strings.ToLower(m[1])
	}

	if m := planPattern.FindString(query); m != "" {
		entities[domain.EntityPlanName] = strings.TrimSpace(m)
	}

	if m := timeframePattern.FindStringSubmatch(query); m != nil {
		entities[domain.EntityTimeframe] = strings.ToLower(m[1])
	}

	return entities
}

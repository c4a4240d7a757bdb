package domain

// Category separates informational queries from actionable grievances.
type Category string

const (
	CategoryQuery     Category = "QUERY"
	CategoryGrievance Category = "GRIEVANCE"
)

// Severity grades grievance types for triage.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// PrimaryIntentUnknown is reported when no intent clears the similarity threshold.
const PrimaryIntentUnknown = "UNKNOWN"

// IntentLabel is a coarse intent with the description used for its embedding.
type IntentLabel struct {
	Key         string
	Description string
}

// TicketType is one entry of the query/grievance taxonomy.
type TicketType struct {
	Key         string
	Name        string
	Description string
	Examples    []string
	Department  string
	Category    Category
	Severity    Severity
}

// IntentScore pairs a detected intent with its cosine similarity.
type IntentScore struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// EntityBag maps entity kinds to the first matched value. Keys are present
// only when a pattern matched.
type EntityBag map[string]string

// Entity kinds produced by the extractor.
const (
	EntityAmount    = "amount"
	EntityService   = "service"
	EntityIssue     = "issue"
	EntityPlanName  = "plan_name"
	EntityTimeframe = "timeframe"
)

// Classification is the immutable result of classifying one utterance.
type Classification struct {
	Intents       []IntentScore
	Entities      EntityBag
	Category      Category
	Type          string
	TypeName      string
	Department    string
	Severity      Severity
	Confidence    float64
	Tags          []string
	Routing       string
	PrimaryIntent string
	OriginalQuery string
}

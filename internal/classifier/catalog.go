package classifier

import (
	"strings"

	"github.com/spec-kit/telecom-triage/internal/domain"
)

// Department names used across the taxonomy and reporting surfaces.
const (
	DeptCustomerSupport  = "Customer Support"
	DeptSales            = "Sales"
	DeptTechnicalSupport = "Technical Support"
	DeptNetworkOps       = "Network Operations"
	DeptBilling          = "Billing Department"
)

// IntentCatalog lists the coarse intents detected per utterance. Declaration
// order is the tie-break order for equal similarity scores.
func IntentCatalog() []domain.IntentLabel {
	return []domain.IntentLabel{
		{Key: "BALANCE_QUERY", Description: "User wants to check data balance, remaining quota, or how much data is left"},
		{Key: "NETWORK_ISSUE", Description: "User experiencing slow internet, connection problems, network down, poor signal"},
		{Key: "RECHARGE_REQUEST", Description: "User wants to recharge, top-up, buy a plan, or inquire about recharge options"},
		{Key: "BILLING_COMPLAINT", Description: "User has billing issues, wrong charges, unexpected deductions, refund requests"},
		{Key: "SUPPORT_REQUEST", Description: "User needs help, wants to talk to customer care, has a general complaint"},
		{Key: "OFFER_INQUIRY", Description: "User asking about discounts, cashback, promotional offers, deals"},
		{Key: "PLAN_CHANGE", Description: "User wants to upgrade, downgrade, switch plans, or modify their subscription"},
		{Key: "TECHNICAL_SUPPORT", Description: "User has technical issues like SIM problems, app not working, configuration issues"},
	}
}

// UnclassifiedType is the fallback assigned when a minimum type confidence is
// configured and no catalog entry clears it.
func UnclassifiedType() domain.TicketType {
	return domain.TicketType{
		Key:         "UNCLASSIFIED",
		Name:        "Unclassified",
		Description: "Utterance below the configured type confidence floor, needs human review",
		Department:  DeptCustomerSupport,
		Category:    domain.CategoryQuery,
	}
}

// TypeCatalog lists the full query/grievance taxonomy. Embeddings are
// computed once per entry from EmbeddingText.
func TypeCatalog() []domain.TicketType {
	return []domain.TicketType{
		// Informational or transactional query types, auto-resolved at creation.
		{
			Key:         "BALANCE_CHECK",
			Name:        "Balance Check",
			Description: "User wants to check remaining data, SMS, call balance",
			Department:  DeptCustomerSupport,
			Category:    domain.CategoryQuery,
			Examples: []string{
				"Kitna data bacha hai?",
				"How much data is left?",
				"Mera balance batao",
				"Data balance check karna hai",
				"Remaining quota kitna hai",
			},
		},
		{
			Key:         "PLAN_INQUIRY",
			Name:        "Plan Information",
			Description: "User asking about current plan, plan details, validity",
			Department:  DeptCustomerSupport,
			Category:    domain.CategoryQuery,
			Examples: []string{
				"Mera current plan kya hai?",
				"What is my active plan?",
				"Plan details batao",
				"Validity kitni baki hai",
			},
		},
		{
			Key:         "RECHARGE_INQUIRY",
			Name:        "Recharge Plans",
			Description: "User asking about recharge options, plan prices",
			Department:  DeptSales,
			Category:    domain.CategoryQuery,
			Examples: []string{
				"500 rupees mein best plan",
				"Recharge plans batao",
				"300 ka plan hai kya",
				"Cheapest plan under 200",
			},
		},
		{
			Key:         "OFFER_INQUIRY",
			Name:        "Offers & Promotions",
			Description: "User asking about discounts, cashback, deals",
			Department:  DeptSales,
			Category:    domain.CategoryQuery,
			Examples: []string{
				"Koi offer chal raha hai?",
				"Discount available hai kya",
				"Cashback milega kya",
				"Promotional offers",
			},
		},
		{
			Key:         "VALIDITY_INQUIRY",
			Name:        "Validity Check",
			Description: "User wants to know plan expiry, validity remaining",
			Department:  DeptCustomerSupport,
			Category:    domain.CategoryQuery,
			Examples: []string{
				"Plan kab expire hoga?",
				"Validity kitni baki hai",
				"Expiry date kya hai",
				"Kitne din aur valid hai",
			},
		},
		{
			Key:         "USAGE_INQUIRY",
			Name:        "Usage History",
			Description: "User asking about data usage, call history",
			Department:  DeptCustomerSupport,
			Category:    domain.CategoryQuery,
			Examples: []string{
				"Kitna data use ho gaya",
				"Usage history batao",
				"Call details chahiye",
				"Data consumption check",
			},
		},
		{
			Key:         "CUSTOMER_CARE_INQUIRY",
			Name:        "Contact Information",
			Description: "User asking for helpline numbers, support channels",
			Department:  DeptCustomerSupport,
			Category:    domain.CategoryQuery,
			Examples: []string{
				"Customer care number kya hai",
				"Helpline number batao",
				"Support kaise contact kare",
				"Toll free number",
			},
		},
		{
			Key:         "SERVICE_ACTIVATION",
			Name:        "Service Activation",
			Description: "User wants to activate services (roaming, DND, VAS)",
			Department:  DeptTechnicalSupport,
			Category:    domain.CategoryQuery,
			Examples: []string{
				"Roaming activate kaise kare",
				"DND service chahiye",
				"International roaming",
				"Data pack subscribe",
			},
		},

		// Grievance types, opened for resolution at creation.
		{
			Key:         "NETWORK_CONNECTIVITY",
			Name:        "Network Connectivity Issue",
			Description: "No network, connection drops, signal problems",
			Department:  DeptNetworkOps,
			Category:    domain.CategoryGrievance,
			Severity:    domain.SeverityHigh,
			Examples: []string{
				"Network nahi aa raha",
				"No signal",
				"Network not working",
				"Signal strength bahut weak",
			},
		},
		{
			Key:         "SLOW_INTERNET",
			Name:        "Slow Internet Speed",
			Description: "Internet speed issues, buffering, slow browsing",
			Department:  DeptNetworkOps,
			Category:    domain.CategoryGrievance,
			Severity:    domain.SeverityMedium,
			Examples: []string{
				"Internet bahut slow hai",
				"Speed kam hai",
				"Buffering ho raha hai",
				"Download nahi ho raha",
			},
		},
		{
			Key:         "BILLING_DISPUTE",
			Name:        "Billing Complaint",
			Description: "Wrong charges, unexpected deductions, billing errors",
			Department:  DeptBilling,
			Category:    domain.CategoryGrievance,
			Severity:    domain.SeverityHigh,
			Examples: []string{
				"Bill mein galat charge hai",
				"Extra amount deduct hua",
				"Overcharged ho gaya",
				"Refund chahiye",
			},
		},
		{
			Key:         "RECHARGE_FAILURE",
			Name:        "Recharge Failed",
			Description: "Recharge not reflecting, payment deducted but no credit",
			Department:  DeptTechnicalSupport,
			Category:    domain.CategoryGrievance,
			Severity:    domain.SeverityHigh,
			Examples: []string{
				"Recharge nahi hua",
				"Payment cut gaya par plan nahi mila",
				"Transaction failed",
				"Recharge not reflecting",
			},
		},
		{
			Key:         "CALL_DROPS",
			Name:        "Call Dropping",
			Description: "Calls getting disconnected frequently",
			Department:  DeptNetworkOps,
			Category:    domain.CategoryGrievance,
			Severity:    domain.SeverityMedium,
			Examples: []string{
				"Call bar bar disconnect ho jati hai",
				"Call drop problem",
				"Call automatically cut ho jata hai",
				"Frequent call drops",
			},
		},
		{
			Key:         "DATA_NOT_WORKING",
			Name:        "Mobile Data Not Working",
			Description: "Mobile data not functioning despite active plan",
			Department:  DeptTechnicalSupport,
			Category:    domain.CategoryGrievance,
			Severity:    domain.SeverityHigh,
			Examples: []string{
				"Data nahi chal raha",
				"Mobile data not working",
				"Internet on nahi ho raha",
				"4G not working",
			},
		},
		{
			Key:         "SIM_ISSUE",
			Name:        "SIM Card Problem",
			Description: "SIM not detected, invalid SIM, SIM errors",
			Department:  DeptTechnicalSupport,
			Category:    domain.CategoryGrievance,
			Severity:    domain.SeverityHigh,
			Examples: []string{
				"SIM detect nahi ho raha",
				"Invalid SIM error",
				"No SIM card detected",
				"Emergency calls only",
			},
		},
		{
			Key:         "PORT_REQUEST_ISSUE",
			Name:        "Porting Problem",
			Description: "Number portability issues, port request pending/failed",
			Department:  DeptCustomerSupport,
			Category:    domain.CategoryGrievance,
			Severity:    domain.SeverityMedium,
			Examples: []string{
				"Port request pending hai",
				"Number port nahi ho raha",
				"MNP failed",
				"UPC code problem",
			},
		},
		{
			Key:         "SERVICE_DEACTIVATION",
			Name:        "Unwanted Service Deactivation",
			Description: "Services stopped without request, auto-deactivation",
			Department:  DeptTechnicalSupport,
			Category:    domain.CategoryGrievance,
			Severity:    domain.SeverityMedium,
			Examples: []string{
				"Service apne aap band ho gaya",
				"Auto deactivation hua",
				"Services stopped suddenly",
				"Plan cancelled without permission",
			},
		},
		{
			Key:         "POOR_CALL_QUALITY",
			Name:        "Voice Quality Issue",
			Description: "Echo, distortion, voice breaking in calls",
			Department:  DeptNetworkOps,
			Category:    domain.CategoryGrievance,
			Severity:    domain.SeverityMedium,
			Examples: []string{
				"Call mein echo aa raha hai",
				"Voice quality poor",
				"Voice break ho rahi hai",
				"Call mein noise",
			},
		},
		{
			Key:         "APP_NOT_WORKING",
			Name:        "Mobile App Issue",
			Description: "Company app crashing, login issues, app errors",
			Department:  DeptTechnicalSupport,
			Category:    domain.CategoryGrievance,
			Severity:    domain.SeverityLow,
			Examples: []string{
				"App crash ho raha hai",
				"Login nahi ho raha app mein",
				"App not opening",
				"App hang kar raha hai",
			},
		},
		{
			Key:         "UNWANTED_CHARGES",
			Name:        "Unauthorized Charges",
			Description: "Unknown charges, VAS charges without consent",
			Department:  DeptBilling,
			Category:    domain.CategoryGrievance,
			Severity:    domain.SeverityHigh,
			Examples: []string{
				"Unknown service ka charge",
				"VAS charge kyu hua",
				"Unauthorized deduction",
				"Fraudulent charge",
			},
		},
	}
}

// maxEmbeddingExamples caps how many example utterances join the synthesized
// description embedded per catalog type.
const maxEmbeddingExamples = 3

// EmbeddingText synthesizes the string embedded for a catalog type: name,
// description and up to three examples.
func EmbeddingText(t domain.TicketType) string {
	parts := []string{t.Name, t.Description}
	limit := len(t.Examples)
	if limit > maxEmbeddingExamples {
		limit = maxEmbeddingExamples
	}
	parts = append(parts, t.Examples[:limit]...)
	return strings.Join(parts, ". ")
}

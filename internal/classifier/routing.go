package classifier

// Routing destination identifiers.
const (
	RouteTechnicalSupport = "technical_support"
	RouteBillingTeam      = "billing_team"
	RouteSalesTeam        = "sales_team"
	RouteAutomatedSystem  = "automated_system"
	RouteCustomerSupport  = "customer_support"
	RouteGeneralSupport   = "general_support"
)

var routingMap = map[string]string{
	"NETWORK_ISSUE":     RouteTechnicalSupport,
	"TECHNICAL_SUPPORT": RouteTechnicalSupport,
	"BILLING_COMPLAINT": RouteBillingTeam,
	"RECHARGE_REQUEST":  RouteAutomatedSystem,
	"BALANCE_QUERY":     RouteAutomatedSystem,
	"PLAN_CHANGE":       RouteSalesTeam,
	"OFFER_INQUIRY":     RouteSalesTeam,
	"SUPPORT_REQUEST":   RouteCustomerSupport,
}

// routingDepartments maps destinations to the friendly department names the
// reporting surfaces display.
var routingDepartments = map[string]string{
	RouteTechnicalSupport: DeptTechnicalSupport,
	RouteBillingTeam:      DeptBilling,
	RouteSalesTeam:        DeptSales,
	RouteCustomerSupport:  DeptCustomerSupport,
	RouteAutomatedSystem:  DeptCustomerSupport,
	RouteGeneralSupport:   DeptCustomerSupport,
}

// RouteForIntent resolves the handling destination for a primary intent,
// defaulting to general support for UNKNOWN or unmapped labels.
func RouteForIntent(primaryIntent string) string {
	if destination, ok := routingMap[primaryIntent]; ok {
		return destination
	}
	return RouteGeneralSupport
}

// DepartmentForRoute resolves the display department for a destination.
func DepartmentForRoute(destination string) string {
	if dept, ok := routingDepartments[destination]; ok {
		return dept
	}
	return DeptCustomerSupport
}

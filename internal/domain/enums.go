package domain

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskLevelForScore buckets a 1-10 risk score: <=3 low, 4-6 medium, >=7 high.
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score <= 3:
		return RiskLow
	case score <= 6:
		return RiskMedium
	default:
		return RiskHigh
	}
}

type ProjectStatus string

const (
	ProjectAvailable ProjectStatus = "available"
	ProjectSelected  ProjectStatus = "selected"
	ProjectExcluded  ProjectStatus = "excluded"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[string]bool{
	"available": true, "selected": true, "excluded": true,
}

type BudgetMode string

const (
	BudgetModePercent BudgetMode = "percent"
	BudgetModeDollar  BudgetMode = "dollar"
)

// ValidBudgetModes is the canonical set of accepted budget mode strings.
var ValidBudgetModes = map[string]bool{"percent": true, "dollar": true}

type ApprovalRole string

const (
	RoleDomainOwner ApprovalRole = "domain_owner"
	RoleFinance     ApprovalRole = "finance"
	RoleRisk        ApprovalRole = "risk"
	RoleExecutive   ApprovalRole = "executive"
)

// AllApprovalRoles lists every role in the approval matrix, in display order.
var AllApprovalRoles = []ApprovalRole{RoleDomainOwner, RoleFinance, RoleRisk, RoleExecutive}

type ApprovalState string

const (
	ApprovalNotStarted ApprovalState = "not_started"
	ApprovalPending    ApprovalState = "pending"
	ApprovalApproved   ApprovalState = "approved"
	ApprovalRejected   ApprovalState = "rejected"
)

// ValidApprovalStates is the canonical set of accepted approval state strings.
var ValidApprovalStates = map[string]bool{
	"not_started": true, "pending": true, "approved": true, "rejected": true,
}

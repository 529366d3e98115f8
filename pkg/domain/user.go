package domain

import "time"

// User represents a registered MoReach account as returned by the API.
// Date fields are pointers because the server omits them when they do not
// apply (e.g. trial_ends_at on a paid plan).
type User struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	FullName           string     `json:"full_name,omitempty"`
	Company            string     `json:"company,omitempty"`
	JobTitle           string     `json:"job_title,omitempty"`
	Industry           string     `json:"industry,omitempty"`
	UsageType          string     `json:"usage_type,omitempty"`
	Role               string     `json:"role"`
	IsActive           bool       `json:"is_active"`
	EmailVerified      bool       `json:"email_verified"`
	ProfileCompleted   bool       `json:"profile_completed"`
	SubscriptionTier   string     `json:"subscription_tier"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// RoleUser is the only role the client ever acts as; administrative roles
// exist server-side only.
const RoleUser = "USER"

// Subscription tiers.
const (
	TierFreeTrial = "FREE_TRIAL"
	TierMonthly   = "MONTHLY"
	TierAnnually  = "ANNUALLY"
	TierExpired   = "EXPIRED"
)

// PaidTier returns true if the tier is a recognized paid plan.
func PaidTier(tier string) bool {
	return tier == TierMonthly || tier == TierAnnually
}

// IndustryOther is the free-form fallback when none of the fixed options fit.
const IndustryOther = "Other"

// Industries a user can pick during profile completion.
var Industries = []string{
	"Technology",
	"Marketing & Advertising",
	"Finance",
	"Healthcare",
	"E-commerce & Retail",
	"Real Estate",
	"Education",
	"Consulting",
	"Recruiting & Staffing",
	"Manufacturing",
	IndustryOther,
}

// UsageTypes describe what the account is used for.
var UsageTypes = []string{
	"Founder / Business Owner",
	"Sales",
	"Marketing",
	"Recruiting",
	"Agency",
	"Personal",
}

var industrySet = func() map[string]bool {
	m := make(map[string]bool, len(Industries))
	for _, s := range Industries {
		m[s] = true
	}
	return m
}()

var usageTypeSet = func() map[string]bool {
	m := make(map[string]bool, len(UsageTypes))
	for _, s := range UsageTypes {
		m[s] = true
	}
	return m
}()

// ValidIndustry returns true if the given value is a known industry option.
func ValidIndustry(s string) bool {
	return industrySet[s]
}

// ValidUsageType returns true if the given value is a known usage type.
func ValidUsageType(s string) bool {
	return usageTypeSet[s]
}

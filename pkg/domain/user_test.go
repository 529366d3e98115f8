package domain

import "testing"

func TestValidIndustry(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"valid technology", "Technology", true},
		{"valid finance", "Finance", true},
		{"valid consulting", "Consulting", true},
		{"valid fallback", "Other", true},
		{"invalid empty", "", false},
		{"invalid lowercase", "technology", false},
		{"invalid unknown", "Basket weaving", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidIndustry(tt.value); got != tt.valid {
				t.Errorf("ValidIndustry(%q) = %v, want %v", tt.value, got, tt.valid)
			}
		})
	}
}

func TestValidUsageType(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"valid sales", "Sales", true},
		{"valid founder", "Founder / Business Owner", true},
		{"valid personal", "Personal", true},
		{"invalid empty", "", false},
		{"invalid unknown", "Espionage", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidUsageType(tt.value); got != tt.valid {
				t.Errorf("ValidUsageType(%q) = %v, want %v", tt.value, got, tt.valid)
			}
		})
	}
}

func TestPaidTier(t *testing.T) {
	tests := []struct {
		tier string
		want bool
	}{
		{TierMonthly, true},
		{TierAnnually, true},
		{TierFreeTrial, false},
		{TierExpired, false},
		{"", false},
		{"LIFETIME", false},
	}

	for _, tt := range tests {
		if got := PaidTier(tt.tier); got != tt.want {
			t.Errorf("PaidTier(%q) = %v, want %v", tt.tier, got, tt.want)
		}
	}
}

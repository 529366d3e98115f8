package tui

import (
	"strings"
	"testing"

	"github.com/wkwunju/moreach-sub001/pkg/domain"
	"github.com/wkwunju/moreach-sub001/pkg/session"
)

func validProfileModel() profileModel {
	var m profileModel
	m.fields[fieldFullName] = "Jo Smith"
	m.fields[fieldIndustry] = "Technology"
	m.fields[fieldUsageType] = "Sales"
	return m
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*profileModel)
		wantMsg string
	}{
		{"complete form", func(_ *profileModel) {}, ""},
		{"missing name", func(m *profileModel) { m.fields[fieldFullName] = "" }, "full name is required"},
		{"whitespace name", func(m *profileModel) { m.fields[fieldFullName] = "   " }, "full name is required"},
		{"missing industry", func(m *profileModel) { m.fields[fieldIndustry] = "" }, "industry is required (use h/l to select)"},
		{"bogus industry", func(m *profileModel) { m.fields[fieldIndustry] = "nope" }, "unknown industry"},
		{"missing usage", func(m *profileModel) { m.fields[fieldUsageType] = "" }, "usage type is required (use h/l to select)"},
		{"bogus usage", func(m *profileModel) { m.fields[fieldUsageType] = "nope" }, "unknown usage type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validProfileModel()
			tt.mutate(&m)
			if got := m.validate(); got != tt.wantMsg {
				t.Errorf("validate() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestProfilePrefillFromStore(t *testing.T) {
	store := session.NewStore(session.NewMemKV())
	svc := session.NewService(store, nil, session.NewBus(), nil)
	if err := svc.Login("tok", &domain.User{
		FullName:  "Jo Smith",
		Company:   "Acme",
		Industry:  "Finance",
		UsageType: "Sales",
	}); err != nil {
		t.Fatal(err)
	}

	m := newProfileModel(nil, svc)
	if m.fields[fieldFullName] != "Jo Smith" {
		t.Errorf("fullName = %q, want prefilled", m.fields[fieldFullName])
	}
	if m.fields[fieldCompany] != "Acme" {
		t.Errorf("company = %q, want prefilled", m.fields[fieldCompany])
	}
	if m.fields[fieldIndustry] != "Finance" {
		t.Errorf("industry = %q, want prefilled", m.fields[fieldIndustry])
	}
}

func TestProfileViewShowsValidationError(t *testing.T) {
	store := session.NewStore(session.NewMemKV())
	svc := session.NewService(store, nil, session.NewBus(), nil)

	m := newProfileModel(nil, svc)
	m, _ = m.submit()
	if m.errMsg == "" {
		t.Fatal("submit() on empty form produced no validation message")
	}
	if !strings.Contains(m.View(), m.errMsg) {
		t.Error("View() does not render the validation message")
	}
}

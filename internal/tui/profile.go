package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wkwunju/moreach-sub001/pkg/client"
	"github.com/wkwunju/moreach-sub001/pkg/domain"
	"github.com/wkwunju/moreach-sub001/pkg/session"
)

type profileField int

const (
	fieldFullName profileField = iota
	fieldCompany
	fieldJobTitle
	fieldIndustry
	fieldUsageType
	numProfileFields
)

var profileLabels = [numProfileFields]string{
	"Full name",
	"Company",
	"Job title",
	"Industry",
	"Usage",
}

// profileSavedMsg carries the result of the complete-profile call.
type profileSavedMsg struct {
	user *domain.User
	err  error
}

type profileModel struct {
	client    *client.Client
	svc       *session.Service
	fields    [numProfileFields]string
	focus     profileField
	submitted bool
	statusMsg string
	errMsg    string
}

func newProfileModel(c *client.Client, svc *session.Service) profileModel {
	m := profileModel{client: c, svc: svc}
	m.prefill()
	return m
}

// prefill seeds the form from the cached user record.
func (m *profileModel) prefill() {
	u := m.svc.Store().User()
	if u == nil {
		return
	}
	if m.fields[fieldFullName] == "" {
		m.fields[fieldFullName] = u.FullName
	}
	if m.fields[fieldCompany] == "" {
		m.fields[fieldCompany] = u.Company
	}
	if m.fields[fieldJobTitle] == "" {
		m.fields[fieldJobTitle] = u.JobTitle
	}
	if m.fields[fieldIndustry] == "" {
		m.fields[fieldIndustry] = u.Industry
	}
	if m.fields[fieldUsageType] == "" {
		m.fields[fieldUsageType] = u.UsageType
	}
}

func (m profileModel) Init() tea.Cmd {
	return nil
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		m.submitted = false
		if msg.err != nil {
			m.errMsg = client.Detail(msg.err)
			return m, nil
		}
		m.statusMsg = "profile saved"
		// Write the fresh record back through the session service so every
		// other page sees it.
		if err := m.svc.SetUser(msg.user); err != nil {
			m.errMsg = err.Error()
		}
		return m, nil

	case sessionChangedMsg:
		m.prefill()
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m profileModel) updateKeys(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	m.statusMsg = ""
	m.errMsg = ""

	key := msg.String()
	switch key {
	case "ctrl+s":
		return m.submit()
	case "tab", "down":
		m.focus = (m.focus + 1) % numProfileFields
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numProfileFields) % numProfileFields
		return m, nil
	case "enter":
		m.focus = (m.focus + 1) % numProfileFields
		return m, nil
	}

	// Industry and usage are pickers: cycle with left/right.
	if m.focus == fieldIndustry || m.focus == fieldUsageType {
		opts := domain.Industries
		if m.focus == fieldUsageType {
			opts = domain.UsageTypes
		}
		switch key {
		case "right", "l":
			m.fields[m.focus] = cycleOption(opts, m.fields[m.focus], true)
			return m, nil
		case "left", "h":
			m.fields[m.focus] = cycleOption(opts, m.fields[m.focus], false)
			return m, nil
		}
		return m, nil
	}

	m.fields[m.focus] = editRune(m.fields[m.focus], key)
	return m, nil
}

// validate checks required fields before any network call.
func (m profileModel) validate() string {
	if strings.TrimSpace(m.fields[fieldFullName]) == "" {
		return "full name is required"
	}
	if m.fields[fieldIndustry] == "" {
		return "industry is required (use h/l to select)"
	}
	if !domain.ValidIndustry(m.fields[fieldIndustry]) {
		return "unknown industry"
	}
	if m.fields[fieldUsageType] == "" {
		return "usage type is required (use h/l to select)"
	}
	if !domain.ValidUsageType(m.fields[fieldUsageType]) {
		return "unknown usage type"
	}
	return ""
}

func (m profileModel) submit() (profileModel, tea.Cmd) {
	if msg := m.validate(); msg != "" {
		m.errMsg = msg
		return m, nil
	}

	m.submitted = true
	req := client.CompleteProfileRequest{
		FullName:  strings.TrimSpace(m.fields[fieldFullName]),
		Company:   strings.TrimSpace(m.fields[fieldCompany]),
		JobTitle:  strings.TrimSpace(m.fields[fieldJobTitle]),
		Industry:  m.fields[fieldIndustry],
		UsageType: m.fields[fieldUsageType],
	}
	c := m.client
	return m, func() tea.Msg {
		user, err := c.CompleteProfile(context.Background(), req)
		return profileSavedMsg{user: user, err: err}
	}
}

func (m profileModel) View() string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("COMPLETE YOUR PROFILE") + "\n\n")

	for f := profileField(0); f < numProfileFields; f++ {
		label := profileLabels[f]
		val := m.fields[f]
		focused := f == m.focus

		prefix := "  "
		labelStyle := dimStyle
		if focused {
			prefix = accentStyle.Render("> ")
			labelStyle = selectedStyle
		}

		rendered := normalStyle.Render(val)
		if val == "" {
			placeholder := "type here"
			if f == fieldIndustry || f == fieldUsageType {
				placeholder = "h/l to select"
			}
			rendered = inputPlaceholderStyle.Render(placeholder)
		} else if f == fieldIndustry || f == fieldUsageType {
			rendered = accentStyle.Render("‹ ") + normalStyle.Render(val) + accentStyle.Render(" ›")
		}
		if focused && f != fieldIndustry && f != fieldUsageType {
			rendered += accentStyle.Render("█")
		}

		b.WriteString(prefix + labelStyle.Render(label) + "  " + rendered + "\n")
	}

	b.WriteString("\n" + helpLine("tab", "next field", "h/l", "pick option", "ctrl+s", "save"))
	if m.submitted {
		b.WriteString("\n\n" + dimStyle.Render("saving…"))
	} else if m.errMsg != "" {
		b.WriteString("\n\n" + errStyle.Render(m.errMsg))
	} else if m.statusMsg != "" {
		b.WriteString("\n\n" + okStyle.Render(m.statusMsg))
	}
	return b.String()
}

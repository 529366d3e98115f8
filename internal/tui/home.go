package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wkwunju/moreach-sub001/pkg/domain"
	"github.com/wkwunju/moreach-sub001/pkg/session"
)

// refreshDoneMsg carries the result of a forced server round-trip. stale
// means a transient failure served the cached record instead of a fresh one.
type refreshDoneMsg struct {
	user  *domain.User
	stale bool
}

type homeModel struct {
	svc        *session.Service
	width      int
	height     int
	refreshing bool
	notice     string
}

func newHomeModel(svc *session.Service) homeModel {
	return homeModel{svc: svc}
}

func (m homeModel) Init() tea.Cmd {
	return nil
}

func (m homeModel) refresh() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		u, stale := svc.RefreshUser(context.Background())
		return refreshDoneMsg{user: u, stale: stale}
	}
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case refreshDoneMsg:
		m.refreshing = false
		switch {
		case !m.svc.IsAuthenticated():
			m.notice = "session expired — run `moreach login`"
		case msg.user == nil:
			m.notice = "could not reach the server"
		case msg.stale:
			m.notice = "could not reach the server — showing cached data"
		default:
			m.notice = "account refreshed"
		}
		return m, nil

	case sessionChangedMsg:
		// Nothing cached here; View re-reads the store.
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" && !m.refreshing {
			m.refreshing = true
			m.notice = ""
			return m, m.refresh()
		}
	}
	return m, nil
}

// entitlementBanner summarizes product access for the cached user.
func (m homeModel) entitlementBanner(u *domain.User) string {
	switch {
	case m.svc.IsTrialActive():
		days := m.svc.TrialDaysRemaining()
		label := fmt.Sprintf("Free trial — %d day", days)
		if days != 1 {
			label += "s"
		}
		label += " left"
		return warnStyle.Render(label)
	case m.svc.IsSubscriptionActive():
		label := u.SubscriptionTier + " plan"
		if u.SubscriptionEndsAt != nil {
			label += " · renews by " + formatDate(*u.SubscriptionEndsAt)
		}
		return okStyle.Render(label)
	default:
		return errStyle.Render("Subscription expired — press 5 to upgrade")
	}
}

func (m homeModel) View() string {
	var b strings.Builder

	if !m.svc.IsAuthenticated() {
		b.WriteString(dimStyle.Render("Not signed in. Run `moreach login` from your shell.") + "\n")
		return b.String()
	}

	u := m.svc.Store().User()
	if u == nil {
		b.WriteString(dimStyle.Render("Signed in, account details not loaded yet.") + "\n\n")
		b.WriteString(helpLine("r", "refresh"))
		if m.notice != "" {
			b.WriteString("\n\n" + metaStyle.Render(m.notice))
		}
		return b.String()
	}

	name := u.FullName
	if name == "" {
		name = u.Email
	}
	b.WriteString(selectedStyle.Render(name) + "  " + metaStyle.Render(u.Email) + "\n\n")
	b.WriteString(m.entitlementBanner(u) + "\n\n")

	if !u.EmailVerified {
		b.WriteString(warnStyle.Render("✗ email not verified") + dimStyle.Render(" — press 4") + "\n")
	} else {
		b.WriteString(okStyle.Render("✓ email verified") + "\n")
	}
	if !u.ProfileCompleted {
		b.WriteString(warnStyle.Render("✗ profile incomplete") + dimStyle.Render(" — press 3") + "\n")
	} else {
		b.WriteString(okStyle.Render("✓ profile complete") + "\n")
	}
	if u.Company != "" {
		b.WriteString("\n" + dimStyle.Render(u.Company))
		if u.JobTitle != "" {
			b.WriteString(metaStyle.Render(" · " + u.JobTitle))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + metaStyle.Render("member since "+formatDate(u.CreatedAt)) + "\n")

	b.WriteString("\n" + helpLine("r", "refresh"))
	if m.refreshing {
		b.WriteString("\n\n" + dimStyle.Render("refreshing…"))
	} else if m.notice != "" {
		b.WriteString("\n\n" + metaStyle.Render(m.notice))
	}
	return b.String()
}

package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wkwunju/moreach-sub001/pkg/client"
	"github.com/wkwunju/moreach-sub001/pkg/session"
)

// verifyDoneMsg carries the verification result.
type verifyDoneMsg struct {
	message string
	err     error
}

// resendDoneMsg carries the resend-verification result.
type resendDoneMsg struct {
	err error
}

type verifyModel struct {
	client    *client.Client
	svc       *session.Service
	token     string
	busy      bool
	statusMsg string
	errMsg    string
}

func newVerifyModel(c *client.Client, svc *session.Service) verifyModel {
	return verifyModel{client: c, svc: svc}
}

func (m verifyModel) Init() tea.Cmd {
	return nil
}

func (m verifyModel) Update(msg tea.Msg) (verifyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case verifyDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = client.Detail(msg.err)
			return m, nil
		}
		m.statusMsg = msg.message
		if m.statusMsg == "" {
			m.statusMsg = "email verified"
		}
		m.token = ""
		// The stored user record still says unverified; pull the fresh one.
		svc := m.svc
		return m, func() tea.Msg {
			u, stale := svc.RefreshUser(context.Background())
			return refreshDoneMsg{user: u, stale: stale}
		}

	case resendDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = client.Detail(msg.err)
			return m, nil
		}
		m.statusMsg = "verification email sent — check your inbox"
		return m, nil

	case sessionChangedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m verifyModel) updateKeys(msg tea.KeyMsg) (verifyModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.statusMsg = ""
	m.errMsg = ""

	switch msg.String() {
	case "enter":
		token := strings.TrimSpace(m.token)
		if token == "" {
			m.errMsg = "paste the token from your verification email"
			return m, nil
		}
		m.busy = true
		c := m.client
		return m, func() tea.Msg {
			resp, err := c.VerifyEmail(context.Background(), token)
			if err != nil {
				return verifyDoneMsg{err: err}
			}
			return verifyDoneMsg{message: resp.Message}
		}
	case "ctrl+r":
		m.busy = true
		c := m.client
		return m, func() tea.Msg {
			return resendDoneMsg{err: c.ResendVerification(context.Background())}
		}
	default:
		m.token = editRune(m.token, msg.String())
	}
	return m, nil
}

func (m verifyModel) View() string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("VERIFY YOUR EMAIL") + "\n\n")

	u := m.svc.Store().User()
	if u != nil && u.EmailVerified {
		b.WriteString(okStyle.Render("✓ your email is verified") + "\n")
		return b.String()
	}

	b.WriteString(dimStyle.Render("Paste the token from the email we sent you:") + "\n\n")
	if m.token == "" {
		b.WriteString("  " + inputPlaceholderStyle.Render("verification token") + accentStyle.Render("█") + "\n")
	} else {
		b.WriteString("  " + normalStyle.Render(m.token) + accentStyle.Render("█") + "\n")
	}

	b.WriteString("\n" + helpLine("enter", "verify", "ctrl+r", "resend email"))
	if m.busy {
		b.WriteString("\n\n" + dimStyle.Render("working…"))
	} else if m.errMsg != "" {
		b.WriteString("\n\n" + errStyle.Render(m.errMsg))
	} else if m.statusMsg != "" {
		b.WriteString("\n\n" + okStyle.Render(m.statusMsg))
	}
	return b.String()
}

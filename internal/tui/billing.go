package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wkwunju/moreach-sub001/internal/browser"
	"github.com/wkwunju/moreach-sub001/pkg/client"
	"github.com/wkwunju/moreach-sub001/pkg/domain"
	"github.com/wkwunju/moreach-sub001/pkg/session"
)

// plans the picker cycles through, in display order.
var plans = []struct {
	tier  string
	label string
	price string
}{
	{domain.TierMonthly, "Monthly", "$49 / month"},
	{domain.TierAnnually, "Annual", "$39 / month, billed yearly"},
}

// checkoutCreatedMsg carries the checkout session result.
type checkoutCreatedMsg struct {
	sess *client.CheckoutSession
	err  error
}

// checkoutCopiedMsg reports the clipboard write result.
type checkoutCopiedMsg struct {
	err error
}

type billingModel struct {
	client    *client.Client
	svc       *session.Service
	cursor    int
	checkout  *client.CheckoutSession
	busy      bool
	statusMsg string
	errMsg    string
}

func newBillingModel(c *client.Client, svc *session.Service) billingModel {
	return billingModel{client: c, svc: svc}
}

func (m billingModel) Init() tea.Cmd {
	return nil
}

func (m billingModel) Update(msg tea.Msg) (billingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case checkoutCreatedMsg:
		m.busy = false
		if msg.err != nil {
			// Checkout failures surface the server's message verbatim.
			m.errMsg = client.Detail(msg.err)
			return m, nil
		}
		m.checkout = msg.sess
		m.statusMsg = "checkout ready — press o to open in browser"
		return m, nil

	case checkoutCopiedMsg:
		if msg.err != nil {
			m.errMsg = "could not copy to clipboard"
		} else {
			m.statusMsg = "checkout URL copied"
		}
		return m, nil

	case sessionChangedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m billingModel) updateKeys(msg tea.KeyMsg) (billingModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.statusMsg = ""
	m.errMsg = ""

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(plans)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		m.busy = true
		plan := plans[m.cursor].tier
		c := m.client
		return m, func() tea.Msg {
			sess, err := c.CreateCheckoutSession(context.Background(), plan)
			return checkoutCreatedMsg{sess: sess, err: err}
		}
	case "o":
		if m.checkout != nil {
			browser.Open(m.checkout.CheckoutURL) //nolint:errcheck // best-effort browser open
			m.statusMsg = "opened in browser — come back and press r on Home once paid"
		}
	case "c":
		if m.checkout != nil {
			url := m.checkout.CheckoutURL
			return m, func() tea.Msg {
				return checkoutCopiedMsg{err: clipboard.WriteAll(url)}
			}
		}
	}
	return m, nil
}

func (m billingModel) View() string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("UPGRADE") + "\n\n")

	if m.svc.IsSubscriptionActive() && !m.svc.IsTrialActive() {
		u := m.svc.Store().User()
		b.WriteString(okStyle.Render("You're on the "+u.SubscriptionTier+" plan.") + "\n")
		return b.String()
	}

	for i, p := range plans {
		prefix := "  "
		nameStyle := normalStyle
		if i == m.cursor {
			prefix = accentStyle.Render("> ")
			nameStyle = selectedStyle
		}
		b.WriteString(prefix + nameStyle.Render(p.label) + "  " + dimStyle.Render(p.price) + "\n")
	}

	if m.checkout != nil {
		b.WriteString("\n" + dimStyle.Render(truncStr(m.checkout.CheckoutURL, 72)) + "\n")
		b.WriteString("\n" + helpLine("o", "open", "c", "copy URL", "enter", "new session"))
	} else {
		b.WriteString("\n" + helpLine("j/k", "pick plan", "enter", "checkout"))
	}

	if m.busy {
		b.WriteString("\n\n" + dimStyle.Render("creating checkout session…"))
	} else if m.errMsg != "" {
		b.WriteString("\n\n" + errStyle.Render(m.errMsg))
	} else if m.statusMsg != "" {
		b.WriteString("\n\n" + okStyle.Render(m.statusMsg))
	}
	return b.String()
}

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wkwunju/moreach-sub001/pkg/client"
	"github.com/wkwunju/moreach-sub001/pkg/session"
)

type view int

const (
	viewHome view = iota
	viewCampaigns
	viewProfile
	viewVerify
	viewBilling
)

// sessionChangedMsg is delivered whenever the session bus fires. It carries
// no data: pages re-read the session store.
type sessionChangedMsg struct{}

// App is the root Bubbletea model.
type App struct {
	svc       *session.Service
	client    *client.Client
	version   string
	view      view
	home      homeModel
	campaigns campaignsModel
	profile   profileModel
	verify    verifyModel
	billing   billingModel
	width     int
	height    int

	// sessionCh bridges the synchronous session bus into the message loop.
	sessionCh chan struct{}
	busID     int
}

// NewApp creates the TUI application and subscribes it to session changes.
func NewApp(svc *session.Service, c *client.Client, version string) App {
	a := App{
		svc:       svc,
		client:    c,
		version:   version,
		home:      newHomeModel(svc),
		campaigns: newCampaignsModel(c),
		profile:   newProfileModel(c, svc),
		verify:    newVerifyModel(c, svc),
		billing:   newBillingModel(c, svc),
		sessionCh: make(chan struct{}, 1),
	}
	ch := a.sessionCh
	a.busID = svc.Bus().Subscribe(func() {
		// Coalescing send: a pending notification already forces a re-read.
		select {
		case ch <- struct{}{}:
		default:
		}
	})
	return a
}

// waitSession blocks on the bus bridge and converts the signal to a message.
func (a App) waitSession() tea.Cmd {
	ch := a.sessionCh
	return func() tea.Msg {
		<-ch
		return sessionChangedMsg{}
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.home.Init(), a.campaigns.Init(), a.waitSession())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + blank(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.home, _ = a.home.Update(bodyMsg)
		a.campaigns, _ = a.campaigns.Update(bodyMsg)
		return a, nil

	case sessionChangedMsg:
		// Fan out so every page re-reads the store, then re-arm the bridge.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.home, cmd = a.home.Update(msg)
		cmds = append(cmds, cmd)
		a.profile, cmd = a.profile.Update(msg)
		cmds = append(cmds, cmd)
		a.verify, cmd = a.verify.Update(msg)
		cmds = append(cmds, cmd)
		a.billing, cmd = a.billing.Update(msg)
		cmds = append(cmds, cmd)
		a.campaigns, cmd = a.campaigns.Update(msg)
		cmds = append(cmds, cmd)
		cmds = append(cmds, a.waitSession())
		return a, tea.Batch(cmds...)

	case refreshDoneMsg:
		// Refreshes can originate on any page; Home owns the notice.
		var cmd tea.Cmd
		a.home, cmd = a.home.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if !a.isEditing() {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				a.view = viewHome
				return a, nil
			case "2":
				if a.view != viewCampaigns {
					a.view = viewCampaigns
					return a, a.campaigns.Init()
				}
				return a, nil
			case "3":
				a.view = viewProfile
				return a, nil
			case "4":
				a.view = viewVerify
				return a, nil
			case "5":
				a.view = viewBilling
				return a, nil
			}
		} else {
			switch msg.String() {
			case "ctrl+c":
				return a, tea.Quit
			case "esc":
				if a.view == viewProfile || a.view == viewVerify {
					a.view = viewHome
					return a, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewHome:
		a.home, cmd = a.home.Update(msg)
	case viewCampaigns:
		a.campaigns, cmd = a.campaigns.Update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.Update(msg)
	case viewVerify:
		a.verify, cmd = a.verify.Update(msg)
	case viewBilling:
		a.billing, cmd = a.billing.Update(msg)
	}
	return a, cmd
}

// isEditing reports whether the active page is capturing free text, which
// suppresses global single-letter keybinds.
func (a App) isEditing() bool {
	switch a.view {
	case viewProfile:
		return true
	case viewVerify:
		return true
	case viewCampaigns:
		return a.campaigns.state == csAdding
	}
	return false
}

func (a App) View() string {
	logo := renderLogo()
	logoPad := (a.width - lipgloss.Width(logo)) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo + "\n"

	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Home", viewHome},
		{"2", "Campaigns", viewCampaigns},
		{"3", "Profile", viewProfile},
		{"4", "Verify", viewVerify},
		{"5", "Billing", viewBilling},
	}

	colWidth := 1
	if a.width > 0 {
		colWidth = a.width / len(tabs)
	}
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	var body string
	switch a.view {
	case viewHome:
		body = a.home.View()
	case viewCampaigns:
		body = a.campaigns.View()
	case viewProfile:
		body = a.profile.View()
	case viewVerify:
		body = a.verify.View()
	case viewBilling:
		body = a.billing.View()
	}

	footer := helpLine("1-5", "switch tab", "q", "quit") +
		metaStyle.Render("  moreach "+a.version)

	return header + "\n" + tabBar.String() + "\n\n" + body + "\n\n" + footer
}

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wkwunju/moreach-sub001/pkg/client"
	"github.com/wkwunju/moreach-sub001/pkg/domain"
)

// campaignState is the state machine for campaign CRUD interactions.
type campaignState int

const (
	csNormal   campaignState = iota
	csAdding                 // adding new campaign (name + audience fields)
	csDeleting               // delete confirmation
)

// -- messages --

type campaignsLoadedMsg struct {
	campaigns []domain.Campaign
	err       error
}

type campaignCreatedMsg struct {
	campaign *domain.Campaign
	err      error
}

type campaignDeletedMsg struct {
	name string
	err  error
}

// -- model --

type campaignsModel struct {
	client    *client.Client
	campaigns []domain.Campaign
	cursor    int
	state     campaignState
	addName   string
	addAud    string
	addFocus  int // 0=name, 1=audience
	loaded    bool
	statusMsg string
	width     int
	height    int
}

func newCampaignsModel(c *client.Client) campaignsModel {
	return campaignsModel{client: c}
}

func (m campaignsModel) Init() tea.Cmd {
	return m.load()
}

func (m campaignsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		campaigns, err := c.ListCampaigns(context.Background())
		return campaignsLoadedMsg{campaigns: campaigns, err: err}
	}
}

func (m campaignsModel) Update(msg tea.Msg) (campaignsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case campaignsLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.statusMsg = client.Detail(msg.err)
			return m, nil
		}
		m.campaigns = msg.campaigns
		if m.cursor >= len(m.campaigns) {
			m.cursor = 0
		}
		return m, nil

	case campaignCreatedMsg:
		if msg.err != nil {
			m.statusMsg = client.Detail(msg.err)
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("campaign %q created", msg.campaign.Name)
		m.state = csNormal
		m.addName, m.addAud, m.addFocus = "", "", 0
		return m, m.load()

	case campaignDeletedMsg:
		if msg.err != nil {
			m.statusMsg = client.Detail(msg.err)
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("campaign %q deleted", msg.name)
		return m, m.load()

	case sessionChangedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m campaignsModel) updateKeys(msg tea.KeyMsg) (campaignsModel, tea.Cmd) {
	key := msg.String()

	switch m.state {
	case csAdding:
		switch key {
		case "esc":
			m.state = csNormal
			m.addName, m.addAud, m.addFocus = "", "", 0
		case "tab", "enter":
			if m.addFocus == 0 {
				m.addFocus = 1
				return m, nil
			}
			return m.submitNew()
		case "ctrl+s":
			return m.submitNew()
		default:
			if m.addFocus == 0 {
				m.addName = editRune(m.addName, key)
			} else {
				m.addAud = editRune(m.addAud, key)
			}
		}
		return m, nil

	case csDeleting:
		switch key {
		case "y":
			m.state = csNormal
			if m.cursor < len(m.campaigns) {
				id := m.campaigns[m.cursor].ID.String()
				name := m.campaigns[m.cursor].Name
				c := m.client
				return m, func() tea.Msg {
					return campaignDeletedMsg{name: name, err: c.DeleteCampaign(context.Background(), id)}
				}
			}
		case "n", "esc":
			m.state = csNormal
		}
		return m, nil
	}

	m.statusMsg = ""
	switch key {
	case "j", "down":
		if m.cursor < len(m.campaigns)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a":
		m.state = csAdding
	case "d":
		if len(m.campaigns) > 0 {
			m.state = csDeleting
		}
	case "r":
		return m, m.load()
	}
	return m, nil
}

func (m campaignsModel) submitNew() (campaignsModel, tea.Cmd) {
	name := strings.TrimSpace(m.addName)
	if name == "" {
		m.statusMsg = "campaign name is required"
		return m, nil
	}
	req := client.CreateCampaignRequest{
		Name:     name,
		Audience: strings.TrimSpace(m.addAud),
	}
	c := m.client
	return m, func() tea.Msg {
		campaign, err := c.CreateCampaign(context.Background(), req)
		return campaignCreatedMsg{campaign: campaign, err: err}
	}
}

func (m campaignsModel) View() string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("CAMPAIGNS") + "\n\n")

	switch {
	case !m.loaded:
		b.WriteString(dimStyle.Render("loading…") + "\n")
	case len(m.campaigns) == 0 && m.state != csAdding:
		b.WriteString(dimStyle.Render("No campaigns yet. Press a to create one.") + "\n")
	default:
		for i, c := range m.campaigns {
			prefix := "  "
			nameStyle := normalStyle
			if i == m.cursor && m.state != csAdding {
				prefix = accentStyle.Render("> ")
				nameStyle = selectedStyle
			}
			line := prefix + nameStyle.Render(truncStr(c.Name, 32)) +
				"  " + statusStyle(c.Status).Render(c.Status) +
				"  " + dimStyle.Render(fmt.Sprintf("%d leads", c.LeadsFound)) +
				"  " + metaStyle.Render(formatTime(c.CreatedAt))
			if c.Audience != "" {
				line += "\n    " + metaStyle.Render(truncStr(c.Audience, 64))
			}
			b.WriteString(line + "\n")
		}
	}

	switch m.state {
	case csAdding:
		b.WriteString("\n" + sectionHeaderStyle.Render("NEW CAMPAIGN") + "\n")
		nameField := m.addName
		audField := m.addAud
		if m.addFocus == 0 {
			nameField += accentStyle.Render("█")
		} else {
			audField += accentStyle.Render("█")
		}
		b.WriteString("  " + dimStyle.Render("name     ") + normalStyle.Render(nameField) + "\n")
		b.WriteString("  " + dimStyle.Render("audience ") + normalStyle.Render(audField) + "\n")
		b.WriteString("\n" + helpLine("tab", "next", "ctrl+s", "create", "esc", "cancel"))
	case csDeleting:
		if m.cursor < len(m.campaigns) {
			b.WriteString("\n" + errStyle.Render(fmt.Sprintf("delete %q?", m.campaigns[m.cursor].Name)) +
				" " + helpLine("y", "yes", "n", "no"))
		}
	default:
		b.WriteString("\n" + helpLine("j/k", "move", "a", "add", "d", "delete", "r", "reload"))
	}

	if m.statusMsg != "" {
		b.WriteString("\n\n" + metaStyle.Render(m.statusMsg))
	}
	return b.String()
}

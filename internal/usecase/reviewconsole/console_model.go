package reviewconsole

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"marketgate/internal/domain/assessment"
	"marketgate/internal/usecase/review"
)

const maxShownLedger = 6

type Options struct {
	SellerID        string
	RefreshInterval time.Duration
}

type consoleModel struct {
	ctx             context.Context
	service         *review.Service
	sellerID        string
	refreshInterval time.Duration

	items         []review.AssessmentItem
	selectedIndex int
	statusFilter  assessment.Status
	detail        review.AssessmentDetail
	hasDetail     bool
	status        string
}

type queueLoadedMsg struct {
	items []review.AssessmentItem
	err   error
}

type detailLoadedMsg struct {
	productID string
	detail    review.AssessmentDetail
	err       error
}

type tickMsg struct{}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	rejectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	verifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)

func NewConsoleModel(ctx context.Context, service *review.Service, options Options) tea.Model {
	interval := options.RefreshInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	return &consoleModel{
		ctx:             ctx,
		service:         service,
		sellerID:        strings.TrimSpace(options.SellerID),
		refreshInterval: interval,
		status:          "loading queue",
	}
}

func (m *consoleModel) Init() tea.Cmd {
	return tea.Batch(m.loadQueueCmd(), m.tickCmd())
}

func (m *consoleModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tickMsg:
		return m, tea.Batch(m.loadQueueCmd(), m.tickCmd())
	case queueLoadedMsg:
		if msg.err != nil {
			m.status = "queue load failed: " + msg.err.Error()
			return m, nil
		}
		m.items = m.filtered(msg.items)
		if m.selectedIndex >= len(m.items) {
			m.selectedIndex = 0
		}
		m.status = fmt.Sprintf("queue loaded, %d assessments", len(m.items))
		return m, nil
	case detailLoadedMsg:
		if msg.err != nil {
			m.hasDetail = false
			m.status = "detail load failed: " + msg.err.Error()
			return m, nil
		}
		m.detail = msg.detail
		m.hasDetail = true
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *consoleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
		return m, m.loadDetailCmd()
	case "down", "j":
		if m.selectedIndex < len(m.items)-1 {
			m.selectedIndex++
		}
		return m, m.loadDetailCmd()
	case "enter":
		return m, m.loadDetailCmd()
	case "f":
		m.statusFilter = nextFilter(m.statusFilter)
		m.selectedIndex = 0
		m.hasDetail = false
		return m, m.loadQueueCmd()
	case "r":
		m.status = "refreshing"
		return m, m.loadQueueCmd()
	}
	return m, nil
}

func (m *consoleModel) View() string {
	var b strings.Builder

	scope := "all sellers"
	if m.sellerID != "" {
		scope = "seller " + m.sellerID
	}
	filter := "all statuses"
	if m.statusFilter != "" {
		filter = string(m.statusFilter)
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("marketgate review queue | %s | %s", scope, filter)))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(dimStyle.Render("queue is empty"))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		line := fmt.Sprintf("%-24s %-22s %s", truncate(item.ProductName, 24), item.Status, truncate(item.SellerName, 20))
		switch {
		case i == m.selectedIndex:
			line = selectedStyle.Render(line)
		case item.Status == assessment.StatusRejected:
			line = rejectStyle.Render(line)
		case item.Status == assessment.StatusActiveVerified:
			line = verifiedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.hasDetail {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("detail"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("product:   %s (%s)\n", m.detail.Product.Name, m.detail.ProductID))
		b.WriteString(fmt.Sprintf("seller:    %s\n", m.detail.SellerName))
		b.WriteString(fmt.Sprintf("status:    %s / product %s\n", m.detail.Status, m.detail.Product.ApprovalStatus))
		if m.detail.Logistics != "" {
			b.WriteString(fmt.Sprintf("logistics: %s\n", m.detail.Logistics))
		}
		if m.detail.RejectionReason != "" {
			b.WriteString(rejectStyle.Render(fmt.Sprintf("rejection: %s (%s)", m.detail.RejectionReason, m.detail.RejectionStage)))
			b.WriteString("\n")
		}

		ledger := m.detail.Ledger
		if len(ledger) > maxShownLedger {
			ledger = ledger[len(ledger)-maxShownLedger:]
		}
		for _, entry := range ledger {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  [%s] %s %s", entry.Kind, entry.CreatedAt, entry.Description)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("up/down select · enter detail · f filter · r refresh · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *consoleModel) loadQueueCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.service.LoadAssessments(m.ctx, m.sellerID)
		return queueLoadedMsg{items: items, err: err}
	}
}

func (m *consoleModel) loadDetailCmd() tea.Cmd {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.items) {
		return nil
	}
	productID := m.items[m.selectedIndex].ProductID

	return func() tea.Msg {
		detail, err := m.service.GetDetail(m.ctx, productID)
		return detailLoadedMsg{productID: productID, detail: detail, err: err}
	}
}

func (m *consoleModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *consoleModel) filtered(items []review.AssessmentItem) []review.AssessmentItem {
	if m.statusFilter == "" {
		return items
	}

	out := make([]review.AssessmentItem, 0, len(items))
	for _, item := range items {
		if item.Status == m.statusFilter {
			out = append(out, item)
		}
	}
	return out
}

// nextFilter cycles all -> each status in lifecycle order -> all.
func nextFilter(current assessment.Status) assessment.Status {
	statuses := assessment.AllStatuses()
	if current == "" {
		return statuses[0]
	}
	for i, status := range statuses {
		if status == current {
			if i == len(statuses)-1 {
				return ""
			}
			return statuses[i+1]
		}
	}
	return ""
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit <= 1 {
		return s[:limit]
	}
	return s[:limit-1] + "…"
}

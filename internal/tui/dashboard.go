package tui

import (
	"context"
	"fmt"
	"time"

	"coinboard/internal/domain"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PriceQuerier and BuzzQuerier are the slices of the services the
// dashboard needs.
type PriceQuerier interface {
	GetPrices(ctx context.Context) ([]domain.CoinPriceRecord, error)
}

type BuzzQuerier interface {
	GetSentiment(ctx context.Context) ([]domain.SentimentRecord, error)
}

// Services bundles the dependencies handed to the dashboard model.
type Services struct {
	Prices PriceQuerier
	Buzz   BuzzQuerier
}

const fetchTimeout = 30 * time.Second

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))
	buzzHighStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	buzzMediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	buzzLowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type pricesMsg struct {
	records []domain.CoinPriceRecord
	err     error
}

type buzzMsg struct {
	records []domain.SentimentRecord
	err     error
}

// AppModel is the SSH dashboard: a price table on top, buzz scores below.
type AppModel struct {
	svc    Services
	table  table.Model
	buzz   []domain.SentimentRecord
	width  int
	height int

	loading  bool
	priceErr error
	buzzErr  error
	updated  time.Time
}

func NewAppModel(svc Services) *AppModel {
	columns := []table.Column{
		{Title: "Coin", Width: 20},
		{Title: "Price (USD)", Width: 16},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("205"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return &AppModel{svc: svc, table: t, loading: true}
}

func (m *AppModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.fetchPrices(), m.fetchBuzz())
}

func (m *AppModel) fetchPrices() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		records, err := m.svc.Prices.GetPrices(ctx)
		return pricesMsg{records: records, err: err}
	}
}

func (m *AppModel) fetchBuzz() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		records, err := m.svc.Buzz.GetSentiment(ctx)
		return buzzMsg{records: records, err: err}
	}
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, tea.Batch(m.fetchPrices(), m.fetchBuzz())
		}
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case pricesMsg:
		m.loading = false
		m.priceErr = msg.err
		m.updated = time.Now()
		if msg.err == nil {
			rows := make([]table.Row, 0, len(msg.records))
			for _, r := range msg.records {
				rows = append(rows, table.Row{r.Coin, fmt.Sprintf("%.2f", r.PriceUSD)})
			}
			m.table.SetRows(rows)
		}
		return m, nil
	case buzzMsg:
		m.buzzErr = msg.err
		if msg.err == nil {
			m.buzz = msg.records
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *AppModel) View() string {
	var b []string
	b = append(b, titleStyle.Render("coinboard"))

	if m.priceErr != nil {
		b = append(b, errStyle.Render("prices: "+m.priceErr.Error()))
	} else {
		b = append(b, tableBorderStyle.Render(m.table.View()))
	}

	if m.buzzErr != nil {
		b = append(b, errStyle.Render("buzz: "+m.buzzErr.Error()))
	} else if len(m.buzz) > 0 {
		b = append(b, renderBuzz(m.buzz))
	}

	status := "r refresh · q quit"
	if m.loading {
		status = "loading... · " + status
	} else if !m.updated.IsZero() {
		status = "updated " + m.updated.Format("15:04:05") + " · " + status
	}
	b = append(b, statusStyle.Render(status))

	return lipgloss.JoinVertical(lipgloss.Left, b...)
}

func renderBuzz(records []domain.SentimentRecord) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, buzzStyleFor(r.Score).Render(r.Interpretation))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func buzzStyleFor(score *float64) lipgloss.Style {
	switch {
	case score == nil:
		return buzzLowStyle
	case *score > 3000:
		return buzzHighStyle
	case *score > 500:
		return buzzMediumStyle
	default:
		return buzzLowStyle
	}
}

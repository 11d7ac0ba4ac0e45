// Package explorer implements the interactive dataset explorer.
package explorer

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/store"
)

const (
	tabOverview = iota
	tabByYear
	tabTrends
	tabGenres
	tabArtist
	tabRelationships
	tabListening
	tabAbout
)

const defaultWidth = 80

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#3AA6C8"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#3AA6C8")).
			Padding(1, 2)
)

// query holds the parameters each tab is currently rendered with.
type query struct {
	top         int
	trendFrom   int
	trendTo     int
	trendTop    int
	trendSmooth int
	period      string
	genre       string
	artist      string
	probArtist  string
	probGenre   string
	probPeriod  string
	corrAttrs   []string
	historyPath string
}

// Model implements the Bubble Tea explorer.
type Model struct {
	records *store.RecordSet
	genres  *store.GenreSet
	history []model.Listen
	q       query

	errMsg string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	songTable table.Model
	profile   *model.Profile

	formMode  bool
	form      *form
	formIndex int
	formError string

	width  int
	height int
}

// New constructs the explorer over a loaded dataset. history may be nil.
func New(rs *store.RecordSet, history []model.Listen, cfg model.ExploreConfig) *Model {
	if rs == nil {
		rs = store.NewRecordSet(nil)
	}
	m := &Model{
		records: rs,
		genres:  store.NormalizeGenres(rs),
		history: history,
		tabs: []string{
			"Overview", "By Year", "Genre Trends", "Genres",
			"Artist", "Relationships", "Listening", "About",
		},
	}
	m.q = defaultQuery(rs, cfg)
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.songTable = buildSongTable(nil, defaultWidth, 1)
	m.renderTabContents()
	return m
}

func defaultQuery(rs *store.RecordSet, cfg model.ExploreConfig) query {
	q := query{
		top:         cfg.Top,
		trendFrom:   cfg.From,
		trendTo:     cfg.To,
		trendTop:    5,
		trendSmooth: 1,
		corrAttrs:   cfg.CorrAttrs,
		historyPath: cfg.HistoryPath,
	}
	if q.top <= 0 {
		q.top = 10
	}
	first, last, ok := rs.YearRange()
	if ok {
		if q.trendFrom == 0 {
			q.trendFrom = first
		}
		if q.trendTo == 0 {
			q.trendTo = last
		}
		q.period = strconv.Itoa(last/10*10) + "s"
	}
	return q
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.formMode {
			return m.updateForm(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "enter":
			if m.openForm() {
				return m, textinput.Blink
			}
			return m, nil
		case "g", "home":
			if m.activeTab == tabArtist {
				m.songTable.GotoTop()
				return m, nil
			}
			m.viewports[m.activeTab].GotoTop()
			return m, nil
		case "G", "end":
			if m.activeTab == tabArtist {
				m.songTable.GotoBottom()
				return m, nil
			}
			m.viewports[m.activeTab].GotoBottom()
			return m, nil
		}
	}

	if m.activeTab == tabArtist && m.profile != nil {
		var cmd tea.Cmd
		m.songTable, cmd = m.songTable.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
	return m, cmd
}

// View renders the current UI state.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.formMode {
		return m.renderForm()
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := m.renderBody(bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) contentWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.resizeSongTable()
}

// resizeSongTable fits the artist song table under the profile cards.
func (m *Model) resizeSongTable() {
	if m.profile == nil {
		return
	}
	width := m.contentWidth()
	_, bodyHeight, _ := m.layoutHeights()
	cards := m.renderProfileCards(*m.profile)
	height := maxInt(3, bodyHeight-lipgloss.Height(cards)-1)
	if m.height == 0 {
		height = 10
	}
	m.songTable.SetWidth(width)
	m.songTable.SetHeight(height)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabArtist {
		m.songTable.Focus()
	} else {
		m.songTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return m.renderTabs() + "\n" + headerStyle.Render(truncateLine(m.summary(), m.width))
}

func (m *Model) renderFooter() string {
	help := "←/→: tabs  ↑/↓: scroll  enter: edit query  q: quit"
	if formFor(m.activeTab) == nil {
		help = "←/→: tabs  ↑/↓: scroll  q: quit"
	}
	help = headerStyle.Render(truncateLine(help, m.width))
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	}
	return help
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabArtist && m.profile != nil {
		view := m.renderProfileCards(*m.profile) + "\n" + tableMutedStyle.Render(m.songTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func buildSongTable(songs []model.Song, width, height int) table.Model {
	titleWidth := maxInt(12, width-30)
	columns := []table.Column{
		{Title: "Song", Width: titleWidth},
		{Title: "Year", Width: 5},
		{Title: "Popularity", Width: 10},
		{Title: "Explicit", Width: 8},
	}
	rows := make([]table.Row, 0, len(songs))
	for _, s := range songs {
		explicit := "no"
		if s.Explicit {
			explicit = "yes"
		}
		rows = append(rows, table.Row{s.Title, itoa(s.Year), formatNumber(s.Popularity), explicit})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height)),
	)
	t.SetWidth(maxInt(1, width))
	t.SetStyles(songTableStyles())
	return t
}

func songTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		BorderBottom(true).
		Bold(true)
	styles.Cell = styles.Cell.Padding(0, 1)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func metricCard(label, value string) string {
	content := cardTitleStyle.Render(label) + "\n" + cardValueStyle.Render(value)
	return cardStyle.Render(content)
}

func joinCards(width int, cards ...string) string {
	if width >= 80 || width == 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

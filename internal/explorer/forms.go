package explorer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/loganmitchell124/tunestat/internal/config"
	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/stats"
)

// formDef describes the query editor of one tab.
type formDef struct {
	title   string
	hint    string
	prompts []string
	values  func(q query) []string
	apply   func(m *Model, values []string) error
}

type form struct {
	def    *formDef
	inputs []textinput.Model
}

var formDefs = map[int]*formDef{
	tabOverview: {
		title:   "Overview",
		hint:    "Number of entries in each top list.",
		prompts: []string{"Top: "},
		values:  func(q query) []string { return []string{strconv.Itoa(q.top)} },
		apply: func(m *Model, values []string) error {
			top, err := parsePositive("top", values[0])
			if err != nil {
				return err
			}
			m.q.top = top
			return nil
		},
	},
	tabTrends: {
		title:   "Genre Trends",
		hint:    "Inclusive year range, how many genres to plot and the moving-average window in years.",
		prompts: []string{"From: ", "To: ", "Genres: ", "Smooth: "},
		values: func(q query) []string {
			return []string{strconv.Itoa(q.trendFrom), strconv.Itoa(q.trendTo), strconv.Itoa(q.trendTop), strconv.Itoa(q.trendSmooth)}
		},
		apply: func(m *Model, values []string) error {
			from, err := parseYear("from", values[0])
			if err != nil {
				return err
			}
			to, err := parseYear("to", values[1])
			if err != nil {
				return err
			}
			if from > to {
				return model.Invalid("year range", values[0]+"-"+values[1], "from is after to")
			}
			n, err := parsePositive("genres", values[2])
			if err != nil {
				return err
			}
			smooth, err := parsePositive("smooth", values[3])
			if err != nil {
				return err
			}
			m.q.trendFrom, m.q.trendTo, m.q.trendTop, m.q.trendSmooth = from, to, n, smooth
			return nil
		},
	},
	tabGenres: {
		title:   "Genres",
		hint:    "Period is a year (2005) or a decade (2000s). Genre is optional.",
		prompts: []string{"Period: ", "Genre: "},
		values:  func(q query) []string { return []string{q.period, q.genre} },
		apply: func(m *Model, values []string) error {
			if _, err := stats.ParsePeriod(values[0]); err != nil {
				return err
			}
			m.q.period, m.q.genre = values[0], values[1]
			return nil
		},
	},
	tabArtist: {
		title:   "Artist",
		hint:    "Artist names match ignoring case.",
		prompts: []string{"Artist: "},
		values:  func(q query) []string { return []string{q.artist} },
		apply: func(m *Model, values []string) error {
			if values[0] == "" {
				return model.Invalid("artist", values[0], "name is empty")
			}
			m.q.artist = values[0]
			return nil
		},
	},
	tabRelationships: {
		title:   "Relationships",
		hint:    "Artist, genre and period drive the probability breakdown. Attributes are comma separated.",
		prompts: []string{"Artist: ", "Genre: ", "Period: ", "Attributes: "},
		values: func(q query) []string {
			return []string{q.probArtist, q.probGenre, q.probPeriod, strings.Join(q.corrAttrs, ", ")}
		},
		apply: func(m *Model, values []string) error {
			if values[2] != "" {
				if _, err := stats.ParsePeriod(values[2]); err != nil {
					return err
				}
			}
			m.q.probArtist, m.q.probGenre, m.q.probPeriod = values[0], values[1], values[2]
			m.q.corrAttrs = splitList(values[3])
			return nil
		},
	},
	tabListening: {
		title:   "Listening",
		hint:    "Path to a streaming history JSON export.",
		prompts: []string{"History: "},
		values:  func(q query) []string { return []string{q.historyPath} },
		apply: func(m *Model, values []string) error {
			if values[0] == "" {
				return model.Invalid("history", values[0], "path is empty")
			}
			return m.loadHistory(config.ExpandPath(values[0]))
		},
	},
}

func formFor(tab int) *formDef {
	return formDefs[tab]
}

func newFormInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// openForm starts editing the active tab's query. It reports false when the tab has none.
func (m *Model) openForm() bool {
	def := formFor(m.activeTab)
	if def == nil {
		return false
	}
	f := &form{def: def}
	for i, prompt := range def.prompts {
		input := newFormInput(prompt)
		input.SetValue(def.values(m.q)[i])
		promptWidth := lipgloss.Width(prompt)
		input.Width = maxInt(10, modalInnerWidth(m.contentWidth())-promptWidth)
		f.inputs = append(f.inputs, input)
	}
	m.form = f
	m.formMode = true
	m.formError = ""
	m.setFormIndex(0)
	return true
}

func (m *Model) closeForm() {
	m.formMode = false
	m.form = nil
	m.formError = ""
}

func (m *Model) setFormIndex(index int) {
	if m.form == nil || len(m.form.inputs) == 0 {
		return
	}
	count := len(m.form.inputs)
	index = ((index % count) + count) % count
	m.formIndex = index
	for i := range m.form.inputs {
		if i == index {
			m.form.inputs[i].Focus()
		} else {
			m.form.inputs[i].Blur()
		}
	}
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil
	case "enter":
		if err := m.applyForm(); err != nil {
			m.formError = err.Error()
			return m, nil
		}
		m.closeForm()
		m.renderTabContents()
		return m, tea.ClearScreen
	case "tab", "down":
		m.setFormIndex(m.formIndex + 1)
		return m, nil
	case "shift+tab", "up":
		m.setFormIndex(m.formIndex - 1)
		return m, nil
	}
	var cmd tea.Cmd
	m.form.inputs[m.formIndex], cmd = m.form.inputs[m.formIndex].Update(msg)
	return m, cmd
}

func (m *Model) applyForm() error {
	values := make([]string, len(m.form.inputs))
	for i, input := range m.form.inputs {
		values[i] = strings.TrimSpace(input.Value())
	}
	return m.form.def.apply(m, values)
}

func (m *Model) renderForm() string {
	body := []string{cardValueStyle.Render("Edit " + m.form.def.title + " query")}
	for _, input := range m.form.inputs {
		body = append(body, input.View())
	}
	body = append(body,
		headerStyle.Render(wrapText(m.form.def.hint, modalInnerWidth(m.width))),
		headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel"),
	)
	if m.formError != "" {
		body = append(body, errorStyle.Render(wrapText(m.formError, modalInnerWidth(m.width))))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func parsePositive(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, model.Invalid(field, value, "expected a positive whole number")
	}
	return n, nil
}

func parseYear(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || !model.ValidYear(n) {
		return 0, model.Invalid(field, value, fmt.Sprintf("expected a year in %d-%d", model.MinYear, model.MaxYear))
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

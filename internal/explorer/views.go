package explorer

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/loganmitchell124/tunestat/internal/chart"
	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/report"
	"github.com/loganmitchell124/tunestat/internal/stats"
	"github.com/loganmitchell124/tunestat/internal/store"
)

const aboutText = `tunestat explores a catalogue of popular songs.

Each row of the dataset is one song with its artist, release year, popularity score, genre list and audio attributes such as danceability, energy and tempo. Genre lists are split into one row per genre for genre-level views, so a song tagged "pop, R&B" counts once for each genre.

Periods are written as a single year (2005) or a decade (2000s or 90s). Blank audio values are treated as missing and skipped by averages and correlations.

Keys: left and right switch tabs, enter edits the query of the current tab, esc cancels an edit, q quits.`

// section collects rendered blocks for one tab.
type section struct {
	buf bytes.Buffer
	r   *report.Renderer
}

func (m *Model) newSection(format report.Format) *section {
	s := &section{}
	s.r = &report.Renderer{Out: &s.buf, Format: format, Width: m.contentWidth(), Color: true}
	return s
}

func (s *section) line(text string) {
	s.buf.WriteString(text)
	s.buf.WriteString("\n")
}

func (s *section) String() string {
	return strings.TrimRight(s.buf.String(), "\n")
}

// renderTabContents recomputes every tab. Engine failures become messages in the tab body.
func (m *Model) renderTabContents() {
	m.errMsg = ""
	contents := []string{
		tabOverview:      m.overviewContent(),
		tabByYear:        m.byYearContent(),
		tabTrends:        m.trendsContent(),
		tabGenres:        m.genresContent(),
		tabArtist:        m.artistContent(),
		tabRelationships: m.relationshipsContent(),
		tabListening:     m.listeningContent(),
		tabAbout:         wrapText(aboutText, m.contentWidth()),
	}
	for i, content := range contents {
		m.viewports[i].SetContent(content)
	}
	m.updateLayout()
}

func (m *Model) fail(err error) string {
	m.errMsg = err.Error()
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		return errorStyle.Render("Invalid query: " + vErr.Error())
	}
	return errorStyle.Render("Failed: " + err.Error())
}

func emptyNotice(reason string) string {
	return noticeStyle.Render(reason)
}

func (m *Model) summary() string {
	first, last, ok := m.records.YearRange()
	span := "no years"
	if ok {
		span = fmt.Sprintf("%d-%d", first, last)
	}
	source := m.records.Path()
	if source == "" {
		source = "in-memory"
	}
	return fmt.Sprintf("Dataset: %s | Songs: %d | Years: %s | Top: %d", source, m.records.Len(), span, m.q.top)
}

func (m *Model) overviewContent() string {
	res, err := stats.BuildDashboard(m.records, m.q.top)
	if err != nil {
		return m.fail(err)
	}
	if res.Empty() {
		return emptyNotice(res.Reason)
	}
	d := res.Value
	s := m.newSection(report.FormatChart)
	s.line(joinCards(m.width,
		metricCard("Songs", strconv.Itoa(d.Songs)),
		metricCard("Artists", strconv.Itoa(d.Artists)),
		metricCard("Genres", strconv.Itoa(d.Genres)),
		metricCard("Years", fmt.Sprintf("%d-%d", d.FirstYear, d.LastYear)),
	))
	counts := make([]float64, 0, len(d.Timeline))
	for _, p := range d.Timeline {
		counts = append(counts, float64(p.Value))
	}
	s.line(headerStyle.Render("Songs per year ") + chart.Sparkline(counts))
	s.line("")
	steps := []func() error{
		func() error { return s.r.Ranked("Top artists by mean popularity", "Artist", "Popularity", d.TopArtists) },
		func() error { return s.r.Ranked("Top genres by songs", "Genre", "Songs", d.TopGenres) },
		func() error { return s.r.Ranked("Top tracks by mean popularity", "Song", "Popularity", d.TopTracks) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return m.fail(err)
		}
		s.line("")
	}
	return s.String()
}

func (m *Model) byYearContent() string {
	songs, err := stats.MostPopularPerYear(m.records)
	if err != nil {
		return m.fail(err)
	}
	if songs.Empty() {
		return emptyNotice(songs.Reason)
	}
	genres, err := stats.MostPopularGenrePerYear(m.genres)
	if err != nil {
		return m.fail(err)
	}
	s := m.newSection(report.FormatTable)
	if err := s.r.YearPicks("Artist of the most popular song per year", "Artist", songs.Value); err != nil {
		return m.fail(err)
	}
	s.line("")
	if err := s.r.YearPicks("Most popular genre per year", "Genre", genres.Value); err != nil {
		return m.fail(err)
	}
	return s.String()
}

func (m *Model) trendsContent() string {
	res, err := stats.GenrePopularityTimeSeries(m.genres, m.q.trendFrom, m.q.trendTo)
	if err != nil {
		return m.fail(err)
	}
	if res.Empty() {
		return emptyNotice(res.Reason)
	}
	series := stats.TopSeries(res.Value, m.q.trendTop)
	s := m.newSection(report.FormatChart)
	title := fmt.Sprintf("Summed popularity of the top %d genres, %d-%d", len(series), m.q.trendFrom, m.q.trendTo)
	if m.q.trendSmooth > 1 {
		title += fmt.Sprintf(", %d-year moving average", m.q.trendSmooth)
	}
	if err := s.r.Series(title, report.Smooth(series, m.q.trendSmooth)); err != nil {
		return m.fail(err)
	}
	s.line("")
	s.r.Format = report.FormatTable
	if err := s.r.Series("", series); err != nil {
		return m.fail(err)
	}
	return s.String()
}

func (m *Model) genresContent() string {
	if m.q.period == "" {
		return headerStyle.Render("Press enter to choose a period.")
	}
	label := m.q.period
	res, err := stats.GenreDistribution(m.records, m.q.period)
	if err != nil {
		return m.fail(err)
	}
	if res.Empty() {
		return emptyNotice(res.Reason)
	}
	s := m.newSection(report.FormatChart)
	shares := res.Value
	if len(shares) > m.q.top {
		shares = shares[:m.q.top]
	}
	if err := s.r.Shares(fmt.Sprintf("Genre share, %s (%%)", label), "Genre", shares); err != nil {
		return m.fail(err)
	}
	if m.q.genre == "" {
		s.line("")
		s.line(headerStyle.Render("Press enter and set a genre to see its artist shares."))
		return s.String()
	}
	s.line("")
	artists, err := stats.ArtistDistributionGivenGenre(m.records, m.q.period, m.q.genre)
	if err != nil {
		return m.fail(err)
	}
	if artists.Empty() {
		s.line(emptyNotice(artists.Reason))
		return s.String()
	}
	top := artists.Value
	if len(top) > m.q.top {
		top = top[:m.q.top]
	}
	if err := s.r.Shares(fmt.Sprintf("Artist share within %s, %s (%%)", m.q.genre, label), "Artist", top); err != nil {
		return m.fail(err)
	}
	return s.String()
}

func (m *Model) artistContent() string {
	m.profile = nil
	if m.q.artist == "" {
		return headerStyle.Render("Press enter to look up an artist.")
	}
	res, err := stats.ArtistProfile(m.records, m.q.artist)
	if err != nil {
		return m.fail(err)
	}
	if res.Empty() {
		return emptyNotice(res.Reason)
	}
	p := res.Value
	m.profile = &p
	m.songTable = buildSongTable(p.Songs, m.contentWidth(), 10)
	if m.activeTab == tabArtist {
		m.songTable.Focus()
	}
	return ""
}

func (m *Model) renderProfileCards(p model.Profile) string {
	return joinCards(m.width,
		metricCard("Artist", p.Artist),
		metricCard("Songs", strconv.Itoa(p.SongCount)),
		metricCard("Avg popularity", formatNumber(p.AvgPopularity)),
		metricCard("Avg tempo", formatNumber(p.AvgTempo)),
		metricCard("Avg danceability", formatNumber(p.AvgDanceability)),
		metricCard("Top genre", p.ModalGenre),
	)
}

func (m *Model) relationshipsContent() string {
	s := m.newSection(report.FormatTable)
	if m.q.probArtist != "" && m.q.probGenre != "" && m.q.probPeriod != "" {
		res, err := stats.ProbabilityBreakdown(m.genres, m.q.probArtist, m.q.probGenre, m.q.probPeriod)
		if err != nil {
			return m.fail(err)
		}
		if res.Empty() {
			s.line(emptyNotice(res.Reason))
		} else if err := s.r.Breakdown(res.Value); err != nil {
			return m.fail(err)
		}
	} else {
		s.line(headerStyle.Render("Press enter and set artist, genre and period for a probability breakdown."))
	}
	s.line("")

	attrs := m.q.corrAttrs
	if len(attrs) == 0 {
		attrs = stats.DefaultCorrelationAttributes
	}
	res, err := stats.CorrelationMatrix(m.records, attrs)
	if err != nil {
		return m.fail(err)
	}
	if res.Empty() {
		s.line(emptyNotice(res.Reason))
		return s.String()
	}
	s.r.Format = report.FormatChart
	if err := s.r.Matrix(fmt.Sprintf("Correlation (%d rows)", res.Value.Rows), res.Value); err != nil {
		return m.fail(err)
	}
	return s.String()
}

func (m *Model) listeningContent() string {
	if m.history == nil {
		return headerStyle.Render("No listening history loaded. Press enter to load a history file.")
	}
	res, err := stats.AggregateListeningTime(m.history, m.q.top)
	if err != nil {
		return m.fail(err)
	}
	if res.Empty() {
		return emptyNotice(res.Reason)
	}
	s := m.newSection(report.FormatChart)
	if err := s.r.Listening(res.Value); err != nil {
		return m.fail(err)
	}
	return s.String()
}

// loadHistory replaces the listening history from path.
func (m *Model) loadHistory(path string) error {
	entries, err := store.LoadHistory(path)
	if err != nil {
		return err
	}
	m.history = entries
	m.q.historyPath = path
	return nil
}

func formatNumber(v float64) string {
	return report.FormatNumber(v)
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

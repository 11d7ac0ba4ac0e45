package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/report"
	"github.com/loganmitchell124/tunestat/internal/stats"
	"github.com/loganmitchell124/tunestat/internal/store"
)

func (o *rootOptions) renderer(cmd *cobra.Command) *report.Renderer {
	return report.New(cmd.OutOrStdout(), o.settings.format)
}

// emit renders a result, or reports why it is empty.
func emit[T any](cmd *cobra.Command, o *rootOptions, res model.Result[T], render func(T) error) error {
	if res.Empty() {
		return notice(cmd, o, res.Reason)
	}
	return render(res.Value)
}

// notice reports an empty result. YAML output keeps it on stdout so scripts can parse it.
func notice(cmd *cobra.Command, o *rootOptions, reason string) error {
	if o.settings.format == report.FormatYAML {
		return o.renderer(cmd).Notice(reason)
	}
	if _, err := noticeColor.Fprintln(cmd.ErrOrStderr(), reason); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// withDataset adapts a view that needs the loaded dataset to cobra's RunE.
func withDataset(o *rootOptions, run func(cmd *cobra.Command, rs *store.RecordSet, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rs, err := o.loadDataset(cmd)
		if err != nil {
			return err
		}
		return run(cmd, rs, args)
	}
}

func newOverviewCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show dataset totals, top lists and songs per year",
		Args:  cobra.NoArgs,
		RunE: withDataset(o, func(cmd *cobra.Command, rs *store.RecordSet, _ []string) error {
			res, err := stats.BuildDashboard(rs, o.settings.explore.Top)
			if err != nil {
				return err
			}
			return emit(cmd, o, res, o.renderer(cmd).Dashboard)
		}),
	}
}

func newTopCmd(o *rootOptions) *cobra.Command {
	var group, measure, agg string
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank artists, songs, genres or years by a measure",
		Args:  cobra.NoArgs,
		RunE: withDataset(o, func(cmd *cobra.Command, rs *store.RecordSet, _ []string) error {
			res, err := stats.TopByMeasure(rs, group, measure, agg, o.settings.explore.Top)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Top %d %s by %s %s", o.settings.explore.Top, group, agg, measure)
			return emit(cmd, o, res, func(items []model.Ranked) error {
				return o.renderer(cmd).Ranked(title, titleCase(group), titleCase(agg), items)
			})
		}),
	}
	cmd.Flags().StringVar(&group, "by", stats.GroupArtist, "group by: "+strings.Join(stats.Groups, ", "))
	cmd.Flags().StringVar(&measure, "measure", model.AttrPopularity, "measure: "+strings.Join(stats.Measures, ", "))
	cmd.Flags().StringVar(&agg, "agg", stats.AggMean, "aggregation: "+strings.Join(stats.Aggregations, ", "))
	return cmd
}

func newTimelineCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Count songs per year",
		Args:  cobra.NoArgs,
		RunE: withDataset(o, func(cmd *cobra.Command, rs *store.RecordSet, _ []string) error {
			res, err := stats.YearCounts(rs)
			if err != nil {
				return err
			}
			return emit(cmd, o, res, func(values []model.YearValue) error {
				return o.renderer(cmd).YearValues("Songs per year", "Songs", values)
			})
		}),
	}
}

func newYearlyCmd(o *rootOptions) *cobra.Command {
	var byGenre bool
	cmd := &cobra.Command{
		Use:   "yearly",
		Short: "Show the artist (or genre) of the most popular song in each year",
		Args:  cobra.NoArgs,
		RunE: withDataset(o, func(cmd *cobra.Command, rs *store.RecordSet, _ []string) error {
			title, label := "Artist of the most popular song per year", "Artist"
			var res model.Result[[]model.YearPick]
			var err error
			if byGenre {
				title, label = "Most popular genre per year", "Genre"
				res, err = stats.MostPopularGenrePerYear(store.NormalizeGenres(rs))
			} else {
				res, err = stats.MostPopularPerYear(rs)
			}
			if err != nil {
				return err
			}
			return emit(cmd, o, res, func(picks []model.YearPick) error {
				return o.renderer(cmd).YearPicks(title, label, picks)
			})
		}),
	}
	cmd.Flags().BoolVar(&byGenre, "genre", false, "pick the genre instead of the artist")
	return cmd
}

func newTrendCmd(o *rootOptions) *cobra.Command {
	var genres, smooth int
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Plot summed genre popularity per year",
		Args:  cobra.NoArgs,
		RunE: withDataset(o, func(cmd *cobra.Command, rs *store.RecordSet, _ []string) error {
			from, to := o.settings.explore.From, o.settings.explore.To
			first, last, ok := rs.YearRange()
			if !ok {
				return notice(cmd, o, "dataset has no songs")
			}
			if from == 0 {
				from = first
			}
			if to == 0 {
				to = last
			}
			res, err := stats.GenrePopularityTimeSeries(store.NormalizeGenres(rs), from, to)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Genre popularity %d-%d", from, to)
			if smooth > 1 {
				title += fmt.Sprintf(", %d-year moving average", smooth)
			}
			return emit(cmd, o, res, func(series []model.Series) error {
				return o.renderer(cmd).Series(title, report.Smooth(stats.TopSeries(series, genres), smooth))
			})
		}),
	}
	cmd.Flags().IntVar(&o.from, "from", 0, "first year (default: earliest in dataset)")
	cmd.Flags().IntVar(&o.to, "to", 0, "last year (default: latest in dataset)")
	cmd.Flags().IntVar(&genres, "genres", 5, "number of genres to show, by total popularity")
	cmd.Flags().IntVar(&smooth, "smooth", 1, "moving-average window in years (1 disables smoothing)")
	return cmd
}

func newGenresCmd(o *rootOptions) *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "genres",
		Short: "Show each genre's share of songs in a period",
		Args:  cobra.NoArgs,
		RunE: withDataset(o, func(cmd *cobra.Command, rs *store.RecordSet, _ []string) error {
			res, err := stats.GenreDistribution(rs, period)
			if err != nil {
				return err
			}
			return emit(cmd, o, res, func(shares []model.Share) error {
				return o.renderer(cmd).Shares("Genre share, "+period, "Genre", limit(shares, o.settings.explore.Top))
			})
		}),
	}
	cmd.Flags().StringVar(&period, "period", "", `year ("2015") or decade ("2010s")`)
	_ = cmd.MarkFlagRequired("period")
	return cmd
}

func newArtistsCmd(o *rootOptions) *cobra.Command {
	var period, genre string
	cmd := &cobra.Command{
		Use:   "artists",
		Short: "Show each artist's share of a genre in a period",
		Args:  cobra.NoArgs,
		RunE: withDataset(o, func(cmd *cobra.Command, rs *store.RecordSet, _ []string) error {
			res, err := stats.ArtistDistributionGivenGenre(rs, period, genre)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Artist share within %s, %s", genre, period)
			return emit(cmd, o, res, func(shares []model.Share) error {
				return o.renderer(cmd).Shares(title, "Artist", limit(shares, o.settings.explore.Top))
			})
		}),
	}
	cmd.Flags().StringVar(&period, "period", "", `year ("2015") or decade ("2010s")`)
	cmd.Flags().StringVar(&genre, "genre", "", "genre label")
	_ = cmd.MarkFlagRequired("period")
	_ = cmd.MarkFlagRequired("genre")
	return cmd
}

func newArtistCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "artist NAME",
		Short: "Profile one artist",
		Args:  cobra.MinimumNArgs(1),
		RunE: withDataset(o, func(cmd *cobra.Command, rs *store.RecordSet, args []string) error {
			res, err := stats.ArtistProfile(rs, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return emit(cmd, o, res, o.renderer(cmd).Profile)
		}),
	}
}

func newProbCmd(o *rootOptions) *cobra.Command {
	var field, value, mode, target string
	var artist, genre, period string
	cmd := &cobra.Command{
		Use:   "prob",
		Short: "Compute genre and artist probabilities",
		Long: `Without --artist, counts rows where --field equals --value and the row matches --target
(an artist name or a period, per --mode), divided by all rows: a joint probability.
With --artist, --genre and --period, prints the joint and conditional breakdown.`,
		Args: cobra.NoArgs,
		RunE: withDataset(o, func(cmd *cobra.Command, rs *store.RecordSet, _ []string) error {
			gs := store.NormalizeGenres(rs)
			if cmd.Flags().Changed("artist") {
				res, err := stats.ProbabilityBreakdown(gs, artist, genre, period)
				if err != nil {
					return err
				}
				return emit(cmd, o, res, o.renderer(cmd).Breakdown)
			}
			res, err := stats.ConditionalProbability(gs, stats.Attribute{Field: field, Value: value}, mode, target)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("P(%s=%s, %s=%s)", field, value, mode, target)
			return emit(cmd, o, res, func(p model.Probability) error {
				return o.renderer(cmd).Probability(title, p)
			})
		}),
	}
	cmd.Flags().StringVar(&field, "field", stats.FieldGenre, "attribute field: artist or genre")
	cmd.Flags().StringVar(&value, "value", "", "attribute value")
	cmd.Flags().StringVar(&mode, "mode", stats.ModePeriod, "target kind: artist or period")
	cmd.Flags().StringVar(&target, "target", "", "artist name or period")
	cmd.Flags().StringVar(&artist, "artist", "", "artist for the breakdown")
	cmd.Flags().StringVar(&genre, "genre", "", "genre for the breakdown")
	cmd.Flags().StringVar(&period, "period", "", "period for the breakdown")
	cmd.MarkFlagsRequiredTogether("artist", "genre", "period")
	return cmd
}

func newCorrCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corr",
		Short: "Show Pearson correlations between audio attributes",
		Args:  cobra.NoArgs,
		RunE: withDataset(o, func(cmd *cobra.Command, rs *store.RecordSet, _ []string) error {
			attrs := o.settings.explore.CorrAttrs
			if len(attrs) == 0 {
				attrs = stats.DefaultCorrelationAttributes
			}
			res, err := stats.CorrelationMatrix(rs, attrs)
			if err != nil {
				return err
			}
			return emit(cmd, o, res, func(m model.Matrix) error {
				return o.renderer(cmd).Matrix("Correlation", m)
			})
		}),
	}
	cmd.Flags().StringSliceVar(&o.corrAttrs, "attrs", nil, "attributes to correlate: "+strings.Join(stats.Measures, ", "))
	return cmd
}

func newHistoryCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Sum listening time per artist from a streaming history export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := o.loadHistory()
			if err != nil {
				return err
			}
			res, err := stats.AggregateListeningTime(entries, o.settings.explore.Top)
			if err != nil {
				return err
			}
			return emit(cmd, o, res, o.renderer(cmd).Listening)
		},
	}
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/okian/tunify/internal/domain/insights"
	"github.com/okian/tunify/internal/domain/types"
)

const (
	defaultRecommendN    = 5
	defaultPlaylistLimit = 10
	defaultInsightsTop   = 10
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "recommend <song>",
		Short: "List the tracks most similar to a song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			recs, err := svc.Recommend(cmd.Context(), args[0], n)
			if err != nil {
				return err
			}
			printRecommendations(cmd.OutOrStdout(), recs)
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", defaultRecommendN, "Number of recommendations")
	return cmd
}

func newPlaylistCommand(ctx *commandContext) *cobra.Command {
	var (
		mood    string
		limit   int
		csvPath string
	)
	cmd := &cobra.Command{
		Use:   "playlist <genre>",
		Short: "Build a mood-ordered playlist for a genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			genre := args[0]
			if csvPath != "" {
				data, err := svc.PlaylistCSV(cmd.Context(), genre, mood, limit)
				if err != nil {
					return err
				}
				if err := os.WriteFile(csvPath, data, 0o644); err != nil {
					return fmt.Errorf("write playlist: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Playlist written to %s\n", csvPath)
				return nil
			}
			entries, err := svc.Playlist(cmd.Context(), genre, mood, limit)
			if err != nil {
				return err
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().StringVar(&mood, "mood", "energetic", "Mood: energetic or calm")
	cmd.Flags().IntVar(&limit, "limit", defaultPlaylistLimit, "Maximum tracks in the playlist")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the playlist as CSV to this file")
	return cmd
}

func newGenresCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the catalogue genres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			genres, err := svc.Genres(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, g := range genres {
				fmt.Fprintln(out, g)
			}
			return nil
		},
	}
}

func newInsightsCommand(ctx *commandContext) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Summarize the catalogue by genre and mood",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			summary, err := svc.Insights(cmd.Context(), top)
			if err != nil {
				return err
			}
			printInsights(cmd.OutOrStdout(), summary)
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", defaultInsightsTop, "Number of genres to show")
	return cmd
}

func printRecommendations(out io.Writer, recs []types.Recommendation) {
	rows := make([][]string, 0, len(recs))
	for i, r := range recs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.TrackName,
			r.ArtistName,
			r.Genre,
			formatNumber(r.Popularity),
			strconv.FormatFloat(r.Similarity, 'f', 4, 64),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Track", "Artist", "Genre", "Popularity", "Similarity"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	))
}

func printEntries(out io.Writer, entries []types.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No tracks found")
		return
	}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{strconv.Itoa(i + 1), e.TrackName, e.ArtistName, e.Genre, formatNumber(e.Popularity)})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Track", "Artist", "Genre", "Popularity"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
	))
}

func printInsights(out io.Writer, s insights.Summary) {
	rows := make([][]string, 0, len(s.TopGenres))
	for _, g := range s.TopGenres {
		rows = append(rows, []string{g.Genre, strconv.Itoa(g.Count)})
	}
	fmt.Fprintln(out, renderTable([]string{"Genre", "Tracks"}, rows, []columnAlignment{alignLeft, alignRight}))
	fmt.Fprintln(out, renderTable(
		[]string{"Energetic", "Calm", "Mixed", "Total"},
		[][]string{{
			strconv.Itoa(s.Moods.Energetic),
			strconv.Itoa(s.Moods.Calm),
			strconv.Itoa(s.Moods.Mixed),
			strconv.Itoa(s.Moods.Total),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
	))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/capydiary/capydiary/client"
)

func (a *app) newInsightsCmd() *cobra.Command {
	var rng string
	var refresh, live bool
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show this week's or month's insights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := client.Range(rng)
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				var (
					snap *client.InsightsSnapshot
					err  error
				)
				switch {
				case live:
					snap, err = c.Insights(ctx, r)
				case refresh:
					snap, err = c.RefreshInsights(ctx, r)
				default:
					snap, err = c.InsightsCached(ctx, r)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd, snap)
			})
		},
	}
	cmd.Flags().StringVar(&rng, "range", string(client.RangeWeek), "week or month")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Refetch and update today's cached copy")
	cmd.Flags().BoolVar(&live, "no-cache", false, "Fetch without touching the cache")
	cmd.MarkFlagsMutuallyExclusive("refresh", "no-cache")
	return cmd
}

func (a *app) newTimeCapsuleCmd() *cobra.Command {
	var live bool
	cmd := &cobra.Command{
		Use:   "time-capsule",
		Short: "Show today's quote from an older entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				get := c.TimeCapsuleCached
				if live {
					get = c.TimeCapsule
				}
				tc, err := get(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, tc)
			})
		},
	}
	cmd.Flags().BoolVar(&live, "no-cache", false, "Fetch without touching the cache")
	return cmd
}

func (a *app) newStatsCmd() *cobra.Command {
	var p client.StatsParams
	var rng string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show entry statistics for a week or month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p.Range = client.Range(rng)
			if p.Date == "" {
				p.Date = defaultStatsDate(p.Range, time.Now())
			}
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				raw, err := c.Stats(ctx, p)
				if err != nil {
					return err
				}
				return printRaw(cmd, raw)
			})
		},
	}
	cmd.Flags().StringVar(&rng, "range", string(client.RangeWeek), "week or month")
	cmd.Flags().StringVar(&p.Date, "date", "", "YYYY-MM-DD for a week, YYYY-MM for a month (default: now)")
	return cmd
}

func defaultStatsDate(r client.Range, now time.Time) string {
	if r == client.RangeMonth {
		return now.Format("2006-01")
	}
	return now.Format("2006-01-02")
}

func (a *app) newCalendarCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show this week's paws, or a month grid with --month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				if month == "" {
					week, err := c.WeekCalendar(ctx)
					if err != nil {
						return err
					}
					return printJSON(cmd, week)
				}
				raw, err := c.MonthCalendar(ctx, month)
				if err != nil {
					return err
				}
				return printRaw(cmd, raw)
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM)")
	return cmd
}

func (a *app) newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				h, err := c.Health(ctx)
				if err != nil {
					return fmt.Errorf("%s: %w", c.BaseURL(), err)
				}
				return printJSON(cmd, h)
			})
		},
	}
}

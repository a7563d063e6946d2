package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/capydiary/capydiary/client"
)

func (a *app) newEntriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Read and write journal entries",
	}
	cmd.AddCommand(a.newEntriesListCmd(), a.newEntriesGetCmd(), a.newEntriesCreateCmd(), a.newEntriesDeleteCmd())
	return cmd
}

func (a *app) newEntriesListCmd() *cobra.Command {
	var p client.ListEntriesParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				list, err := c.ListEntries(ctx, p)
				if err != nil {
					return err
				}
				return printJSON(cmd, list)
			})
		},
	}
	cmd.Flags().StringVar(&p.Date, "date", "", "Day (YYYY-MM-DD) or month (YYYY-MM)")
	cmd.Flags().StringVar(&p.FromDate, "from", "", "First day, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.ToDate, "to", "", "Last day, inclusive (YYYY-MM-DD)")
	return cmd
}

func (a *app) newEntriesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an entry with its AI reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "entry id")
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				e, err := c.GetEntry(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, e)
			})
		},
	}
}

func (a *app) newEntriesCreateCmd() *cobra.Command {
	var req client.CreateEntryRequest
	cmd := &cobra.Command{
		Use:   "create <content>",
		Short: "Write a new entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Content = args[0]
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				e, err := c.CreateEntry(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(cmd, e)
			})
		},
	}
	cmd.Flags().BoolVar(&req.NeedAIReply, "reply", false, "Ask your companion to reply")
	return cmd
}

func (a *app) newEntriesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "entry id")
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := c.DeleteEntry(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			})
		},
	}
}

func (a *app) newReplyCmd() *cobra.Command {
	var opts client.AIReplyOptions
	cmd := &cobra.Command{
		Use:   "reply <entry-id>",
		Short: "Get your companion's reply to an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "entry id")
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				r, err := c.GenerateAIReply(ctx, id, opts)
				if err != nil {
					return err
				}
				return printJSON(cmd, r)
			})
		},
	}
	cmd.Flags().BoolVar(&opts.ForceRegenerate, "regenerate", false, "Discard the existing reply")
	return cmd
}

func (a *app) newCommentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Self-notes attached to an entry",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <entry-id>",
			Short: "List notes on an entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "entry id")
				if err != nil {
					return err
				}
				return a.run(cmd, func(ctx context.Context, c *client.Client) error {
					list, err := c.ListComments(ctx, id)
					if err != nil {
						return err
					}
					return printJSON(cmd, list)
				})
			},
		},
		&cobra.Command{
			Use:   "add <entry-id> <content>",
			Short: "Add a note to an entry",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "entry id")
				if err != nil {
					return err
				}
				return a.run(cmd, func(ctx context.Context, c *client.Client) error {
					cm, err := c.AddComment(ctx, id, args[1])
					if err != nil {
						return err
					}
					return printJSON(cmd, cm)
				})
			},
		},
		&cobra.Command{
			Use:   "delete <entry-id> <comment-id>",
			Short: "Remove a note",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				entryID, err := parseID(args[0], "entry id")
				if err != nil {
					return err
				}
				commentID, err := parseID(args[1], "comment id")
				if err != nil {
					return err
				}
				return a.run(cmd, func(ctx context.Context, c *client.Client) error {
					res, err := c.DeleteComment(ctx, entryID, commentID)
					if err != nil {
						return err
					}
					return printJSON(cmd, res)
				})
			},
		},
	)
	return cmd
}

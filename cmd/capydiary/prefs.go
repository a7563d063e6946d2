package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/capydiary/capydiary/client"
)

func (a *app) newLangCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lang",
		Short: "Show or change the display language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printLanguage(cmd)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show the display language",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.printLanguage(cmd)
			},
		},
		&cobra.Command{
			Use:       "set <en|zh>",
			Short:     "Change the display language",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(client.English), string(client.Chinese)},
			RunE: func(cmd *cobra.Command, args []string) error {
				lang, err := client.ParseLanguage(args[0])
				if err != nil {
					return err
				}
				return a.run(cmd, func(ctx context.Context, c *client.Client) error {
					if err := c.SetLanguage(ctx, lang); err != nil {
						return err
					}
					return printJSON(cmd, map[string]string{"language": string(lang)})
				})
			},
		},
	)
	return cmd
}

func (a *app) printLanguage(cmd *cobra.Command) error {
	return a.run(cmd, func(ctx context.Context, c *client.Client) error {
		lang, err := c.Language(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]string{"language": string(lang)})
	})
}

func (a *app) newPromptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompts",
		Short: "List writing prompts in the display language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				list, err := c.Prompts(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, list)
			})
		},
	}
}

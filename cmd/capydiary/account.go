package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/capydiary/capydiary/client"
)

func credentialFlags(cmd *cobra.Command, creds *client.Credentials) {
	cmd.Flags().StringVar(&creds.Email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Account password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
}

func (a *app) newRegisterCmd() *cobra.Command {
	var creds client.Credentials
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				u, err := c.Register(ctx, creds)
				if err != nil {
					return err
				}
				return printJSON(cmd, u)
			})
		},
	}
	credentialFlags(cmd, &creds)
	return cmd
}

func (a *app) newLoginCmd() *cobra.Command {
	var creds client.Credentials
	var warm bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := c.Login(ctx, creds)
				if err != nil {
					return err
				}
				if warm {
					c.WarmUp(ctx)
					if err := c.AwaitWarmUp(ctx); err != nil {
						log.Warn().Err(err).Msg("warm-up did not finish")
					}
				}
				out := map[string]any{"authenticated": res.AccessToken != ""}
				if res.User != nil {
					out["user"] = res.User
				}
				return printJSON(cmd, out)
			})
		},
	}
	credentialFlags(cmd, &creds)
	cmd.Flags().BoolVar(&warm, "warm", false, "Preload today's insights and time capsule")
	return cmd
}

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				if err := c.Logout(ctx); err != nil {
					return err
				}
				return printJSON(cmd, map[string]bool{"authenticated": false})
			})
		},
	}
}

func (a *app) newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				u, err := c.CurrentUser(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, u)
			})
		},
	}
}

func (a *app) newNicknameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nickname <name>",
		Short: "Change your nickname",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				u, err := c.UpdateNickname(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, u)
			})
		},
	}
}

func (a *app) newCompanionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companions",
		Short: "Browse and pick an AI companion",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List companions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.run(cmd, func(ctx context.Context, c *client.Client) error {
					list, err := c.ListCompanions(ctx)
					if err != nil {
						return err
					}
					return printJSON(cmd, list)
				})
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one companion",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "companion id")
				if err != nil {
					return err
				}
				return a.run(cmd, func(ctx context.Context, c *client.Client) error {
					comp, err := c.GetCompanion(ctx, id)
					if err != nil {
						return err
					}
					return printJSON(cmd, comp)
				})
			},
		},
		&cobra.Command{
			Use:   "select <id>",
			Short: "Make a companion reply to new entries",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "companion id")
				if err != nil {
					return err
				}
				return a.run(cmd, func(ctx context.Context, c *client.Client) error {
					u, err := c.SelectCompanion(ctx, id)
					if err != nil {
						return err
					}
					if u.Companion != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s will reply from now on\n", u.Companion.Name)
					}
					return printJSON(cmd, u)
				})
			},
		},
	)
	return cmd
}

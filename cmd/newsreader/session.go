package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/ports"
	"github.com/Harsha6202/personalized-news-sentiment/internal/infrastructure/queue"
)

// printer writes notifications to the terminal and remembers alerts so the
// command can exit non-zero.
type printer struct {
	out io.Writer

	mu     sync.Mutex
	alerts []string
}

func (p *printer) Deliver(n domain.Notification) {
	prefix := "*"
	if n.Variant == domain.VariantDestructive {
		prefix = "!"
		p.mu.Lock()
		p.alerts = append(p.alerts, n.Title)
		p.mu.Unlock()
	}
	fmt.Fprintf(p.out, "%s %s: %s\n", prefix, n.Title, n.Description)
}

func (p *printer) err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.alerts) == 0 {
		return nil
	}
	return errors.New(strings.ToLower(p.alerts[0]))
}

// withSession wires a client for a one-shot command, runs fn and flushes
// the notifications it produced. An alert notification fails the command.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, c *client) error) error {
	cfg, log, err := setup(cmd, "newsreader")
	if err != nil {
		return err
	}

	p := &printer{out: cmd.OutOrStdout()}
	dctx, cancel := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.NotificationBuffer, log, p)
	dispatcher.Start(dctx)

	c, err := newClient(cmd.Context(), cfg, dispatcher, log)
	if err == nil {
		err = fn(cmd.Context(), c)
		c.Close()
	}

	cancel()
	<-dispatcher.Done()
	if err != nil {
		return err
	}
	return p.err()
}

// NewRegisterCmd creates the register subcommand.
func NewRegisterCmd() *cobra.Command {
	var in ports.RegisterInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long:  `Create an account. A verification link is sent to the email address; log in after verifying it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, c *client) error {
				c.session.Register(ctx, in)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password (at least 6 characters)")
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	return cmd
}

// NewLoginCmd creates the login subcommand.
func NewLoginCmd() *cobra.Command {
	var in ports.LoginInput
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Long: `Log in with email and password. Only verified accounts are signed in; the
credential is persisted so later commands and serve reuse the session.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, c *client) error {
				c.session.Login(ctx, in)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	return cmd
}

// NewLogoutCmd creates the logout subcommand.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the persisted session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, c *client) error {
				c.session.Logout(ctx)
				return nil
			})
		},
	}
}

// NewWhoamiCmd creates the whoami subcommand.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		Long:  `Restore the persisted session against the remote API and print who is signed in.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, c *client) error {
				st := c.session.Restore(ctx)
				if st.Error != "" {
					return errors.New(st.Error)
				}
				out := cmd.OutOrStdout()
				if !st.IsAuthenticated || st.Identity == nil {
					fmt.Fprintln(out, "not logged in")
					return nil
				}
				status := "verified"
				if !st.Identity.EmailVerified {
					status = "unverified"
				}
				fmt.Fprintf(out, "%s <%s> (%s)\n", st.Identity.DisplayName(), st.Identity.Email, status)
				return nil
			})
		},
	}
}

// NewVerifyEmailCmd creates the verify-email subcommand.
func NewVerifyEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-email TOKEN",
		Short: "Confirm an email address with the token from the verification link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, c *client) error {
				c.session.VerifyEmail(ctx, args[0])
				return nil
			})
		},
	}
}

// NewResendVerificationCmd creates the resend-verification subcommand.
func NewResendVerificationCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "resend-verification",
		Short: "Send the verification link again",
		Long: `Send the verification link again. Without --email the address of the
restored session is used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, c *client) error {
				if email == "" {
					c.session.Restore(ctx)
					st := c.session.SendVerificationEmail(ctx)
					if st.Email() == "" {
						return errors.New("not logged in: pass --email")
					}
					return nil
				}
				if err := c.gateway.SendVerificationEmail(ctx, email, ""); err != nil {
					return fmt.Errorf("send verification email: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "* Verification Email Sent: Please check your email for the verification link.")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "address to send the link to")
	return cmd
}

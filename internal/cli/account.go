package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"motoparts/internal/models"
	"motoparts/internal/session"
	"motoparts/internal/storefront"
)

func newLoginCmd(e *env) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := e.front.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			user := e.front.CurrentUser()
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s.\n", user.Name)
			if route == storefront.RouteAdmin {
				fmt.Fprintf(cmd.OutOrStdout(), "Admin console: motoparts admin --help\n")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newGoogleLoginCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "google-login <credential>",
		Short: "Sign in with a Google ID token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.front.GoogleLogin(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s.\n", e.front.CurrentUser().Name)
			return nil
		},
	}
}

func newRegisterCmd(e *env) *cobra.Command {
	var in models.RegisterInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := e.front.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (at least 6 characters)")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Phone number")
	return cmd
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the guest cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.front.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user and cart scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := e.front.Scope()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if user := e.front.CurrentUser(); user != nil {
				fmt.Fprintf(w, "%s <%s> role=%s\n", user.Name, user.Email, user.Role)
				if token, err := session.NewAuthStore(e.store).Token(); err == nil {
					if exp, ok := session.TokenExpiry(token); ok {
						fmt.Fprintf(w, "Session expires %s\n", exp.Format("2006-01-02 15:04"))
					}
				}
			} else {
				fmt.Fprintln(w, "Browsing as guest.")
			}
			fmt.Fprintf(w, "Cart: %s\n", scope.CartKey())
			return nil
		},
	}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goliatone/go-print"
	"github.com/maestro-marketing/go-maestro"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the Maestro backend",
		Long:  "Exchange a username and password for an access token and store it locally.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if username == "" {
				username = prompt("Username: ")
			}
			if password == "" {
				password = prompt("Password: ")
			}

			session, _, err := buildSession()
			if err != nil {
				return err
			}

			if ok := session.Login(ctx, maestro.Credentials{
				Username: username,
				Password: password,
			}); !ok {
				return fmt.Errorf("login failed: %s", session.LastError())
			}

			user := session.Identity()
			fmt.Printf("Logged in as %s\n", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted if omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := buildSession()
			if err != nil {
				return err
			}

			session.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	payload := maestro.RegisterPayload{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if payload.Email == "" {
				payload.Email = prompt("Email: ")
			}
			if payload.Username == "" {
				payload.Username = prompt("Username: ")
			}
			if payload.Password == "" {
				payload.Password = prompt("Password: ")
			}

			if err := payload.Validate(); err != nil {
				return fmt.Errorf("invalid registration: %w", err)
			}

			session, _, err := buildSession()
			if err != nil {
				return err
			}

			if ok := session.Register(ctx, payload); !ok {
				return fmt.Errorf("registration failed: %s", session.LastError())
			}

			fmt.Printf("Registered and logged in as %s\n", payload.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&payload.Email, "email", "", "Account email (prompted if omitted)")
	cmd.Flags().StringVar(&payload.Username, "username", "", "Account username (prompted if omitted)")
	cmd.Flags().StringVar(&payload.FullName, "full-name", "", "Full name")
	cmd.Flags().StringVar(&payload.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&payload.Password, "password", "", "Account password (prompted if omitted)")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			session, api, err := buildSession()
			if err != nil {
				return err
			}

			session.Hydrate(ctx)

			if !session.IsAuthenticated() {
				if msg := session.LastError(); msg != "" {
					return fmt.Errorf("not logged in: %s", msg)
				}
				return fmt.Errorf("not logged in")
			}

			user := session.Identity()
			if jsonOutput {
				fmt.Println(print.MaybePrettyJSON(user))
				return nil
			}

			fmt.Printf("Email:    %s\n", user.Email)
			fmt.Printf("Username: %s\n", user.Username)
			if user.FullName != "" {
				fmt.Printf("Name:     %s\n", user.FullName)
			}

			if token, err := api.Credential(); err == nil && token != "" {
				if claims, err := maestro.PeekClaims(token); err == nil && claims.ExpiresAt != nil {
					fmt.Printf("Expires:  %s\n", claims.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
				}
			}
			return nil
		},
	}
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func init() {
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newWhoamiCmd())
}

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinectl/cinemaguide"
	"github.com/s0up4200/cinectl/movieutil"
)

var (
	authEmail    string
	authPassword string
	authName     string
	authSurname  string
	logoutLocal  bool
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	RunE:  runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "account password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := authEmail
	if email == "" {
		email = promptLine("Email: ")
	}
	password := authPassword
	if password == "" {
		password = promptLine("Password: ")
	}

	outcome := sess.Login(context.Background(), email, password)
	if !outcome.Success {
		return fmt.Errorf("login failed: %s", outcome.Message)
	}

	user := sess.User()
	name := strings.TrimSpace(user.Name + " " + user.Surname)
	if name == "" {
		name = user.Email
	}
	fmt.Printf("✓ Logged in as %s %s\n", name, initialsSuffix(user))
	return nil
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "account password")
	registerCmd.Flags().StringVar(&authName, "name", "", "first name")
	registerCmd.Flags().StringVar(&authSurname, "surname", "", "surname")
}

func runRegister(cmd *cobra.Command, args []string) error {
	email := authEmail
	if email == "" {
		email = promptLine("Email: ")
	}
	password := authPassword
	if password == "" {
		password = promptLine("Password: ")
	}

	outcome := sess.Register(context.Background(), cinemaguide.RegisterInput{
		Email:    email,
		Password: password,
		Name:     authName,
		Surname:  authSurname,
	})
	if !outcome.Success {
		return fmt.Errorf("registration failed: %s", outcome.Message)
	}

	if sess.Authorized() {
		fmt.Println("✓ Registered and logged in")
	} else {
		fmt.Println("✓ Registration complete, please log in")
	}
	return nil
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if logoutLocal {
			sess.Clear()
			fmt.Println("✓ Local session cleared")
			return nil
		}

		// The local session is cleared even when the server call fails.
		if err := sess.Logout(context.Background()); err != nil {
			fmt.Println("✓ Logged out (server notification failed)")
			return nil
		}
		fmt.Println("✓ Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)

	logoutCmd.Flags().BoolVar(&logoutLocal, "local", false, "clear the local session without notifying the server")
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !sess.Authorized() {
			fmt.Println("Anonymous — not logged in.")
			return nil
		}

		user, err := sess.RefreshProfile(context.Background())
		if err != nil {
			return fmt.Errorf("failed to refresh profile: %w", err)
		}

		fmt.Printf("Name:    %s %s %s\n", user.Name, user.Surname, initialsSuffix(*user))
		fmt.Printf("Email:   %s\n", user.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func initialsSuffix(user cinemaguide.User) string {
	if initials := movieutil.Initials(user.Name, user.Surname); initials != "" {
		return "(" + initials + ")"
	}
	return ""
}

func promptLine(prompt string) string {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

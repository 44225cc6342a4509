package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/sagarc03/filedock"
	"github.com/sagarc03/filedock/config"
	"github.com/sagarc03/filedock/database"
)

var addUserCmd = &cobra.Command{
	Use:   "adduser [username] [email]",
	Short: "Register a user",
	Long: `Register a user in the metadata database.

With no arguments the command prompts interactively. Registering an
existing username with a new email updates that user's email address.

Examples:
  # Register directly
  filedock adduser alice alice@example.com

  # Prompt for username and email
  filedock adduser`,
	Args: cobra.MaximumNArgs(2),
	RunE: runAddUser,
}

func init() {
	rootCmd.AddCommand(addUserCmd)
}

func runAddUser(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	username, email, err := resolveUserArgs(args)
	if err != nil {
		return err
	}

	repos, closeDB, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer closeDB()

	user, err := filedock.NewUserService(repos.Users).Register(ctx, username, email)
	if err != nil {
		if errors.Is(err, filedock.ErrConflict) {
			return fmt.Errorf("registration rejected: %w", err)
		}
		return fmt.Errorf("register user: %w", err)
	}

	fmt.Printf("User added successfully! id=%d username=%s email=%s\n", user.ID, user.Username, user.Email)
	return nil
}

// resolveUserArgs takes username and email from the positional arguments and
// prompts for whichever is missing.
func resolveUserArgs(args []string) (username, email string, err error) {
	if len(args) > 0 {
		username = args[0]
	} else {
		prompt := promptui.Prompt{
			Label:    "Username",
			Validate: filedock.ValidateUsername,
		}
		username, err = prompt.Run()
		if err != nil {
			return "", "", handlePromptError(err)
		}
	}

	if len(args) > 1 {
		email = args[1]
	} else {
		prompt := promptui.Prompt{
			Label:    "Email",
			Validate: filedock.ValidateEmail,
		}
		email, err = prompt.Run()
		if err != nil {
			return "", "", handlePromptError(err)
		}
	}

	return username, email, nil
}

// handlePromptError handles promptui errors.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}

package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/adli-inc/adli/internal/infrastructure/auth"
	"github.com/adli-inc/adli/internal/infrastructure/config"
)

var (
	env    string
	userID uint
)

// NewCommand issues panel access tokens for staff accounts whose identity
// is managed outside this service.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a panel access token",
		Long:  `Sign a JWT for the given user ID with the configured secret and issuer.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().UintVarP(&userID, "user", "u", 0, "User ID to issue the token for (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if userID == 0 {
		return fmt.Errorf("user ID must be positive")
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	jwt := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.ExpMinutes)
	signed, expiresAt, err := jwt.Generate(userID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, signed)
	fmt.Fprintf(out, "expires at %s\n", expiresAt.UTC().Format(time.RFC3339))
	return nil
}

package main

import (
	"errors"
	"fmt"
	"time"

	"flowstudio"
	"flowstudio/pkg"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// tokenCmd mints an access token for local testing against a non-dev API.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		envfile, _ := cmd.Flags().GetString("env")
		_ = godotenv.Load(envfile)

		secret := flowstudio.GetEnv("JWT_SECRET", "")
		if secret == "" {
			return errors.New("JWT_SECRET is required")
		}
		userID, _ := cmd.Flags().GetUint("user")
		email, _ := cmd.Flags().GetString("email")
		role, _ := cmd.Flags().GetString("role")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		token, err := pkg.NewToken(userID, email, role, secret, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Uint("user", 1, "User id claim")
	tokenCmd.Flags().String("email", "dev@flowstudio.local", "Email claim")
	tokenCmd.Flags().String("role", "editor", "Role claim")
	tokenCmd.Flags().Duration("ttl", time.Hour, "Token lifetime")
	rootCmd.AddCommand(tokenCmd)
}

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iudanet/cloudsync/internal/config"
	"github.com/iudanet/cloudsync/internal/server/handlers"
)

var (
	tokenUser   string
	tokenDevice string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for a client device",
	Long: `Issue a signed access token binding a user and a device.
Put it into cloud.token of the client configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return issueToken(cmd.OutOrStdout(), cfg, tokenUser, tokenDevice, tokenTTL)
	},
}

func init() {
	f := tokenCmd.Flags()
	f.StringVarP(&tokenUser, "user", "u", "", "user id (required)")
	f.StringVarP(&tokenDevice, "device", "d", "", "device id (default random)")
	f.DurationVar(&tokenTTL, "ttl", 0, "token lifetime (default jwt.token_ttl)")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}

func issueToken(out io.Writer, cfg *config.ServerConfig, user, device string, ttl time.Duration) error {
	if device == "" {
		device = uuid.NewString()
	}
	jc := jwtConfig(cfg)
	if ttl > 0 {
		jc.TokenTTL = ttl
	}

	token, expiresAt, err := handlers.GenerateAccessToken(jc, user, device)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "device:  %s\n", device)
	fmt.Fprintf(out, "expires: %s\n", expiresAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(out, "token:   %s\n", token)
	return nil
}

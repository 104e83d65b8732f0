package main

import (
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/spf13/cobra"

	"github.com/yizeng/geoshapes/cmd/app"
	"github.com/yizeng/geoshapes/internal/config"
	"github.com/yizeng/geoshapes/internal/pkg/jwthelper"
)

var (
	configPath string
	subject    string
	ttl        time.Duration
)

// rootCmd issues bearer tokens for the operator routes (connect, disconnect, mint).
var rootCmd = &cobra.Command{
	Use:   "opstoken",
	Short: "Issue an operator token for the GeoShapes API",
	Long: `Sign an HS256 operator token with the API signing key from the config file.

The token is printed to stdout. Send it as "Authorization: Bearer <token>"
to POST /api/v1/session/connect, /session/disconnect and /mint.`,
	Args: cobra.NoArgs,
	RunE: runIssue,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", app.ConfigPath(), "path to the config file")
	rootCmd.Flags().StringVarP(&subject, "subject", "s", "operator", "token subject")
	rootCmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
}

func runIssue(cmd *cobra.Command, _ []string) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %v", ttl)
	}

	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config.Load -> %w", err)
	}

	token, err := jwthelper.GenerateToken([]byte(conf.API.JWTSigningKey), subject, ttl)
	if err != nil {
		return fmt.Errorf("jwthelper.GenerateToken -> %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

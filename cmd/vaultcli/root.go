// Command vaultcli is a thin operator CLI over the vault format engine: it
// creates, opens, merges, flattens, searches, and watches vaults stored in
// a mem or redis backend (cmd/vaultcli mirrors opal-lang-opal's cli/main.go
// in its cobra wiring, adapted from a single-command interpreter CLI to a
// multi-subcommand vault operator tool).
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rsms/vaultfmt/credentials"
	"github.com/rsms/vaultfmt/store"
	"github.com/rsms/vaultfmt/store/mem"
	"github.com/rsms/vaultfmt/store/redis"
)

const defaultCredentialsID = "default"

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	backend       string // "mem" or "redis"
	redisAddr     string
	redisROAddr   string
	vaultID       string
	credentialsID string
	noColor       bool
}

var gf globalFlags

// openBackend constructs the store.Store named by gf.backend. The mem
// backend is process-local and empty on every invocation (useful for
// examples/tests); the redis backend is durable across invocations.
func openBackend() (store.Store, error) {
	switch gf.backend {
	case "", "mem":
		return mem.New(), nil
	case "redis":
		r := &redis.Redis{}
		if err := r.Open(gf.redisAddr, gf.redisROAddr, 4); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want mem or redis)", gf.backend)
	}
}

// credentialsFromEnv builds a credentials.Store seeded from VAULT_PASSWORD,
// standing in for the interactive prompt a real operator tool would use.
func credentialsFromEnv() *credentials.Store {
	c := credentials.NewStore()
	if pw := os.Getenv("VAULT_PASSWORD"); pw != "" {
		c.Set(gf.credentialsID, pw)
	}
	return c
}

func colorEnabled() bool {
	if gf.noColor {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "vaultcli",
		Short:         "Inspect and operate on vault format engine histories",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			color.NoColor = !colorEnabled()
		},
	}

	fc, err := loadFileConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: vaultcli.yml: %v", err))
		os.Exit(1)
	}
	defaults := globalFlags{backend: "mem", redisAddr: "127.0.0.1:6379", vaultID: "default"}
	gf = defaults
	applyFileConfig(fc)
	defaults = gf

	rootCmd.PersistentFlags().StringVar(&gf.backend, "backend", defaults.backend, "storage backend: mem or redis")
	rootCmd.PersistentFlags().StringVar(&gf.redisAddr, "redis-addr", defaults.redisAddr, "redis read-write address")
	rootCmd.PersistentFlags().StringVar(&gf.redisROAddr, "redis-ro-addr", defaults.redisROAddr, "redis read-only address (defaults to redis-addr)")
	rootCmd.PersistentFlags().StringVar(&gf.vaultID, "vault-id", defaults.vaultID, "vault identifier within the store")
	rootCmd.PersistentFlags().StringVar(&gf.credentialsID, "credentials-id", defaultCredentialsID, "credentials channel key (see VAULT_PASSWORD)")
	rootCmd.PersistentFlags().BoolVar(&gf.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newCreateCmd(),
		newInspectCmd(),
		newFlattenCmd(),
		newMergeCmd(),
		newFindCmd(),
		newWatchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

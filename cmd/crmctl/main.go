// Command crmctl performs one-off administration tasks against the CRM
// database: index creation and bootstrapping the first admin account.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/indocrm/inquiry-desk/internal/core/ports"
	"github.com/indocrm/inquiry-desk/internal/core/service"
	"github.com/indocrm/inquiry-desk/internal/infrastructure/db/mongo"
	"github.com/indocrm/inquiry-desk/internal/infrastructure/search/elastic"
	"github.com/indocrm/inquiry-desk/internal/pkg/config"
	"github.com/indocrm/inquiry-desk/pkg/logger"
)

var timeout time.Duration

var rootCmd = &cobra.Command{
	Use:           "crmctl",
	Short:         "Administration commands for the inquiry desk",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create MongoDB indexes and the Elasticsearch inquiry index",
	RunE:  runEnsureIndexes,
}

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the admin role and an admin account if missing",
	Long: `Create the built-in admin role when it does not exist and an admin
user with the given email unless one is already registered.

Example:
  crmctl seed-admin --name "Asha Rao" --email asha@example.com --mobile 9876543210 --password 'change-me-now'`,
	RunE: runSeedAdmin,
}

var seed struct {
	name, email, password, mobile string
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")

	seedAdminCmd.Flags().StringVar(&seed.name, "name", "Administrator", "Display name")
	seedAdminCmd.Flags().StringVar(&seed.email, "email", "", "Login email (required)")
	seedAdminCmd.Flags().StringVar(&seed.password, "password", "", "Initial password, at least 8 characters (required)")
	seedAdminCmd.Flags().StringVar(&seed.mobile, "mobile", "", "10-digit mobile number")
	_ = seedAdminCmd.MarkFlagRequired("email")
	_ = seedAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(ensureIndexesCmd)
	rootCmd.AddCommand(seedAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "crmctl:", err)
		os.Exit(1)
	}
}

func runEnsureIndexes(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "mongodb indexes ok")

	if cfg.Search.URL == "" {
		return nil
	}
	idx, err := elastic.NewInquiryIndex(cfg.Search.URL, cfg.Search.InquiryIndex)
	if err != nil {
		return err
	}
	if err := idx.EnsureIndex(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "elasticsearch index %q ok\n", cfg.Search.InquiryIndex)
	return nil
}

func runSeedAdmin(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "crmctl"})

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	users := service.NewUserService(mongo.NewUserRepository(db), mongo.NewRoleRepository(db), log)
	user, created, err := users.EnsureAdmin(ctx, ports.CreateUserInput{
		Name:     seed.name,
		Email:    seed.email,
		Password: seed.password,
		Mobile:   seed.mobile,
	})
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "admin %s created (id %s)\n", user.Email, user.ID)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "user %s already exists (role %s)\n", user.Email, user.Role.Name)
	}
	return nil
}

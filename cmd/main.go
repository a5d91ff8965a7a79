package main

import (
	"context"
	"fmt"
	"os"

	"go-clinic-scheduling/cmd/bootstrap"
	"go-clinic-scheduling/internal/domain/scheduling"
	"go-clinic-scheduling/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-scheduling",
		Short: "Clinic slot scheduling engine and live patient queue",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(slotsCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Run: func(cmd *cobra.Command, args []string) {
			// Initialize application with all dependencies
			app, err := bootstrap.New()
			if err != nil {
				logrus.Fatalf("Failed to initialize application: %v", err)
			}

			// Run the application
			app.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := connect()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Migrate()
		},
	})

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			app, err := connect()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Rollback(steps)
		},
	}
	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(downCmd)

	return cmd
}

func slotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Manage slot inventory",
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate slots for one doctor over a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			hospitalID, err := uuidFlag(cmd, "hospital")
			if err != nil {
				return err
			}
			doctorID, err := uuidFlag(cmd, "doctor")
			if err != nil {
				return err
			}
			rawFrom, _ := cmd.Flags().GetString("from")
			rawTo, _ := cmd.Flags().GetString("to")
			from, err := scheduling.ParseDate(rawFrom)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			to, err := scheduling.ParseDate(rawTo)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			duration, _ := cmd.Flags().GetInt("duration")

			app, err := connect()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.Wire(); err != nil {
				return err
			}

			result, err := app.Slots.GenerateForDoctor(context.Background(), hospitalID, doctorID, from, to, duration)
			if err != nil {
				return err
			}
			fmt.Printf("generated %d slots, skipped %d existing (%s..%s, %d min)\n",
				result.Generated, result.SkippedDuplicates, result.StartDate, result.EndDate, result.DurationMinutes)
			return nil
		},
	}
	generateCmd.Flags().String("hospital", "", "Hospital ID")
	generateCmd.Flags().String("doctor", "", "Doctor ID")
	generateCmd.Flags().String("from", "", "First date, YYYY-MM-DD")
	generateCmd.Flags().String("to", "", "Last date, YYYY-MM-DD")
	generateCmd.Flags().Int("duration", 0, "Slot length in minutes, 0 uses the doctor's default")
	for _, name := range []string{"hospital", "doctor", "from", "to"} {
		generateCmd.MarkFlagRequired(name)
	}
	cmd.AddCommand(generateCmd)

	return cmd
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue or revoke access tokens for operators and integrations",
	}

	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Mint an access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuidFlag(cmd, "user")
			if err != nil {
				return err
			}
			hospitalID, err := uuidFlag(cmd, "hospital")
			if err != nil {
				return err
			}
			rawScope, _ := cmd.Flags().GetStringSlice("doctor")
			subject := jwt.Subject{UserID: userID, HospitalID: hospitalID}
			for _, raw := range rawScope {
				id, err := uuid.Parse(raw)
				if err != nil {
					return fmt.Errorf("--doctor %q: %w", raw, err)
				}
				subject.ScopeRestricted = true
				subject.DoctorScope = append(subject.DoctorScope, id)
			}

			app, err := bootstrap.Load()
			if err != nil {
				return err
			}
			token, tokenID, err := app.JWT.GenerateAccessToken(subject)
			if err != nil {
				return err
			}
			fmt.Printf("token_id: %s\nexpires_in: %s\n%s\n", tokenID, app.JWT.GetAccessExpiry(), token)
			return nil
		},
	}
	issueCmd.Flags().String("user", "", "User ID")
	issueCmd.Flags().String("hospital", "", "Hospital ID")
	issueCmd.Flags().StringSlice("doctor", nil, "Restrict the token to these doctor IDs")
	issueCmd.MarkFlagRequired("user")
	issueCmd.MarkFlagRequired("hospital")
	cmd.AddCommand(issueCmd)

	revokeCmd := &cobra.Command{
		Use:   "revoke",
		Short: "Revoke an access token by its id",
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenID, _ := cmd.Flags().GetString("id")

			app, err := bootstrap.Load()
			if err != nil {
				return err
			}
			if err := app.ConnectRedis(); err != nil {
				return err
			}
			defer app.Close()

			if err := app.Denylist.Revoke(context.Background(), tokenID); err != nil {
				return fmt.Errorf("failed to revoke token: %w", err)
			}
			fmt.Printf("revoked %s\n", tokenID)
			return nil
		},
	}
	revokeCmd.Flags().String("id", "", "Token ID printed by token issue")
	revokeCmd.MarkFlagRequired("id")
	cmd.AddCommand(revokeCmd)

	return cmd
}

func connect() (*bootstrap.App, error) {
	app, err := bootstrap.Load()
	if err != nil {
		return nil, err
	}
	if err := app.ConnectDatabase(); err != nil {
		return nil, err
	}
	return app, nil
}

func uuidFlag(cmd *cobra.Command, name string) (uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("--%s: %w", name, err)
	}
	return id, nil
}

package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/repository/postgres"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedFile is the tenant.yaml layout
type seedFile struct {
	Tenant struct {
		Name string `yaml:"name"`
		Plan string `yaml:"plan"`
	} `yaml:"tenant"`
	Admin struct {
		Auth0ID string `yaml:"auth0_id"`
		Name    string `yaml:"name"`
		Email   string `yaml:"email"`
	} `yaml:"admin"`
	Settings *struct {
		ToleranceDays       *int   `yaml:"tolerance_days"`
		PenaltyRate         string `yaml:"penalty_rate"`
		MonthlyInterestRate string `yaml:"monthly_interest_rate"`
	} `yaml:"settings"`
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a tenant with its admin operator and settings",
		Long: `Create a tenant with its first admin operator and accrual settings.

Seeding the same file twice leaves one tenant and one admin; settings are rewritten.

Examples:
  tallyctl seed -f tenant.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read seed file: %w", err)
			}
			input, err := parseSeedFile(raw)
			if err != nil {
				return err
			}

			pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			tenants := service.NewTenantService(
				postgres.NewTenantRepository(pool),
				postgres.NewOperatorRepository(pool),
				postgres.NewSettingsRepository(pool),
			)
			result, err := tenants.Bootstrap(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			log.Info().
				Int32("tenant_id", result.Tenant.ID).
				Str("tenant", result.Tenant.Name).
				Str("admin_id", result.Admin.ID.String()).
				Bool("created", result.Created).
				Msg("Tenant seeded")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "tenant.yaml", "tenant seed file")
	return cmd
}

// parseSeedFile decodes tenant.yaml into a bootstrap request. Omitted settings
// keys keep their defaults.
func parseSeedFile(raw []byte) (service.BootstrapInput, error) {
	var f seedFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return service.BootstrapInput{}, fmt.Errorf("parse seed file: %w", err)
	}

	input := service.BootstrapInput{
		Name: f.Tenant.Name,
		Plan: f.Tenant.Plan,
		Admin: service.OperatorInput{
			Auth0ID: f.Admin.Auth0ID,
			Name:    f.Admin.Name,
			Email:   f.Admin.Email,
			Role:    domain.RoleAdmin,
		},
	}
	if f.Settings == nil {
		return input, nil
	}

	settings := domain.DefaultSettings()
	if f.Settings.ToleranceDays != nil {
		settings.ToleranceDays = *f.Settings.ToleranceDays
	}
	if f.Settings.PenaltyRate != "" {
		rate, err := decimal.NewFromString(f.Settings.PenaltyRate)
		if err != nil {
			return service.BootstrapInput{}, fmt.Errorf("settings.penalty_rate: %w", err)
		}
		settings.PenaltyRate = rate
	}
	if f.Settings.MonthlyInterestRate != "" {
		rate, err := decimal.NewFromString(f.Settings.MonthlyInterestRate)
		if err != nil {
			return service.BootstrapInput{}, fmt.Errorf("settings.monthly_interest_rate: %w", err)
		}
		settings.MonthlyInterestRate = rate
	}
	input.Settings = &settings
	return input, nil
}

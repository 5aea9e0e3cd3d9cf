package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gravimed/aegis/pkg/cli"
	"gravimed/aegis/pkg/config"
	"gravimed/aegis/pkg/safety"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and print the resolved safety envelope",
	Long: `Validate the configuration file and print the safety envelope that
would be enforced.

Examples:
  # Validate the default config file
  aegis validate

  # Validate a specific file
  aegis validate --config /etc/aegis/config.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	constraints, err := safety.ConstraintsFor(safety.Profile(cfg.Safety.Profile))
	if err != nil {
		return cli.NewConfigError("safety.profile", err.Error())
	}

	fmt.Println("✓ Configuration valid")
	fmt.Println()
	fmt.Println("Safety envelope:")
	fmt.Printf("  Profile:                  %s\n", cfg.Safety.Profile)
	fmt.Printf("  Max field strength:       %.3g T\n", constraints.MaxFieldStrength)
	fmt.Printf("  Max energy density:       %.3g J/m³\n", constraints.MaxEnergyDensity)
	fmt.Printf("  Biological protection:    %.3g\n", constraints.BiologicalProtectionFactor)
	fmt.Printf("  Causality threshold:      %.4f\n", constraints.CausalityThreshold)
	fmt.Printf("  Required compliance:      %.2f\n", constraints.RequiredCompliance)
	fmt.Printf("  Emergency budget:         %s\n", constraints.EmergencyResponseBudget)
	fmt.Println()
	fmt.Println("Monitoring:")
	fmt.Printf("  Grid resolution:          %d (%d sample points)\n",
		cfg.Safety.GridResolution,
		cfg.Safety.GridResolution*cfg.Safety.GridResolution*cfg.Safety.GridResolution)
	fmt.Printf("  Safety check interval:    %s\n", cfg.Monitor.SafetyCheckInterval)
	fmt.Printf("  Monitoring frequency:     %.0f Hz\n", cfg.Monitor.MonitoringFrequency)
	fmt.Printf("  Emergency watch interval: %s\n", cfg.Monitor.EmergencyWatchInterval)
	fmt.Printf("  Emergency protocols:      %t\n", cfg.Safety.EmergencyProtocols)

	if cfg.Audit.Enabled {
		fmt.Println()
		fmt.Println("Audit:")
		fmt.Printf("  Backend:                  %s\n", cfg.Audit.Backend)
		if cfg.Audit.Backend == "sqlite" {
			fmt.Printf("  Database:                 %s\n", cfg.Audit.SQLitePath)
		}
		if cfg.Audit.Retention.Schedule != "" {
			fmt.Printf("  Retention:                %d days (schedule %q)\n",
				cfg.Audit.Retention.Days, cfg.Audit.Retention.Schedule)
		}
	}

	return nil
}

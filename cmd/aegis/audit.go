package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gravimed/aegis/pkg/audit"
	"gravimed/aegis/pkg/audit/retention"
	"gravimed/aegis/pkg/audit/storage"
	"gravimed/aegis/pkg/cli"
	"gravimed/aegis/pkg/config"
)

var auditFlags struct {
	backend   string
	timeRange string
	severity  string
	kind      string
	limit     int
	offset    int
	format    string
	output    string
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the safety audit trail",
	Long: `Query and maintain the safety audit trail.

Subcommands:
  query  - Query audit events with filters
  prune  - Apply the retention policy once

Examples:
  # Query the last day
  aegis audit query --time-range "2026-08-23T00:00:00Z/2026-08-24T00:00:00Z"

  # Only critical events
  aegis audit query --severity critical

  # Export to JSON file
  aegis audit query --format json --output events.json`,
}

var auditQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query audit events",
	Long: `Query audit events with various filters.

Time Range Format:
  RFC3339 interval format: "start/end"
  Example: "2026-08-23T00:00:00Z/2026-08-24T00:00:00Z"

Examples:
  # Query a time range
  aegis audit query --time-range "2026-08-23T00:00:00Z/2026-08-24T00:00:00Z"

  # Filter by severity and kind
  aegis audit query --severity critical --kind emergency_shutdown

  # Export to JSON
  aegis audit query --format json --output events.json`,
	RunE: queryAuditTrail,
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply the retention policy once",
	Long:  `Delete audit events outside the configured retention window.`,
	RunE:  pruneAuditTrail,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditQueryCmd, auditPruneCmd)

	auditQueryCmd.Flags().StringVar(&auditFlags.backend, "backend", "", "backend: sqlite, memory (uses config if not specified)")
	auditQueryCmd.Flags().StringVar(&auditFlags.timeRange, "time-range", "", "time range (RFC3339 interval: start/end)")
	auditQueryCmd.Flags().StringVar(&auditFlags.severity, "severity", "", "filter by severity (info, warning, critical)")
	auditQueryCmd.Flags().StringVar(&auditFlags.kind, "kind", "", "filter by event kind")
	auditQueryCmd.Flags().IntVar(&auditFlags.limit, "limit", 100, "max results")
	auditQueryCmd.Flags().IntVar(&auditFlags.offset, "offset", 0, "pagination offset")
	auditQueryCmd.Flags().StringVar(&auditFlags.format, "format", "text", "output format: text, json")
	auditQueryCmd.Flags().StringVarP(&auditFlags.output, "output", "o", "", "output file (default: stdout)")

	auditPruneCmd.Flags().StringVar(&auditFlags.backend, "backend", "", "backend: sqlite, memory")
}

// openAuditStorage builds the storage backend selected by flag or config.
func openAuditStorage(cfg *config.Config) (audit.Storage, error) {
	backendType := auditFlags.backend
	if backendType == "" {
		backendType = cfg.Audit.Backend
	}

	switch backendType {
	case "sqlite":
		sqliteCfg := storage.DefaultSQLiteConfig()
		sqliteCfg.Path = cfg.Audit.SQLitePath
		// One-shot CLI access, no background checkpointing needed.
		sqliteCfg.CheckpointInterval = 0
		store, err := storage.NewSQLiteStorage(sqliteCfg, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite storage: %w", err)
		}
		return store, nil
	case "memory":
		return storage.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported audit backend: %s (supported: sqlite, memory)", backendType)
	}
}

func queryAuditTrail(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	store, err := openAuditStorage(cfg)
	if err != nil {
		return cli.NewCommandError("audit", err)
	}
	defer store.Close()

	query := &audit.Query{
		Severity: auditFlags.severity,
		Kind:     auditFlags.kind,
		Limit:    auditFlags.limit,
		Offset:   auditFlags.offset,
	}

	if auditFlags.timeRange != "" {
		parts := strings.Split(auditFlags.timeRange, "/")
		if len(parts) != 2 {
			return fmt.Errorf("invalid time range format (expected: start/end)")
		}

		startTime, err := time.Parse(time.RFC3339, parts[0])
		if err != nil {
			return fmt.Errorf("invalid start time: %w", err)
		}
		query.Start = &startTime

		endTime, err := time.Parse(time.RFC3339, parts[1])
		if err != nil {
			return fmt.Errorf("invalid end time: %w", err)
		}
		query.End = &endTime
	}

	ctx := context.Background()
	events, err := store.Query(ctx, query)
	if err != nil {
		return cli.NewCommandError("audit", fmt.Errorf("query failed: %w", err))
	}

	var output *os.File
	if auditFlags.output != "" {
		output, err = os.Create(auditFlags.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer output.Close()
	} else {
		output = os.Stdout
	}

	switch auditFlags.format {
	case "json":
		return outputEventsJSON(output, events)
	default:
		return outputEventsText(output, events, query)
	}
}

func outputEventsText(output *os.File, events []*audit.Event, query *audit.Query) error {
	if query.Start != nil && query.End != nil {
		fmt.Fprintf(output, "Time range: %s to %s\n",
			query.Start.Format(time.RFC3339),
			query.End.Format(time.RFC3339))
	}
	fmt.Fprintf(output, "Total events: %d\n", len(events))
	fmt.Fprintln(output)

	if len(events) == 0 {
		fmt.Fprintln(output, "No events found.")
		return nil
	}

	for i, event := range events {
		if i > 0 {
			fmt.Fprintln(output)
		}

		fmt.Fprintf(output, "Event ID: %s\n", event.ID)
		fmt.Fprintf(output, "Time: %s\n", event.Time.Format(time.RFC3339))
		fmt.Fprintf(output, "Severity: %s\n", event.Severity)
		fmt.Fprintf(output, "Kind: %s\n", event.Kind)
		fmt.Fprintf(output, "Message: %s\n", event.Message)
		for key, value := range event.Details {
			fmt.Fprintf(output, "  %s: %v\n", key, value)
		}

		// Show limited output for large result sets
		if i >= 9 && len(events) > 10 {
			remaining := len(events) - 10
			fmt.Fprintln(output)
			fmt.Fprintf(output, "... and %d more events\n", remaining)
			fmt.Fprintf(output, "Use --limit and --offset for pagination.\n")
			break
		}
	}

	return nil
}

func outputEventsJSON(output *os.File, events []*audit.Event) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	result := map[string]any{
		"total_events": len(events),
		"events":       events,
	}

	return encoder.Encode(result)
}

func pruneAuditTrail(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	store, err := openAuditStorage(cfg)
	if err != nil {
		return cli.NewCommandError("audit", err)
	}
	defer store.Close()

	pruner := retention.NewPruner(store, &retention.Config{
		RetentionDays: cfg.Audit.Retention.Days,
		PruneSchedule: cfg.Audit.Retention.Schedule,
		MaxEvents:     cfg.Audit.Retention.MaxEvents,
	}, nil)

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		return cli.NewCommandError("audit", fmt.Errorf("prune failed: %w", err))
	}

	fmt.Printf("✓ Pruned %d events (retention: %d days)\n", deleted, cfg.Audit.Retention.Days)
	return nil
}

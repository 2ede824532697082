package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/av-efi/eficonv/internal/config"
	"github.com/av-efi/eficonv/internal/logging"
	"github.com/av-efi/eficonv/internal/schema"
	"github.com/av-efi/eficonv/internal/services"
	"github.com/av-efi/eficonv/internal/tui"
	"github.com/av-efi/eficonv/internal/ui"
	"github.com/av-efi/eficonv/pkg/efi"
)

var checkCmd = &cobra.Command{
	Use:   "check <efi_file>",
	Short: "Sanity check a batch file and optionally remove invalid records",
	Long: `Check every record of EFI_FILE against the AVefi schema and additional rules.

Fatal problems abort the check without touching the file:
  - a record of unknown category
  - a record without identifiers
  - an identifier shared by two records
  - a record that does not conform to the AVefi schema

Repairable violations are reported:
  - titles or notes exceeding the configured length limits
  - malformed has_date values
  - agents, places, genres or subjects without a name
  - references to local identifiers no record owns
  - works and manifestations without items (disable with --no-dangling)

With --remove-invalid the offending records are removed together with
every record depending on them, and EFI_FILE is rewritten in place after
confirmation.

Configuration is read from efi.yaml in the working directory (or --config)
and EFI_CONV_* environment variables; flags take precedence.

Examples:
  # Report violations, leave the file alone
  eficonv check out/batch.json

  # Remove invalid records without a prompt (CI/CD)
  eficonv check out/batch.json -r --force

  # Machine-readable report
  eficonv check out/batch.json --json`,
	Args:              RequireBatchFile,
	ValidArgsFunction: completeBatchFiles,
	RunE:              runCheck,
}

type checkFlagValues struct {
	removeInvalid bool
	force         bool
	jsonOutput    bool
	noDangling    bool
	noSchema      bool
	schemaFile    string
	schemaRef     string
	configPath    string
}

var checkFlags checkFlagValues

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVarP(&checkFlags.removeInvalid, "remove-invalid", "r", false,
		"Remove invalid records, modifying EFI_FILE in place\n"+
			"Requires interactive confirmation unless --force is used")
	checkCmd.Flags().BoolVar(&checkFlags.force, "force", false,
		"Skip the interactive confirmation before EFI_FILE is rewritten")
	checkCmd.Flags().BoolVar(&checkFlags.jsonOutput, "json", false,
		"Print the check report as JSON to stdout")
	checkCmd.Flags().BoolVar(&checkFlags.noDangling, "no-dangling", false,
		"Do not report works and manifestations without items")

	checkCmd.Flags().StringVar(&checkFlags.schemaFile, "schema", "",
		"AVefi JSON schema file\n"+
			"Precedence: --schema > $EFI_CONV_SCHEMA_FILE > efi.yaml > user cache")
	checkCmd.Flags().StringVar(&checkFlags.schemaRef, "schema-ref", "",
		"JSON pointer of the subschema records are validated against (default: document root)")
	checkCmd.Flags().BoolVar(&checkFlags.noSchema, "no-schema", false,
		"Skip validation against the AVefi schema")
	checkCmd.Flags().StringVar(&checkFlags.configPath, "config", "",
		"Configuration file (default: ./efi.yaml if present)")

	checkCmd.MarkFlagsMutuallyExclusive("no-schema", "schema")
	_ = checkCmd.RegisterFlagCompletionFunc("schema-ref", completeSchemaRefs)
}

func runCheck(cmd *cobra.Command, args []string) error {
	batchPath := args[0]
	verbose := getVerboseFlag(cmd)

	cfg, err := config.Resolve(checkFlags.configPath)
	if err != nil {
		return err
	}
	applyCheckFlags(cmd, cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Batch file: %s\n", batchPath)
		fmt.Fprintf(os.Stderr, "[VERBOSE] Remove invalid: %v\n", checkFlags.removeInvalid)
		fmt.Fprintf(os.Stderr, "[VERBOSE] Limits: line %d, text %d\n", cfg.Limits.Line, cfg.Limits.Text)
		fmt.Fprintf(os.Stderr, "[VERBOSE] Dangling check: %v\n", cfg.DanglingEnabled())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	validator, err := resolveSchemaValidator(cfg, verbose)
	if err != nil {
		return err
	}

	svc := services.NewCheckService(
		selectApprover(verbose, cfg.Countdown()),
		logging.NewConsoleLogger(verbose),
		validator,
	)

	report, err := svc.Check(ctx, efi.CheckConfig{
		BatchPath: batchPath,
		Repair:    checkFlags.removeInvalid,
		Dangling:  cfg.DanglingEnabled(),
		LineLimit: cfg.Limits.Line,
		TextLimit: cfg.Limits.Text,
		Verbose:   verbose,
	})
	if report != nil {
		if printErr := printReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), report, checkFlags.jsonOutput, err == nil); printErr != nil && err == nil {
			err = printErr
		}
	}
	return err
}

// applyCheckFlags lets explicitly set flags override file and environment settings.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("schema") {
		cfg.Schema.File = checkFlags.schemaFile
	}
	if cmd.Flags().Changed("schema-ref") {
		cfg.Schema.Ref = checkFlags.schemaRef
	}
	if checkFlags.noDangling {
		disabled := false
		cfg.Checks.Dangling = &disabled
	}
}

// selectApprover prompts on a terminal unless --force was given.
func selectApprover(verbose bool, countdown time.Duration) efi.Approver {
	if checkFlags.force || !tui.IsInteractive() {
		return ui.NewForcedApprover(verbose, countdown)
	}
	return ui.NewInteractiveApprover(verbose)
}

// resolveSchemaValidator loads the configured schema file.
// Returns a nil validator with --no-schema.
func resolveSchemaValidator(cfg *config.Config, verbose bool) (efi.SchemaValidator, error) {
	if checkFlags.noSchema {
		if verbose {
			fmt.Fprintln(os.Stderr, "[VERBOSE] Schema validation disabled")
		}
		return nil, nil
	}

	path := cfg.Schema.File
	if path == "" {
		return nil, fmt.Errorf("%w: no schema file configured\n\nTip: Use --schema <file>, set %s, or skip with --no-schema",
			efi.ErrInvalidConfig, config.EnvSchemaFile)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Schema: %s%s\n", path, cfg.Schema.Ref)
	}

	v, err := schema.Load(schema.Options{File: path, Ref: cfg.Schema.Ref, URL: cfg.Schema.Source})
	if errors.Is(err, schema.ErrSchemaNotFound) {
		return nil, fmt.Errorf("%w: %w\n\nTip: Download the AVefi schema from %s to %s, or skip with --no-schema",
			efi.ErrInvalidConfig, err, cfg.Schema.Source, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", efi.ErrInvalidConfig, err)
	}
	return v, nil
}

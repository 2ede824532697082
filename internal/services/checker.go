package services

import (
	"context"
	"fmt"

	"github.com/av-efi/eficonv/internal/batchfile"
	"github.com/av-efi/eficonv/internal/check"
	"github.com/av-efi/eficonv/pkg/efi"
)

// CheckService loads a batch file, checks it and, when repair is
// requested and approved, writes the repaired batch back.
// Thread-Safety: safe for concurrent Check() calls on different files.
type CheckService struct {
	approver efi.Approver
	logger   efi.Logger
	schema   efi.SchemaValidator
}

// NewCheckService creates a new CheckService. schema may be nil to skip
// structural validation.
//
// Panics on nil approver or logger: these are wiring errors that should
// fail at startup.
func NewCheckService(approver efi.Approver, logger efi.Logger, schema efi.SchemaValidator) *CheckService {
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &CheckService{
		approver: approver,
		logger:   logger,
		schema:   schema,
	}
}

// Check runs all checks over the batch at config.BatchPath.
//
// Returns the report together with:
//   - nil when the batch passed, or was repaired and written
//   - efi.ErrInvalidRecords when violations were found without repair
//   - efi.ErrApprovalDenied when the rewrite was not approved
//   - fatal record errors from the checker and I/O errors otherwise
func (s *CheckService) Check(ctx context.Context, config efi.CheckConfig) (*check.Report, error) {
	if config.BatchPath == "" {
		return nil, fmt.Errorf("%w: batch path is required", efi.ErrInvalidConfig)
	}

	s.logger.Verbose("Loading %s", config.BatchPath)
	file, err := batchfile.Load(config.BatchPath)
	if err != nil {
		return nil, err
	}
	s.logger.Verbose("Loaded %d records (checksum %s)", len(file.Batch), file.Checksum[:12])

	checker := check.New(s.checkerOptions(config)...)
	report, err := checker.Run(&file.Batch)
	if err != nil {
		return nil, err
	}
	s.logger.Verbose("Run %s: %d violations, %d removals", report.RunID, len(report.Violations), len(report.Removed))

	if report.Passed() {
		s.logger.Info("All %d records passed the checks successfully", report.Total)
		return report, nil
	}

	if !config.Repair {
		s.logger.Error("Found %d violations (no action taken)", len(report.Violations))
		return report, fmt.Errorf("%w: %d violations in %s", efi.ErrInvalidRecords, len(report.Violations), config.BatchPath)
	}

	if err := s.save(ctx, file, report); err != nil {
		return report, err
	}
	s.logger.Info("Successfully removed %d invalid records", len(report.Removed))
	return report, nil
}

func (s *CheckService) checkerOptions(config efi.CheckConfig) []check.Option {
	opts := []check.Option{
		check.WithRepair(config.Repair),
		check.WithDanglingCheck(config.Dangling),
		check.WithLimits(check.Limits{Line: config.LineLimit, Text: config.TextLimit}),
		check.WithLogger(s.logger),
	}
	if s.schema != nil {
		opts = append(opts, check.WithSchemaValidator(s.schema))
	}
	return opts
}

func (s *CheckService) save(ctx context.Context, file *batchfile.File, report *check.Report) error {
	approved, err := s.approver.RequestApproval(ctx, file.Path, len(report.Removed))
	if err != nil {
		return fmt.Errorf("approval failed: %w", err)
	}
	if !approved {
		return fmt.Errorf("%w: %s left unchanged", efi.ErrApprovalDenied, file.Path)
	}

	written, err := file.Save(file.Batch)
	if err != nil {
		return err
	}
	if written {
		s.logger.Verbose("Wrote %d records to %s", len(file.Batch), file.Path)
	}
	return nil
}

package check

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/av-efi/eficonv/internal/logging"
	"github.com/av-efi/eficonv/pkg/efi"
)

// Checker validates batches. A Checker holds only immutable options and
// may be shared between goroutines.
type Checker struct {
	repair   bool
	dangling bool
	limits   Limits
	schema   efi.SchemaValidator
	logger   efi.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithRepair removes offending records instead of only reporting them.
func WithRepair(repair bool) Option {
	return func(c *Checker) { c.repair = repair }
}

// WithDanglingCheck toggles detection of Works and Manifestations that no
// record depends on. Enabled by default.
func WithDanglingCheck(enabled bool) Option {
	return func(c *Checker) { c.dangling = enabled }
}

// WithLimits overrides the text length limits. Zero fields keep defaults.
func WithLimits(limits Limits) Option {
	return func(c *Checker) { c.limits = limits.withDefaults() }
}

// WithSchemaValidator validates every record structurally before any
// other check.
func WithSchemaValidator(v efi.SchemaValidator) Option {
	return func(c *Checker) { c.schema = v }
}

// WithLogger reports violations and removals through logger.
func WithLogger(logger efi.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Checker with dangling detection on, repair off and the
// default limits.
func New(opts ...Option) *Checker {
	c := &Checker{
		dangling: true,
		limits:   DefaultLimits(),
		logger:   logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PassChecks runs all checks over batch with default options and reports
// whether no violation was found. With repair set, offending records are
// removed from batch.
func PassChecks(batch *efi.Batch, repair bool) (bool, error) {
	report, err := New(WithRepair(repair)).Run(batch)
	if err != nil {
		return false, err
	}
	return report.Passed(), nil
}

// Run checks batch and returns what was found. Fatal problems (unknown
// record kinds, missing or duplicate identifiers, schema violations) are
// returned as errors before batch is touched. In repair mode batch is
// compacted in place after all checks have run.
func (c *Checker) Run(batch *efi.Batch) (*Report, error) {
	r := &run{
		Checker: c,
		batch:   *batch,
		removed: make([]bool, len(*batch)),
		report: &Report{
			RunID:      uuid.New(),
			Total:      len(*batch),
			Repair:     c.repair,
			Violations: []Violation{},
			Removed:    []Removal{},
		},
	}

	if err := r.preflight(); err != nil {
		return nil, err
	}

	r.checkFields()

	if err := r.buildGraph(); err != nil {
		return nil, err
	}

	r.checkReferences()

	if c.dangling {
		r.checkDangling()
	}

	if c.repair && len(r.report.Removed) > 0 {
		*batch = r.compact()
	}

	return r.report, nil
}

// run is the state of one Checker.Run call. Records are addressed by their
// slot in the original batch; removal only sets a flag until compact.
type run struct {
	*Checker
	batch   efi.Batch
	removed []bool
	index   *IdentityIndex
	graph   *ReferenceGraph
	report  *Report
}

func (r *run) isRemoved(slot int) bool {
	return r.removed[slot]
}

func (r *run) preflight() error {
	for slot, rec := range r.batch {
		if rec == nil || !rec.Kind.IsValid() {
			kind := efi.KindUnknown
			if rec != nil {
				kind = rec.Kind
			}
			return &efi.ModelError{Slot: slot, Kind: kind}
		}
		if len(rec.HasIdentifier) == 0 {
			return &efi.MissingIdentifierError{Slot: slot, Kind: rec.Kind}
		}
		if r.schema != nil {
			if err := r.schema.ValidateRecord(rec); err != nil {
				return &efi.SchemaError{Slot: slot, Record: rec.PrimaryIdentifier(), Err: err}
			}
		}
	}

	// Uniqueness holds over the whole batch, including records that field
	// checks will remove.
	if _, err := BuildIdentityIndex(r.batch, nil); err != nil {
		return err
	}
	return nil
}

func (r *run) checkFields() {
	for slot, rec := range r.batch {
		found := ValidateFields(rec, r.limits)
		for _, v := range found {
			r.violation(v)
		}
		if len(found) > 0 && r.repair {
			r.remove(slot, RemovedInvalidFields, nil)
		}
	}
}

func (r *run) buildGraph() error {
	index, err := BuildIdentityIndex(r.batch, r.isRemoved)
	if err != nil {
		return err
	}
	graph, err := BuildReferenceGraph(r.batch, r.isRemoved)
	if err != nil {
		return err
	}
	r.index = index
	r.graph = graph
	return nil
}

// checkReferences reports every local identifier that is referenced but
// owned by no record. Missing targets are collected before any purge so
// that identifiers removed by the purge are not reported again.
func (r *run) checkReferences() {
	var missing []efi.Identifier
	for _, target := range r.graph.Targets() {
		if target.IsLocal() && !r.index.Contains(target) {
			missing = append(missing, target)
		}
	}

	for _, target := range missing {
		first := r.batch[r.graph.Dependents(target)[0]]
		t := target
		r.violation(Violation{
			Kind:       ViolationUnresolvableReference,
			Record:     first.PrimaryIdentifier(),
			RecordKind: first.Kind,
			Target:     &t,
			Message:    fmt.Sprintf("Unresolvable reference: %s", target.ID),
		})
	}

	if r.repair && len(missing) > 0 {
		r.purgeDependents(missing)
	}
}

// purgeDependents removes every live record referring to one of queue and
// repeats for the identifiers of each removed record until the queue
// drains.
func (r *run) purgeDependents(queue []efi.Identifier) {
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, slot := range r.graph.Dependents(id) {
			if r.removed[slot] {
				continue
			}
			cause := id
			r.remove(slot, RemovedUnresolvable, &cause)
			ids := r.batch[slot].HasIdentifier
			r.index.Remove(ids)
			queue = append(queue, ids...)
		}
	}
}

// checkDangling reports Works and Manifestations nothing depends on. The
// set is determined before any removal so that reporting does not depend
// on batch order; parents left without dependents by the repair are
// removed as well but not reported.
func (r *run) checkDangling() {
	var dangling []int
	for slot := range r.batch {
		if !r.removed[slot] && r.isDangling(slot) {
			dangling = append(dangling, slot)
		}
	}

	for _, slot := range dangling {
		rec := r.batch[slot]
		r.violation(Violation{
			Kind:       ViolationDanglingRecord,
			Record:     rec.PrimaryIdentifier(),
			RecordKind: rec.Kind,
			Message:    fmt.Sprintf("No items associated with %s %s", rec.Kind, rec.PrimaryIdentifier().ID),
		})
	}

	if !r.repair {
		return
	}
	var queue []efi.Identifier
	for _, slot := range dangling {
		queue = append(queue, r.removeDangling(slot)...)
	}
	r.purgeDangling(queue)
}

// purgeDangling re-examines the owners of the queued identifiers and
// removes those that became dangling.
func (r *run) purgeDangling(queue []efi.Identifier) {
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		slot, _, ok := r.index.Lookup(id)
		if !ok || r.removed[slot] || !r.isDangling(slot) {
			continue
		}
		queue = append(queue, r.removeDangling(slot)...)
	}
}

// removeDangling removes slot and returns the targets of its outgoing
// references.
func (r *run) removeDangling(slot int) []efi.Identifier {
	if r.removed[slot] {
		return nil
	}
	rec := r.batch[slot]
	r.remove(slot, RemovedDangling, nil)
	r.index.Remove(rec.HasIdentifier)

	var targets []efi.Identifier
	attrs, _ := efi.ReferenceAttributes(rec.Kind)
	for _, attr := range attrs {
		targets = append(targets, rec.References(attr)...)
	}
	return targets
}

func (r *run) isDangling(slot int) bool {
	rec := r.batch[slot]
	if rec.Kind == efi.KindItem {
		return false
	}
	for _, id := range rec.HasIdentifier {
		if !id.IsLocal() {
			return false
		}
		for _, dep := range r.graph.Dependents(id) {
			if dep != slot && !r.removed[dep] {
				return false
			}
		}
	}
	return true
}

func (r *run) violation(v Violation) {
	r.report.Violations = append(r.report.Violations, v)
	r.logger.Error("%s", v.Message)
}

func (r *run) remove(slot int, reason RemovalReason, cause *efi.Identifier) {
	rec := r.batch[slot]
	r.removed[slot] = true
	r.report.Removed = append(r.report.Removed, Removal{
		Record:     rec.PrimaryIdentifier(),
		RecordKind: rec.Kind,
		Reason:     reason,
		Cause:      cause,
	})
	if cause != nil {
		r.logger.Verbose("Removing %s (%s: %s)", rec.Label(), reason, cause.ID)
	} else {
		r.logger.Verbose("Removing %s (%s)", rec.Label(), reason)
	}
}

func (r *run) compact() efi.Batch {
	kept := r.batch[:0:0]
	for slot, rec := range r.batch {
		if !r.removed[slot] {
			kept = append(kept, rec)
		}
	}
	return kept
}

// danglingAt reports whether the record at slot is a Work or Manifestation
// with only local identifiers that no other record in batch refers to.
func danglingAt(batch efi.Batch, slot int) (bool, error) {
	if slot < 0 || slot >= len(batch) {
		return false, fmt.Errorf("slot %d out of range [0, %d)", slot, len(batch))
	}
	graph, err := BuildReferenceGraph(batch, nil)
	if err != nil {
		return false, err
	}
	r := &run{batch: batch, removed: make([]bool, len(batch)), graph: graph}
	return r.isDangling(slot), nil
}

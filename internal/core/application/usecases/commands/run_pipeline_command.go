package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRunPipelineCommandIsNotConstructed = errors.New(
	"RunPipelineCommand must be created via NewRunPipelineCommand constructor",
)

// Mode is how a run was started.
type Mode int

const (
	UnknownMode Mode = iota
	// Automatic runs are scheduled and cap the rows fetched per location.
	Automatic
	// Manual runs are operator-triggered, usually for an explicit order list.
	Manual
)

func (m Mode) String() string {
	switch m {
	case Automatic:
		return "automatic"
	case Manual:
		return "manual"
	default:
		return "unknown"
	}
}

// ParseMode accepts "automatic" and "manual".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "automatic", "auto":
		return Automatic, nil
	case "manual":
		return Manual, nil
	default:
		return UnknownMode, errs.NewValueIsInvalidErrorWithCause("mode", fmt.Errorf("%q is not a run mode", s))
	}
}

// ReportFormat selects the shape of the run report.
type ReportFormat string

const (
	// FormatFull includes every record, the stage tallies and the batch summary.
	FormatFull ReportFormat = "full"
	// FormatCompact only lists per-order success or failure.
	FormatCompact ReportFormat = "compact"
)

// ParseReportFormat accepts "full" and "compact". Empty selects the mode default.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch ReportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case FormatFull:
		return FormatFull, nil
	case FormatCompact:
		return FormatCompact, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("report format", fmt.Errorf("%q is not a report format", s))
	}
}

// StageFlags is the per-stage enable bit vector of a run. Seeding always runs.
type StageFlags uint16

const (
	FlagBooking StageFlags = 1 << iota
	FlagBatch
	FlagAssets
	FlagLabels
	FlagPersonalization
	FlagPackingSlip
	FlagMessageCard
	FlagReconciliation
	FlagNotification
	FlagAudit

	flagCount = iota
)

// AllStages enables every stage.
const AllStages StageFlags = 1<<flagCount - 1

// ParseStageFlags reads a string of '0' and '1' characters, one per stage in the order
// booking, batch, assets, labels, personalization, packing-slip, message-card,
// reconciliation, notification, audit.
func ParseStageFlags(bits string) (StageFlags, error) {
	bits = strings.TrimSpace(bits)
	if len(bits) != flagCount {
		return 0, errs.NewValueIsOutOfRangeError("stage flags length", len(bits), flagCount, flagCount)
	}

	var flags StageFlags
	for i, c := range bits {
		switch c {
		case '1':
			flags |= 1 << i
		case '0':
		default:
			return 0, errs.NewValueIsInvalidErrorWithCause("stage flags", fmt.Errorf("%q at position %d", c, i))
		}
	}
	return flags, nil
}

// Has reports whether every stage in f2 is enabled.
func (f StageFlags) Has(f2 StageFlags) bool {
	return f&f2 == f2
}

// String renders the flags in the ParseStageFlags form.
func (f StageFlags) String() string {
	var b strings.Builder
	for i := range flagCount {
		if f.Has(1 << i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// RunParams are the inputs of one pipeline run.
type RunParams struct {
	DeliveryDate kernel.DeliveryDate
	DeliveryType kernel.DeliveryType
	StoreTag     string
	Locations    []string
	OrderIDs     []string
	Mode         Mode
	Stages       StageFlags
	Format       ReportFormat
}

// RunPipelineCommand starts one fulfillment run for a (date, delivery type) lane.
//
// Example:
//
//	cmd, err := NewRunPipelineCommand(RunParams{
//	    DeliveryDate: date,
//	    DeliveryType: kernel.SameDay,
//	    Mode:         Automatic,
//	    Stages:       AllStages,
//	})
//	if err != nil {
//	    return err
//	}
//	report, _ := handler.Handle(ctx, cmd)
type RunPipelineCommand struct { //nolint:recvcheck //using for validation
	params RunParams
	guard  guard.ConstructorGuard
}

// NewRunPipelineCommand validates params. An empty format defaults to full for automatic
// runs and compact for manual runs.
func NewRunPipelineCommand(params RunParams) (RunPipelineCommand, error) {
	cmd := RunPipelineCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setDeliveryDate(params.DeliveryDate),
		cmd.setDeliveryType(params.DeliveryType),
		cmd.setMode(params.Mode),
		cmd.setStages(params.Stages),
		cmd.setFormat(params.Format, params.Mode),
	); err != nil {
		return RunPipelineCommand{}, err
	}

	cmd.params.StoreTag = strings.TrimSpace(params.StoreTag)
	cmd.params.Locations = cleanList(params.Locations)
	cmd.params.OrderIDs = cleanList(params.OrderIDs)
	return cmd, nil
}

func (c RunPipelineCommand) Validate() error {
	return c.guard.Validate(ErrRunPipelineCommandIsNotConstructed)
}

func (c *RunPipelineCommand) setDeliveryDate(d kernel.DeliveryDate) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.params.DeliveryDate = d
	return nil
}

func (c *RunPipelineCommand) setDeliveryType(t kernel.DeliveryType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.params.DeliveryType = t
	return nil
}

func (c *RunPipelineCommand) setMode(m Mode) error {
	if m != Automatic && m != Manual {
		return errs.NewValueIsInvalidErrorWithCause("mode", fmt.Errorf("%d is not a run mode", m))
	}
	c.params.Mode = m
	return nil
}

func (c *RunPipelineCommand) setStages(f StageFlags) error {
	if f&^AllStages != 0 {
		return errs.NewValueIsOutOfRangeError("stage flags", uint16(f), 0, uint16(AllStages))
	}
	c.params.Stages = f
	return nil
}

func (c *RunPipelineCommand) setFormat(f ReportFormat, m Mode) error {
	switch f {
	case FormatFull, FormatCompact:
		c.params.Format = f
	case "":
		c.params.Format = FormatFull
		if m == Manual {
			c.params.Format = FormatCompact
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause("report format", fmt.Errorf("%q is not a report format", f))
	}
	return nil
}

func (c RunPipelineCommand) DeliveryDate() kernel.DeliveryDate {
	return c.params.DeliveryDate
}

func (c RunPipelineCommand) DeliveryType() kernel.DeliveryType {
	return c.params.DeliveryType
}

func (c RunPipelineCommand) StoreTag() string {
	return c.params.StoreTag
}

func (c RunPipelineCommand) Locations() []string {
	return append([]string(nil), c.params.Locations...)
}

func (c RunPipelineCommand) OrderIDs() []string {
	return append([]string(nil), c.params.OrderIDs...)
}

func (c RunPipelineCommand) Mode() Mode {
	return c.params.Mode
}

func (c RunPipelineCommand) Stages() StageFlags {
	return c.params.Stages
}

func (c RunPipelineCommand) Format() ReportFormat {
	return c.params.Format
}

func cleanList(in []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

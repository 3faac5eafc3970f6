package tracking

// SkipReason explains a Skipped record.
type SkipReason string

const (
	SkipNone               SkipReason = ""
	SkipFlagOff            SkipReason = "flag-off"
	SkipCutoff             SkipReason = "cutoff"
	SkipCarrierUnavailable SkipReason = "carrier-unavailable"
	SkipMissingLocation    SkipReason = "missing-location"
)

// ReconciliationStatus is the downstream routing decision for a record.
type ReconciliationStatus string

const (
	ReconciliationPending ReconciliationStatus = ""
	Processed             ReconciliationStatus = "Processed"
	Hold                  ReconciliationStatus = "Hold"
)

package domain

// DQSeverity is the severity of a single data-quality issue (distinct from
// Alert Severity, which is a 4-level traffic light; DQ issues are 3-level).
type DQSeverity string

const (
	DQInfo    DQSeverity = "Info"
	DQWarning DQSeverity = "Warning"
	DQError   DQSeverity = "Error"
)

// DQSource names which input the issue was found in.
type DQSource string

const (
	DQSourcePosition DQSource = "position"
	DQSourceMarket   DQSource = "market"
	DQSourceCurve    DQSource = "curve"
)

// DataQualityIssue is one finding from the DQ rule table (C2). The
// evaluator never raises; it only appends issues.
type DataQualityIssue struct {
	ID         string
	Code       string // e.g. "DQ-01"
	Severity   DQSeverity
	Source     DQSource
	Reference  string // instrument_id or snapshot_id
	DetectedAt int64  // unix seconds, supplied by caller
}

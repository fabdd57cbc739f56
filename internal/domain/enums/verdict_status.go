package enums

type VerdictStatus string

const (
	VerdictStatusSafe    VerdictStatus = "safe"
	VerdictStatusFlagged VerdictStatus = "flagged"
	VerdictStatusSkipped VerdictStatus = "skipped"
)

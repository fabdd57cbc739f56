package enums

type ContentStatus string

const (
	ContentStatusApproved ContentStatus = "approved"
	ContentStatusFlagged  ContentStatus = "flagged"
)

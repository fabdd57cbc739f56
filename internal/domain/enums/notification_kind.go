package enums

type NotificationKind string

const (
	NotificationKindContentFlagged NotificationKind = "content_flagged"
	NotificationKindThreadReply    NotificationKind = "thread_reply"
)

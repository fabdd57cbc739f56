package enums

type ContentType string

const (
	ContentTypeThread ContentType = "thread"
	ContentTypeReply  ContentType = "reply"
)

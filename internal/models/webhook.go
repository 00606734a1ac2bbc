package models

// WebhookPayload is the body the Messenger platform posts to the event webhook.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

// WebhookEntry groups the messaging events of one page delivery.
type WebhookEntry struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEvent `json:"messaging"`
}

// MessagingEvent is one inbound event: a text message, quick reply or postback.
type MessagingEvent struct {
	Sender    Participant `json:"sender"`
	Recipient Participant `json:"recipient"`
	Timestamp int64       `json:"timestamp"`
	Message   *Message    `json:"message,omitempty"`
	Postback  *Postback   `json:"postback,omitempty"`
}

// Participant identifies a chat party by its page-scoped ID.
type Participant struct {
	ID string `json:"id"`
}

// Message carries free text and, when a suggested chip was tapped, its payload.
type Message struct {
	MID        string            `json:"mid,omitempty"`
	Text       string            `json:"text,omitempty"`
	IsEcho     bool              `json:"is_echo,omitempty"`
	QuickReply *QuickReplyAnswer `json:"quick_reply,omitempty"`
}

// QuickReplyAnswer is the payload of a tapped quick-reply chip.
type QuickReplyAnswer struct {
	Payload string `json:"payload"`
}

// Postback is a button click event with a fixed payload string.
type Postback struct {
	Title   string `json:"title,omitempty"`
	Payload string `json:"payload"`
}

// SendRequest is the body posted to the platform send API.
type SendRequest struct {
	Recipient Participant `json:"recipient"`
	Message   SendMessage `json:"message"`
}

// SendMessage is the outbound message content.
type SendMessage struct {
	Text         string       `json:"text"`
	QuickReplies []QuickReply `json:"quick_replies,omitempty"`
}

// QuickReply is a suggested-reply chip offered alongside an outbound message.
type QuickReply struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Payload     string `json:"payload"`
}

// TextQuickReply builds a standard text chip.
func TextQuickReply(title, payload string) QuickReply {
	return QuickReply{ContentType: "text", Title: title, Payload: payload}
}

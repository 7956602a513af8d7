package entity

// Record is the flat webhook payload built from one InboundEvent. It is
// constructed fresh per event and discarded once the delivery attempt
// finishes. Nil pointers marshal as JSON null.
type Record struct {
	MessageID int64        `json:"message_id"`
	Text      *string      `json:"text"`
	Date      string       `json:"date"`
	Outgoing  bool         `json:"outgoing"`
	Chat      ChatRecord   `json:"chat"`
	Sender    SenderRecord `json:"sender"`
}

type ChatRecord struct {
	ID        *int64  `json:"id"`
	Title     *string `json:"title"`
	IsUser    bool    `json:"is_user"`
	IsGroup   bool    `json:"is_group"`
	IsChannel bool    `json:"is_channel"`
}

type SenderRecord struct {
	ID        *int64  `json:"id"`
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	IsSelf    bool    `json:"is_self"`
	Photo     *string `json:"photo"`
}

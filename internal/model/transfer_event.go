package model

// TransferEvent is a normalized "transaction processed" log record.
type TransferEvent struct {
	Origin    string `json:"origin"`
	Recipient string `json:"recipient"`
}

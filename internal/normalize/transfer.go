package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"rewardscope/internal/model"
)

type transferPayload struct {
	Transaction *string `json:"transaction"`
}

// Transfer converts an extracted "transaction processed" payload into a
// TransferEvent.
//
// The node prints the transaction as free text rather than JSON, e.g.
// "id 1, from 0xAAA, to 0xBBB". The text is split on ", " and the second
// word of the second and third items are taken as origin and recipient.
// This is positional and breaks if the node changes the description layout.
func Transfer(payload string) (model.TransferEvent, error) {
	var data transferPayload
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return model.TransferEvent{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if data.Transaction == nil {
		return model.TransferEvent{}, fmt.Errorf("%w: missing transaction", ErrMalformedPayload)
	}

	items := strings.Split(*data.Transaction, ", ")
	if len(items) < 3 {
		return model.TransferEvent{}, fmt.Errorf("%w: transaction has %d items, want at least 3", ErrMalformedPayload, len(items))
	}

	origin, err := secondWord(items[1])
	if err != nil {
		return model.TransferEvent{}, fmt.Errorf("%w: origin: %v", ErrMalformedPayload, err)
	}
	recipient, err := secondWord(items[2])
	if err != nil {
		return model.TransferEvent{}, fmt.Errorf("%w: recipient: %v", ErrMalformedPayload, err)
	}

	return model.TransferEvent{Origin: origin, Recipient: recipient}, nil
}

func secondWord(item string) (string, error) {
	words := strings.Split(item, " ")
	if len(words) < 2 || words[1] == "" {
		return "", fmt.Errorf("no account in %q", item)
	}
	return words[1], nil
}

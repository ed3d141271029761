package normalize

import "strings"

// DefaultBurnAccount is the account the node logs for rewards with no recipient.
const DefaultBurnAccount = "0x00000"

// AccountSet is a set of exact account keys.
type AccountSet map[string]struct{}

func NewAccountSet(accounts ...string) AccountSet {
	set := make(AccountSet, len(accounts))
	for _, account := range accounts {
		account = strings.TrimSpace(account)
		if account == "" {
			continue
		}
		set[account] = struct{}{}
	}
	return set
}

func (s AccountSet) Contains(account string) bool {
	if s == nil {
		return false
	}
	_, ok := s[account]
	return ok
}

package logline

import "strings"

const (
	RewardMarker   = "Reward applied"
	TransferMarker = "transaction processed"
)

// IsRewardLine reports whether the line carries a reward event.
func IsRewardLine(line string) bool {
	return strings.Contains(line, RewardMarker)
}

// IsTransferLine reports whether the line carries a processed transaction.
func IsTransferLine(line string) bool {
	return strings.Contains(line, TransferMarker)
}

package domain

// DailyRewardBase is the per-streak-step reward in whole dollars: the k-th
// claim pays streak * DailyRewardBase.
const DailyRewardBase = 100

// DailyRewardState is the streak bookkeeping for the daily bonus.
// LastClaimDay is empty when no claim has ever been made; Streak starts
// at 1, so the first claim pays 100.
type DailyRewardState struct {
	LastClaimDay string `json:"last_claim_day"`
	Streak       int    `json:"streak"`
}

// Reward is the amount the next successful claim pays at the current streak.
func (s DailyRewardState) Reward() Cents {
	return Dollars(s.Streak * DailyRewardBase)
}

// ClaimResult is the outcome of a successful daily claim.
type ClaimResult struct {
	Reward    Cents `json:"reward"`
	NewStreak int   `json:"new_streak"`
}

// DailyStatus is the read-only view of the daily reward for a given day.
type DailyStatus struct {
	Claimable  bool  `json:"claimable"`
	NextReward Cents `json:"next_reward"`
	Streak     int   `json:"streak"`
}

// Package fees implements the pure fee arithmetic shared by the completion
// and cancellation paths.
package fees

// Split is the exact division of a pot between winner, client, and platform.
// WinnerPayout + ClientFee + PlatformFee always equals the pot.
type Split struct {
	WinnerPayout int64
	ClientFee    int64
	PlatformFee  int64
}

// cut computes floor(amount * bps / 10000) without intermediate overflow
// for any non-negative amount.
func cut(amount int64, bps uint16) int64 {
	q, r := amount/10000, amount%10000
	return q*int64(bps) + r*int64(bps)/10000
}

// Compute splits a pot by the two basis-point rates. Both fees are floored,
// so the winner absorbs any rounding remainder. This is a fixed rule: fee
// recipients never profit from rounding.
func Compute(pot int64, clientBps, platformBps uint16) Split {
	clientFee := cut(pot, clientBps)
	platformFee := cut(pot, platformBps)
	return Split{
		WinnerPayout: pot - clientFee - platformFee,
		ClientFee:    clientFee,
		PlatformFee:  platformFee,
	}
}

// TieSplit divides the winner's payout between both players on a tie.
// Player1 absorbs the odd unit so the division is exact.
func TieSplit(winnerPayout int64) (player1, player2 int64) {
	player2 = winnerPayout / 2
	player1 = winnerPayout - player2
	return player1, player2
}

// Cancellation computes the refund for a cancelled game: the client keeps
// its cut of the single deposited stake, the platform collects nothing since
// no outcome occurred.
func Cancellation(stake int64, clientBps uint16) (refund, clientFee int64) {
	clientFee = cut(stake, clientBps)
	return stake - clientFee, clientFee
}

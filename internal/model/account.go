package model

import "fmt"

// AccountID identifies a value-custody account
type AccountID string

// VaultAccount is the pooled custody account holding every in-flight stake.
// Its balance must equal the sum of stakes of games in PhaseCreated or
// PhaseJoined at all times.
const VaultAccount AccountID = "acct:vault"

// Account is a value-custody balance in the manager's denomination
type Account struct {
	ID      AccountID
	Balance int64
}

// PlayerAccount derives the custody account for a username
func PlayerAccount(username Username) AccountID {
	return AccountID(fmt.Sprintf("acct:player:%s", username))
}

// ClientFeeAccount derives the fee account for a game client
func ClientFeeAccount(id ClientID) AccountID {
	return AccountID(fmt.Sprintf("acct:client:%s", id))
}

package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		pterm.Error.Println(err.Error())
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		pterm.Success.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case RegisteredClient:
		o.printRegisteredClient(v)
	case Player:
		o.printPlayer(v)
	case Account:
		o.printAccount(v)
	case Game:
		o.printGame(v)
	case CompleteResult:
		o.printCompleteResult(v)
	case CancelResult:
		o.printCancelResult(v)
	case PlayerStats:
		o.printPlayerStats(v)
	case CommitResult:
		o.printCommitResult(v)
	case ProofResult:
		o.printProofResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AuthResult is the login response (matches API)
type AuthResult struct {
	ClientID     string    `json:"client_id"`
	ClientName   string    `json:"client_name"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// RegisteredClient is the client registration response. The signer key is
// shown exactly once and cannot be recovered from the server.
type RegisteredClient struct {
	ClientID   string `json:"client_id"`
	Name       string `json:"name"`
	SignerKey  string `json:"signer_key"`
	FeeAccount string `json:"fee_account"`
}

// Player response type
type Player struct {
	Username       string    `json:"username"`
	ClientID       string    `json:"client_id"`
	CustodyAccount string    `json:"custody_account"`
	CreatedAt      time.Time `json:"created_at"`
}

// Account response type
type Account struct {
	ID      string `json:"id"`
	Balance int64  `json:"balance"`
}

// Game response type
type Game struct {
	GameID        uint64    `json:"game_id"`
	GameType      string    `json:"game_type"`
	Phase         string    `json:"phase"`
	Player1       string    `json:"player1"`
	Player2       string    `json:"player2,omitempty"`
	Stake         int64     `json:"stake"`
	Commitment    []byte    `json:"commitment"`
	Player2Choice *uint8    `json:"player2_choice,omitempty"`
	Player1Choice *uint8    `json:"player1_choice,omitempty"`
	Result        string    `json:"result,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Settlement response type
type Settlement struct {
	Result        string `json:"result"`
	Pot           int64  `json:"pot"`
	Player1Payout int64  `json:"player1_payout"`
	Player2Payout int64  `json:"player2_payout"`
	ClientFee     int64  `json:"client_fee"`
	PlatformFee   int64  `json:"platform_fee"`
}

// CompleteResult response type
type CompleteResult struct {
	Game       Game       `json:"game"`
	Settlement Settlement `json:"settlement"`
}

// Refund response type
type Refund struct {
	Amount    int64 `json:"amount"`
	ClientFee int64 `json:"client_fee"`
}

// CancelResult response type
type CancelResult struct {
	Game   Game   `json:"game"`
	Refund Refund `json:"refund"`
}

// PlayerStats response type
type PlayerStats struct {
	Username     string   `json:"username"`
	GameType     string   `json:"game_type"`
	TotalGames   uint64   `json:"total_games"`
	TotalWins    uint64   `json:"total_wins"`
	TotalLosses  uint64   `json:"total_losses"`
	TotalDraws   uint64   `json:"total_draws"`
	TotalChoices []uint64 `json:"total_choices"`
}

// CommitResult is produced locally by the commit helper; nothing in it has
// touched the server except what the caller chooses to send.
type CommitResult struct {
	ClientID   string `json:"client_id"`
	GameID     uint64 `json:"game_id"`
	Choice     uint8  `json:"choice"`
	Commitment []byte `json:"commitment"`
	SecretFile string `json:"secret_file"`
}

// ProofResult is produced locally by the prove helper
type ProofResult struct {
	ClientID string `json:"client_id"`
	GameID   uint64 `json:"game_id"`
	Choice   uint8  `json:"choice"`
	Proof    []byte `json:"proof"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthResult(a AuthResult) {
	pterm.Success.Printfln("Logged in as %s (%s)", a.ClientName, a.ClientID)
	pterm.Info.Printfln("Session expires at %s", a.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printRegisteredClient(c RegisteredClient) {
	pterm.Success.Printfln("Registered game client %s (%s)", c.Name, c.ClientID)
	pterm.Printfln("Fee account: %s", c.FeeAccount)
	pterm.DefaultBox.WithTitle("SIGNER KEY (shown once)").Println(c.SignerKey)
}

func (o *Output) printPlayer(p Player) {
	pterm.Printfln("Player: %s", p.Username)
	pterm.Printfln("Client: %s", p.ClientID)
	pterm.Printfln("Custody account: %s", p.CustodyAccount)
	pterm.Printfln("Created: %s", p.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printAccount(a Account) {
	pterm.Printfln("Account: %s", a.ID)
	pterm.Printfln("Balance: %d", a.Balance)
}

func (o *Output) printGame(g Game) {
	lines := pterm.Sprintfln("Type: %s", g.GameType)
	lines += pterm.Sprintfln("Phase: %s", g.Phase)
	lines += pterm.Sprintfln("Stake: %d", g.Stake)
	lines += pterm.Sprintfln("Player 1: %s", g.Player1)
	if g.Player2 != "" {
		lines += pterm.Sprintfln("Player 2: %s", g.Player2)
	}
	if g.Player2Choice != nil {
		lines += pterm.Sprintfln("Player 2 choice: %d", *g.Player2Choice)
	}
	if g.Player1Choice != nil {
		lines += pterm.Sprintfln("Player 1 choice: %d", *g.Player1Choice)
	}
	if g.Result != "" {
		lines += pterm.Sprintfln("Result: %s", g.Result)
	}
	lines += pterm.Sprintf("Commitment: %s", base64.StdEncoding.EncodeToString(g.Commitment))
	title := pterm.Sprintf("GAME %d", g.GameID)
	pterm.DefaultBox.WithTitle(title).Println(lines)
}

func (o *Output) printSettlement(s Settlement) {
	lines := pterm.Sprintfln("Result: %s", s.Result)
	lines += pterm.Sprintfln("Pot: %d", s.Pot)
	lines += pterm.Sprintfln("Player 1 payout: %d", s.Player1Payout)
	lines += pterm.Sprintfln("Player 2 payout: %d", s.Player2Payout)
	lines += pterm.Sprintfln("Client fee: %d", s.ClientFee)
	lines += pterm.Sprintf("Platform fee: %d", s.PlatformFee)
	pterm.DefaultBox.WithTitle("SETTLEMENT").Println(lines)
}

func (o *Output) printCompleteResult(c CompleteResult) {
	o.printGame(c.Game)
	o.printSettlement(c.Settlement)
}

func (o *Output) printCancelResult(c CancelResult) {
	o.printGame(c.Game)
	lines := pterm.Sprintfln("Refunded: %d", c.Refund.Amount)
	lines += pterm.Sprintf("Client fee: %d", c.Refund.ClientFee)
	pterm.DefaultBox.WithTitle("REFUND").Println(lines)
}

func (o *Output) printPlayerStats(s PlayerStats) {
	pterm.Printfln("Stats for %s (%s):", s.Username, s.GameType)
	pterm.Printfln("  Games:  %d", s.TotalGames)
	pterm.Printfln("  Wins:   %d", s.TotalWins)
	pterm.Printfln("  Losses: %d", s.TotalLosses)
	pterm.Printfln("  Draws:  %d", s.TotalDraws)
	for i, n := range s.TotalChoices {
		pterm.Printfln("  Choice %d played %d times", i, n)
	}
}

func (o *Output) printCommitResult(c CommitResult) {
	pterm.Success.Printfln("Committed choice %d for game %d", c.Choice, c.GameID)
	pterm.Printfln("Commitment: %s", base64.StdEncoding.EncodeToString(c.Commitment))
	pterm.Info.Printfln("Secret saved to %s - keep it until the game settles", c.SecretFile)
}

func (o *Output) printProofResult(p ProofResult) {
	pterm.Success.Printfln("Proof for choice %d in game %d", p.Choice, p.GameID)
	pterm.Printfln("Proof: %s", base64.StdEncoding.EncodeToString(p.Proof))
}

func (o *Output) printHealthResult(h HealthResult) {
	pterm.Printfln("Status: %s", h.Status)
}

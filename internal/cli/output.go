package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
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
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case JoinResult:
		o.printJoinResult(v)
	case FightResult:
		o.printFightResult(v)
	case HealResult:
		o.printHealResult(v)
	case Stats:
		o.printStats(v)
	case JoinedResult:
		o.printJoinedResult(v)
	case CiphertextResult:
		o.printCiphertextResult(v)
	case DecryptResult:
		o.printDecryptResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// JoinResult response type
type JoinResult struct {
	PlayerID string    `json:"player_id"`
	Balance  string    `json:"balance_handle"`
	Health   string    `json:"health_handle"`
	JoinedAt time.Time `json:"joined_at"`
}

// Stats response type
type Stats struct {
	Battles   uint64 `json:"battles"`
	Victories uint64 `json:"victories"`
	Heals     uint64 `json:"heals"`
}

// FightResult response type
type FightResult struct {
	Victory bool   `json:"victory"`
	Reward  uint64 `json:"reward"`
	Stats   Stats  `json:"stats"`
}

// HealResult response type
type HealResult struct {
	TotalHeals uint64 `json:"total_heals"`
}

// JoinedResult response type
type JoinedResult struct {
	Joined bool `json:"joined"`
}

// CiphertextResult response type
type CiphertextResult struct {
	Handle string `json:"handle"`
}

// DecryptResult response type
type DecryptResult struct {
	Handle string `json:"handle"`
	Value  uint64 `json:"value"`
}

// HealthResult response type. Server and Latency are filled in
// client-side, not by the API.
type HealthResult struct {
	Status  string `json:"status"`
	Server  string `json:"server,omitempty"`
	Latency string `json:"latency,omitempty"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printJoinResult(j JoinResult) {
	fmt.Println("Joined the arena!")
	fmt.Printf("Balance handle: %s\n", j.Balance)
	fmt.Printf("Health handle: %s\n", j.Health)
}

func (o *Output) printFightResult(f FightResult) {
	if f.Victory {
		fmt.Printf("Victory! You earned %d gold.\n", f.Reward)
	} else {
		fmt.Println("Defeat. The monster got a hit in.")
	}
	fmt.Printf("Battles: %d, Victories: %d\n", f.Stats.Battles, f.Stats.Victories)
}

func (o *Output) printHealResult(h HealResult) {
	fmt.Printf("Heal attempted (total heals: %d)\n", h.TotalHeals)
	fmt.Println("Whether it took effect stays encrypted; decrypt your health to find out.")
}

func (o *Output) printStats(s Stats) {
	fmt.Printf("Battles: %d\n", s.Battles)
	fmt.Printf("Victories: %d\n", s.Victories)
	fmt.Printf("Heals: %d\n", s.Heals)
}

func (o *Output) printJoinedResult(j JoinedResult) {
	if j.Joined {
		fmt.Println("You are in the arena")
	} else {
		fmt.Println("You have not joined the arena")
	}
}

func (o *Output) printCiphertextResult(c CiphertextResult) {
	fmt.Printf("Handle: %s\n", c.Handle)
}

func (o *Output) printDecryptResult(d DecryptResult) {
	fmt.Printf("Handle: %s\n", d.Handle)
	fmt.Printf("Value: %d\n", d.Value)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	if h.Server != "" {
		fmt.Printf("Server: %s\n", h.Server)
	}
	if h.Latency != "" {
		fmt.Printf("Latency: %s\n", h.Latency)
	}
}

package events

import "github.com/radieske/bet-settlement-poc/pkg/contracts/provider"

// Evento publicado no tópico "match_states" a cada snapshot do provedor.
type MatchState struct {
	MatchID  string         `json:"match_id"`
	Payload  provider.Match `json:"payload"`
	Source   string         `json:"source"`
	TsUnixMs int64          `json:"ts_unix_ms"`
}

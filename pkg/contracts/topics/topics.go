package topics

const (
	// Estados de partida vindos do provedor
	MatchStates = "match_states"

	// Liquidação
	BetSettled = "bet_settled"

	// DLQs
	MatchStatesDLQ = "match_states_dlq"
)

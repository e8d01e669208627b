package provider

// Payload bruto de estado de partida entregue pelo provedor de dados.
// O formato segue o feed real: placares por segmento, estatísticas planas
// tipadas por type_id, eventos de gol e lineups com estatísticas por jogador.

// Status terminais reconhecidos. Qualquer outro valor é tratado como
// partida não finalizada.
const (
	StatusNotStarted     = "NS"
	StatusLive           = "LIVE"
	StatusHalfTime       = "HT"
	StatusFullTime       = "FT"
	StatusAfterExtraTime = "AET"
	StatusPenalties      = "FT_PEN"
	StatusCanceled       = "CANCL"
	StatusPostponed      = "POSTP"
)

// Descrições de segmento usadas nas entradas de placar.
// O provedor reporta o placar de forma cumulativa por segmento:
// 1º tempo e *somente* o 2º tempo, nunca um agregado confiável.
const (
	SegmentFirstHalf      = "1ST_HALF"
	SegmentSecondHalfOnly = "2ND_HALF_ONLY"
	SegmentCurrent        = "CURRENT"
)

// Localização dos participantes (mandante primeiro).
const (
	LocationHome = "home"
	LocationAway = "away"
)

// Type ids fixos da lista plana de estatísticas.
const (
	StatTypeCorners       = 34
	StatTypeShotsTotal    = 42
	StatTypeRedCards      = 83
	StatTypeYellowCards   = 84
	StatTypeShotsOnTarget = 86
)

// Type ids de eventos de partida.
const (
	EventTypeGoal        = 14
	EventTypeOwnGoal     = 15
	EventTypePenaltyGoal = 16
	EventTypeYellowCard  = 19
	EventTypeRedCard     = 20
)

// Match é o registro de estado de uma partida como chega do provedor.
type Match struct {
	ID           string        `json:"id"`
	LeagueName   string        `json:"league_name,omitempty"`
	Status       string        `json:"status"`
	Participants []Participant `json:"participants"`
	Scores       []ScoreEntry  `json:"scores"`
	HTScore      string        `json:"ht_score,omitempty"` // campo legado: "1-0"
	Statistics   []StatEntry   `json:"statistics,omitempty"`
	Events       []MatchEvent  `json:"events,omitempty"`
	Lineups      []LineupEntry `json:"lineups,omitempty"`
	Odds         []Odd         `json:"odds,omitempty"`
}

// Finished informa se a partida atingiu um estado terminal.
func (m *Match) Finished() bool {
	switch m.Status {
	case StatusFullTime, StatusAfterExtraTime, StatusPenalties:
		return true
	}
	return false
}

// Participant identifica um dos times da partida.
type Participant struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"` // "home" | "away"
}

// ScoreEntry é um placar parcial de um participante em um segmento.
type ScoreEntry struct {
	ParticipantID int64  `json:"participant_id"`
	Description   string `json:"description"`
	Goals         int    `json:"goals"`
}

// StatEntry é uma estatística da lista plana (escanteios, chutes, cartões...).
type StatEntry struct {
	TypeID        int    `json:"type_id"`
	ParticipantID int64  `json:"participant_id"`
	Location      string `json:"location"`
	Value         int    `json:"value"`
}

// MatchEvent é um evento cronológico da partida (gols, cartões).
type MatchEvent struct {
	TypeID        int    `json:"type_id"`
	ParticipantID int64  `json:"participant_id"`
	PlayerName    string `json:"player_name,omitempty"`
	Minute        int    `json:"minute"`
	ExtraMinute   *int   `json:"extra_minute,omitempty"`
}

// LineupEntry é a entrada de um jogador no lineup, com estatísticas próprias.
type LineupEntry struct {
	ParticipantID int64        `json:"participant_id"`
	PlayerName    string       `json:"player_name"`
	Details       []LineupStat `json:"details,omitempty"`
}

// LineupStat é uma estatística individual de jogador, tipada por type_id.
type LineupStat struct {
	TypeID int `json:"type_id"`
	Value  int `json:"value"`
}

// Odd é uma seleção ofertada pelo provedor para a partida.
// Winning só é preenchido quando o provedor liquida o mercado do lado dele.
type Odd struct {
	ID                int64  `json:"id"`
	MarketID          int    `json:"market_id"`
	MarketDescription string `json:"market_description,omitempty"`
	Label             string `json:"label,omitempty"`
	Name              string `json:"name,omitempty"`
	Total             string `json:"total,omitempty"`
	Handicap          string `json:"handicap,omitempty"`
	Winning           *bool  `json:"winning,omitempty"`
}

package facts

import (
	"sort"
	"strconv"
	"strings"

	"github.com/radieske/bet-settlement-poc/pkg/contracts/provider"
)

// MatchFacts é a visão normalizada de uma partida, derivada do payload bruto
// do provedor. Construído uma vez por partida e somente lido depois disso.
// Campos opcionais ficam nil quando o provedor não enviou o dado — ausência
// não é o mesmo que zero.
type MatchFacts struct {
	MatchID  string
	Finished bool

	HomeID   int64
	AwayID   int64
	HomeName string
	AwayName string

	FullTime   *Score
	HalfTime   *Score
	SecondHalf *Score
	Corners    *SideCount
	Cards      *SideCount

	// Gols em ordem cronológica (minuto + acréscimo)
	Goals []GoalEvent

	Lineup []PlayerLine
	Odds   map[int64]ProviderOdd
}

// Score é um placar home/away.
type Score struct {
	Home int
	Away int
}

// Total retorna a soma dos dois lados.
func (s Score) Total() int { return s.Home + s.Away }

// SideCount é uma contagem por lado (escanteios, cartões).
type SideCount struct {
	Home  int
	Away  int
	Total int
}

// GoalEvent é um gol com autoria e momento.
type GoalEvent struct {
	ParticipantID int64
	PlayerName    string
	Minute        int
	ExtraMinute   int
	OwnGoal       bool
}

// PlayerLine é a entrada de lineup de um jogador com estatísticas por type_id.
type PlayerLine struct {
	ParticipantID int64
	Name          string
	Stats         map[int]int
}

// ProviderOdd é a odd do provedor relevante para liquidação.
type ProviderOdd struct {
	MarketID          int
	MarketDescription string
	Label             string
	Name              string
	Total             string
	Handicap          string
	Winning           *bool
}

// Build deriva os fatos normalizados a partir do payload do provedor.
func Build(m *provider.Match) *MatchFacts {
	f := &MatchFacts{
		MatchID:  m.ID,
		Finished: m.Finished(),
		Odds:     make(map[int64]ProviderOdd, len(m.Odds)),
	}

	for _, p := range m.Participants {
		switch p.Location {
		case provider.LocationHome:
			f.HomeID, f.HomeName = p.ID, p.Name
		case provider.LocationAway:
			f.AwayID, f.AwayName = p.ID, p.Name
		}
	}

	f.FullTime = extractFullTime(m, f.HomeID, f.AwayID)
	f.HalfTime = extractHalfTime(m, f.HomeID, f.AwayID)
	f.SecondHalf = extractSegment(m, provider.SegmentSecondHalfOnly, f.HomeID, f.AwayID)
	f.Corners = extractSideStat(m, provider.StatTypeCorners, f.HomeID, f.AwayID)
	f.Cards = extractCards(m, f.HomeID, f.AwayID)
	f.Goals = extractGoalEvents(m)
	f.Lineup = extractLineup(m)

	for _, o := range m.Odds {
		f.Odds[o.ID] = ProviderOdd{
			MarketID:          o.MarketID,
			MarketDescription: o.MarketDescription,
			Label:             o.Label,
			Name:              o.Name,
			Total:             o.Total,
			Handicap:          o.Handicap,
			Winning:           o.Winning,
		}
	}

	return f
}

// extractFullTime soma os parciais de 1º tempo e 2º tempo (somente) por lado.
// O provedor reporta o placar em segmentos; o campo agregado não é confiável.
func extractFullTime(m *provider.Match, homeID, awayID int64) *Score {
	var s Score
	found := false
	for _, e := range m.Scores {
		if e.Description != provider.SegmentFirstHalf && e.Description != provider.SegmentSecondHalfOnly {
			continue
		}
		switch e.ParticipantID {
		case homeID:
			s.Home += e.Goals
			found = true
		case awayID:
			s.Away += e.Goals
			found = true
		}
	}
	if !found {
		return nil
	}
	return &s
}

// extractHalfTime tenta primeiro o segmento de 1º tempo e depois o campo
// legado ht_score ("1-0", mandante primeiro).
func extractHalfTime(m *provider.Match, homeID, awayID int64) *Score {
	if s := extractSegment(m, provider.SegmentFirstHalf, homeID, awayID); s != nil {
		return s
	}
	return parseLegacyScore(m.HTScore)
}

func extractSegment(m *provider.Match, segment string, homeID, awayID int64) *Score {
	var s Score
	found := false
	for _, e := range m.Scores {
		if e.Description != segment {
			continue
		}
		switch e.ParticipantID {
		case homeID:
			s.Home = e.Goals
			found = true
		case awayID:
			s.Away = e.Goals
			found = true
		}
	}
	if !found {
		return nil
	}
	return &s
}

func parseLegacyScore(raw string) *Score {
	parts := strings.SplitN(strings.TrimSpace(raw), "-", 2)
	if len(parts) != 2 {
		return nil
	}
	h, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	a, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return nil
	}
	return &Score{Home: h, Away: a}
}

// extractSideStat filtra a lista plana de estatísticas por type_id e lado.
// Nenhuma entrada correspondente => nil (sem dado), nunca zero.
func extractSideStat(m *provider.Match, typeID int, homeID, awayID int64) *SideCount {
	var c SideCount
	found := false
	for _, st := range m.Statistics {
		if st.TypeID != typeID {
			continue
		}
		if isHomeEntry(st, homeID) {
			c.Home += st.Value
			found = true
		} else if isAwayEntry(st, awayID) {
			c.Away += st.Value
			found = true
		}
	}
	if !found {
		return nil
	}
	c.Total = c.Home + c.Away
	return &c
}

// extractCards agrega amarelos e vermelhos num total de cartões por lado.
func extractCards(m *provider.Match, homeID, awayID int64) *SideCount {
	yellow := extractSideStat(m, provider.StatTypeYellowCards, homeID, awayID)
	red := extractSideStat(m, provider.StatTypeRedCards, homeID, awayID)
	if yellow == nil && red == nil {
		return nil
	}
	var c SideCount
	if yellow != nil {
		c.Home += yellow.Home
		c.Away += yellow.Away
	}
	if red != nil {
		c.Home += red.Home
		c.Away += red.Away
	}
	c.Total = c.Home + c.Away
	return &c
}

// Alguns feeds marcam o lado por location, outros só pelo participant_id.
func isHomeEntry(st provider.StatEntry, homeID int64) bool {
	return st.Location == provider.LocationHome || (st.Location == "" && st.ParticipantID == homeID)
}

func isAwayEntry(st provider.StatEntry, awayID int64) bool {
	return st.Location == provider.LocationAway || (st.Location == "" && st.ParticipantID == awayID)
}

// extractGoalEvents filtra eventos de gol e ordena por minuto + acréscimo.
// A ordem importa: primeiro/último goleador dependem dela.
func extractGoalEvents(m *provider.Match) []GoalEvent {
	var goals []GoalEvent
	for _, e := range m.Events {
		switch e.TypeID {
		case provider.EventTypeGoal, provider.EventTypeOwnGoal, provider.EventTypePenaltyGoal:
		default:
			continue
		}
		g := GoalEvent{
			ParticipantID: e.ParticipantID,
			PlayerName:    e.PlayerName,
			Minute:        e.Minute,
			OwnGoal:       e.TypeID == provider.EventTypeOwnGoal,
		}
		if e.ExtraMinute != nil {
			g.ExtraMinute = *e.ExtraMinute
		}
		goals = append(goals, g)
	}
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].Minute+goals[i].ExtraMinute < goals[j].Minute+goals[j].ExtraMinute
	})
	return goals
}

func extractLineup(m *provider.Match) []PlayerLine {
	var lines []PlayerLine
	for _, l := range m.Lineups {
		pl := PlayerLine{
			ParticipantID: l.ParticipantID,
			Name:          l.PlayerName,
			Stats:         make(map[int]int, len(l.Details)),
		}
		for _, d := range l.Details {
			pl.Stats[d.TypeID] = d.Value
		}
		lines = append(lines, pl)
	}
	return lines
}

// HasPlayer informa se o jogador consta no lineup (comparação exata,
// insensível a maiúsculas). Matching difuso é reservado à atribuição de gols.
func (f *MatchFacts) HasPlayer(name string) bool {
	_, ok := f.findPlayer(name)
	return ok
}

// PlayerStat busca uma estatística de jogador por type_id.
// Retorna ok=false quando o jogador existe mas a estatística não foi enviada.
// Jogador ausente do lineup também retorna ok=false; use HasPlayer para
// distinguir os dois casos.
func (f *MatchFacts) PlayerStat(name string, typeID int) (int, bool) {
	pl, ok := f.findPlayer(name)
	if !ok {
		return 0, false
	}
	v, ok := pl.Stats[typeID]
	return v, ok
}

func (f *MatchFacts) findPlayer(name string) (PlayerLine, bool) {
	for _, pl := range f.Lineup {
		if strings.EqualFold(strings.TrimSpace(pl.Name), strings.TrimSpace(name)) {
			return pl, true
		}
	}
	return PlayerLine{}, false
}

// OddByID retorna a odd do provedor pelo id, se presente no payload.
func (f *MatchFacts) OddByID(id int64) (ProviderOdd, bool) {
	o, ok := f.Odds[id]
	return o, ok
}

// GoalSide resolve o lado beneficiado por um gol. Gol contra conta para o
// adversário do participante que marcou.
func (f *MatchFacts) GoalSide(g GoalEvent) string {
	scored := ""
	switch g.ParticipantID {
	case f.HomeID:
		scored = provider.LocationHome
	case f.AwayID:
		scored = provider.LocationAway
	default:
		return ""
	}
	if !g.OwnGoal {
		return scored
	}
	if scored == provider.LocationHome {
		return provider.LocationAway
	}
	return provider.LocationHome
}

package fixture

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/radieske/bet-settlement-poc/pkg/contracts/provider"
)

// World mantém o conjunto de partidas simuladas e evolui cada uma
// minuto a minuto até o apito final. Cada Tick avança o relógio e pode
// gerar gols, escanteios, cartões e chutes dos jogadores escalados.
type World struct {
	mu      sync.RWMutex
	matches map[string]*liveMatch
	rnd     *rand.Rand
}

type liveMatch struct {
	match  provider.Match
	minute int
}

type teamSeed struct {
	id      int64
	name    string
	players []string
}

// Catálogo fixo de partidas simuladas
var fixtures = [][2]teamSeed{
	{
		{101, "Flamengo", []string{"Pedro", "Gabriel Barbosa", "Arrascaeta", "Everton Ribeiro"}},
		{102, "Palmeiras", []string{"Rony", "Dudu", "Raphael Veiga", "Endrick"}},
	},
	{
		{103, "Grêmio", []string{"Luis Suárez", "Cristaldo", "Ferreira", "Villasanti"}},
		{104, "Internacional", []string{"Enner Valencia", "Alan Patrick", "Wanderson", "Maurício"}},
	},
	{
		{105, "Corinthians", []string{"Yuri Alberto", "Róger Guedes", "Renato Augusto", "Fagner"}},
		{106, "Santos", []string{"Marcos Leonardo", "Soteldo", "Lucas Lima", "Mendoza"}},
	},
}

// NewWorld cria o mundo simulado com o catálogo fixo de partidas.
func NewWorld(seed int64) *World {
	w := &World{
		matches: make(map[string]*liveMatch),
		rnd:     rand.New(rand.NewSource(seed)),
	}
	for i, pair := range fixtures {
		id := fmt.Sprintf("MATCH_%03d", i+1)
		w.matches[id] = &liveMatch{match: newMatch(id, pair[0], pair[1])}
	}
	return w
}

func newMatch(id string, home, away teamSeed) provider.Match {
	m := provider.Match{
		ID:         id,
		LeagueName: "Brasileirão Série A",
		Status:     provider.StatusNotStarted,
		Participants: []provider.Participant{
			{ID: home.id, Name: home.name, Location: provider.LocationHome},
			{ID: away.id, Name: away.name, Location: provider.LocationAway},
		},
	}
	for _, seg := range []string{provider.SegmentFirstHalf, provider.SegmentSecondHalfOnly} {
		m.Scores = append(m.Scores,
			provider.ScoreEntry{ParticipantID: home.id, Description: seg},
			provider.ScoreEntry{ParticipantID: away.id, Description: seg},
		)
	}
	for _, t := range []teamSeed{home, away} {
		for _, p := range t.players {
			m.Lineups = append(m.Lineups, provider.LineupEntry{
				ParticipantID: t.id,
				PlayerName:    p,
				Details: []provider.LineupStat{
					{TypeID: provider.StatTypeShotsTotal, Value: 0},
					{TypeID: provider.StatTypeShotsOnTarget, Value: 0},
				},
			})
		}
		for _, typeID := range []int{provider.StatTypeCorners, provider.StatTypeYellowCards, provider.StatTypeRedCards} {
			loc := provider.LocationHome
			if t.id == away.id {
				loc = provider.LocationAway
			}
			m.Statistics = append(m.Statistics, provider.StatEntry{
				TypeID: typeID, ParticipantID: t.id, Location: loc,
			})
		}
	}
	m.Odds = matchOdds(id, home, away)
	return m
}

// matchOdds monta a oferta de mercados da partida. Ids de odd são derivados
// do índice para serem estáveis entre snapshots.
func matchOdds(id string, home, away teamSeed) []provider.Odd {
	base := home.id * 1000
	return []provider.Odd{
		{ID: base + 1, MarketID: 1, MarketDescription: "Match Result", Label: "Home", Name: home.name},
		{ID: base + 2, MarketID: 1, MarketDescription: "Match Result", Label: "Draw", Name: "Draw"},
		{ID: base + 3, MarketID: 1, MarketDescription: "Match Result", Label: "Away", Name: away.name},
		{ID: base + 4, MarketID: 12, MarketDescription: "Goals Over/Under", Label: "Over", Total: "2.5"},
		{ID: base + 5, MarketID: 12, MarketDescription: "Goals Over/Under", Label: "Under", Total: "2.5"},
		{ID: base + 6, MarketID: 37, MarketDescription: "Both Teams To Score", Label: "Yes"},
		{ID: base + 7, MarketID: 37, MarketDescription: "Both Teams To Score", Label: "No"},
		{ID: base + 8, MarketID: 19, MarketDescription: "Asian Handicap", Label: "Home", Handicap: "-0.5"},
		{ID: base + 9, MarketID: 19, MarketDescription: "Asian Handicap", Label: "Away", Handicap: "+0.5"},
	}
}

// Tick avança todas as partidas não finalizadas em alguns minutos de jogo.
func (w *World) Tick() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, lm := range w.matches {
		w.advance(lm)
	}
}

func (w *World) advance(lm *liveMatch) {
	if lm.match.Finished() || lm.match.Status == provider.StatusCanceled {
		return
	}
	lm.minute += 3 + w.rnd.Intn(5)

	switch {
	case lm.minute >= 90:
		lm.match.Status = provider.StatusFullTime
		w.settleProviderOdds(lm)
		return
	case lm.minute >= 45 && lm.match.Status == provider.StatusLive && lm.match.HTScore == "":
		lm.match.Status = provider.StatusHalfTime
		h, a := segmentGoals(&lm.match, provider.SegmentFirstHalf)
		lm.match.HTScore = fmt.Sprintf("%d-%d", h, a)
	case lm.match.Status == provider.StatusNotStarted:
		lm.match.Status = provider.StatusLive
	case lm.match.Status == provider.StatusHalfTime:
		lm.match.Status = provider.StatusLive
	}

	if lm.match.Status != provider.StatusLive {
		return
	}

	// Sorteia eventos do intervalo de minutos percorrido
	if w.rnd.Intn(100) < 18 {
		w.scoreGoal(lm)
	}
	if w.rnd.Intn(100) < 35 {
		w.bumpStat(lm, provider.StatTypeCorners)
	}
	if w.rnd.Intn(100) < 12 {
		w.bumpStat(lm, provider.StatTypeYellowCards)
	}
	if w.rnd.Intn(100) < 40 {
		w.playerShot(lm)
	}
}

func (w *World) scoreGoal(lm *liveMatch) {
	side := w.rnd.Intn(2)
	team := lm.match.Participants[side]
	seg := provider.SegmentFirstHalf
	if lm.minute > 45 {
		seg = provider.SegmentSecondHalfOnly
	}
	for i := range lm.match.Scores {
		sc := &lm.match.Scores[i]
		if sc.ParticipantID == team.ID && sc.Description == seg {
			sc.Goals++
		}
	}

	scorer := w.teamPlayer(&lm.match, team.ID)
	lm.match.Events = append(lm.match.Events, provider.MatchEvent{
		TypeID:        provider.EventTypeGoal,
		ParticipantID: team.ID,
		PlayerName:    scorer,
		Minute:        lm.minute,
	})
}

func (w *World) bumpStat(lm *liveMatch, typeID int) {
	side := w.rnd.Intn(2)
	team := lm.match.Participants[side]
	for i := range lm.match.Statistics {
		st := &lm.match.Statistics[i]
		if st.ParticipantID == team.ID && st.TypeID == typeID {
			st.Value++
		}
	}
}

func (w *World) playerShot(lm *liveMatch) {
	if len(lm.match.Lineups) == 0 {
		return
	}
	entry := &lm.match.Lineups[w.rnd.Intn(len(lm.match.Lineups))]
	onTarget := w.rnd.Intn(100) < 40
	for i := range entry.Details {
		d := &entry.Details[i]
		if d.TypeID == provider.StatTypeShotsTotal {
			d.Value++
		}
		if onTarget && d.TypeID == provider.StatTypeShotsOnTarget {
			d.Value++
		}
	}
}

func (w *World) teamPlayer(m *provider.Match, teamID int64) string {
	var names []string
	for _, l := range m.Lineups {
		if l.ParticipantID == teamID {
			names = append(names, l.PlayerName)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return names[w.rnd.Intn(len(names))]
}

// settleProviderOdds preenche o flag winning do mercado 1X2 no apito final,
// como faz o provedor real. Os demais mercados ficam por conta do motor.
func (w *World) settleProviderOdds(lm *liveMatch) {
	fh, fa := segmentGoals(&lm.match, provider.SegmentFirstHalf)
	sh, sa := segmentGoals(&lm.match, provider.SegmentSecondHalfOnly)
	home, away := fh+sh, fa+sa
	for i := range lm.match.Odds {
		o := &lm.match.Odds[i]
		if o.MarketID != 1 {
			continue
		}
		win := (o.Label == "Home" && home > away) ||
			(o.Label == "Draw" && home == away) ||
			(o.Label == "Away" && away > home)
		o.Winning = &win
	}
}

func segmentGoals(m *provider.Match, seg string) (home, away int) {
	var homeID int64
	for _, p := range m.Participants {
		if p.Location == provider.LocationHome {
			homeID = p.ID
		}
	}
	for _, sc := range m.Scores {
		if sc.Description != seg {
			continue
		}
		if sc.ParticipantID == homeID {
			home += sc.Goals
		} else {
			away += sc.Goals
		}
	}
	return home, away
}

// Snapshot devolve uma cópia profunda do estado atual da partida.
func (w *World) Snapshot(id string) (provider.Match, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	lm, ok := w.matches[id]
	if !ok {
		return provider.Match{}, false
	}
	return cloneMatch(&lm.match), true
}

// Snapshots devolve cópias de todas as partidas do mundo.
func (w *World) Snapshots() []provider.Match {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]provider.Match, 0, len(w.matches))
	for _, lm := range w.matches {
		out = append(out, cloneMatch(&lm.match))
	}
	return out
}

func cloneMatch(m *provider.Match) provider.Match {
	c := *m
	c.Participants = append([]provider.Participant(nil), m.Participants...)
	c.Scores = append([]provider.ScoreEntry(nil), m.Scores...)
	c.Statistics = append([]provider.StatEntry(nil), m.Statistics...)
	c.Events = append([]provider.MatchEvent(nil), m.Events...)
	c.Odds = append([]provider.Odd(nil), m.Odds...)
	c.Lineups = make([]provider.LineupEntry, len(m.Lineups))
	for i, l := range m.Lineups {
		l.Details = append([]provider.LineupStat(nil), l.Details...)
		c.Lineups[i] = l
	}
	return c
}

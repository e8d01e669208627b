package engine

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/radieske/bet-settlement-poc/internal/facts"
)

// Normalização de seleções. Campos estruturados (Total, Handicap, Label)
// são autoritativos; o parsing do texto livre é só fallback para apostas
// legadas sem estrutura.

type resultToken int

const (
	resultNone resultToken = iota
	resultHome
	resultDraw
	resultAway
)

func (t resultToken) String() string {
	switch t {
	case resultHome:
		return "home"
	case resultDraw:
		return "draw"
	case resultAway:
		return "away"
	}
	return "none"
}

// overUnder é a seleção normalizada de um mercado de totais.
type overUnder struct {
	over      bool
	threshold float64
}

func (ou overUnder) String() string {
	side := "under"
	if ou.over {
		side = "over"
	}
	return side + " " + strconv.FormatFloat(ou.threshold, 'f', -1, 64)
}

// handicapSel é a seleção normalizada de um mercado de handicap:
// o lado escolhido e o valor assinado aplicado ao placar desse lado.
type handicapSel struct {
	home  bool
	value float64
}

var (
	overUnderPattern = regexp.MustCompile(`(?i)\b(over|under)\b\s*([0-9]+(?:[.,][0-9]+)?)?`)
	numberPattern    = regexp.MustCompile(`[-+]?[0-9]+(?:[.,][0-9]+)?`)
	scorePattern     = regexp.MustCompile(`([0-9]+)\s*[-:x]\s*([0-9]+)`)
)

// Threshold assumido quando o lado over/under é identificável mas nenhum
// número aparece na seleção nem nos campos estruturados (apostas legadas).
const defaultGoalThreshold = 2.5

// normalizeResult converte o texto de uma seleção 1X2 em token canônico.
func normalizeResult(s string) resultToken {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "home", "home win", "1 (home)":
		return resultHome
	case "x", "draw", "tie":
		return resultDraw
	case "2", "away", "away win", "2 (away)":
		return resultAway
	}
	return resultNone
}

// resultSelection resolve o token 1X2 da aposta: label estruturado primeiro,
// depois nome, por fim o texto livre legado.
func resultSelection(b Bet) resultToken {
	for _, s := range []string{b.Details.Label, b.Details.Name, b.Selection} {
		if t := normalizeResult(s); t != resultNone {
			return t
		}
	}
	return resultNone
}

// normalizeYesNo interpreta seleções booleanas (ambas marcam, clean sheet...).
func normalizeYesNo(s string) (yes bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y":
		return true, true
	case "no", "n":
		return false, true
	}
	return false, false
}

func yesNoSelection(b Bet) (bool, bool) {
	for _, s := range []string{b.Details.Label, b.Details.Name, b.Selection} {
		if yes, ok := normalizeYesNo(s); ok {
			return yes, ok
		}
	}
	return false, false
}

// parseNumber extrai o primeiro número de um texto, tolerando vírgula decimal.
func parseNumber(s string) (float64, bool) {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normalizeOverUnder monta a seleção de totais. Precedência: campos
// estruturados (Total + Label), depois parsing do texto livre.
func normalizeOverUnder(b Bet) (overUnder, bool) {
	var ou overUnder
	sideKnown := false

	if side, ok := overUnderSide(b.Details.Label); ok {
		ou.over, sideKnown = side, true
	}
	if b.Details.Total != "" {
		if !sideKnown {
			if side, ok := overUnderSide(b.Details.Total); ok {
				ou.over, sideKnown = side, true
			}
		}
		if v, ok := parseNumber(b.Details.Total); ok {
			ou.threshold = v
			if sideKnown {
				return ou, true
			}
		}
	}

	if text, ok := parseOverUnderText(b.Selection); ok {
		if !sideKnown {
			ou.over = text.over
			sideKnown = true
		}
		if ou.threshold == 0 {
			ou.threshold = text.threshold
		}
	}

	if !sideKnown {
		return overUnder{}, false
	}
	if ou.threshold == 0 {
		ou.threshold = defaultGoalThreshold
	}
	return ou, true
}

func overUnderSide(s string) (over bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "over", "o":
		return true, true
	case "under", "u":
		return false, true
	}
	return false, false
}

// parseOverUnderText é o fallback regex para seleções legadas ("Over 2.5").
func parseOverUnderText(s string) (overUnder, bool) {
	m := overUnderPattern.FindStringSubmatch(s)
	if m == nil {
		return overUnder{}, false
	}
	ou := overUnder{over: strings.EqualFold(m[1], "over"), threshold: defaultGoalThreshold}
	if m[2] != "" {
		if v, err := strconv.ParseFloat(strings.Replace(m[2], ",", ".", 1), 64); err == nil {
			ou.threshold = v
		}
	}
	return ou, true
}

// normalizeHandicap monta a seleção de handicap: lado pelo token 1X2 e
// valor pelo campo estruturado, com fallback para o texto livre.
func normalizeHandicap(b Bet) (handicapSel, bool) {
	side := resultSelection(b)
	if side != resultHome && side != resultAway {
		return handicapSel{}, false
	}
	h := handicapSel{home: side == resultHome}

	if v, ok := parseNumber(b.Details.Handicap); ok {
		h.value = v
		return h, true
	}
	// O texto livre só fornece o valor quando o lado veio dos campos
	// estruturados. Se o lado saiu da própria seleção ("2"), reaproveitar
	// o dígito como linha fabricaria um handicap que nunca existiu.
	if normalizeResult(b.Details.Label) != resultNone || normalizeResult(b.Details.Name) != resultNone {
		if v, ok := parseNumber(b.Selection); ok {
			h.value = v
			return h, true
		}
	}
	return handicapSel{}, false
}

// normalizeScoreline canoniza um placar exato para "H-A".
// Aceita separadores "-", ":" e "x".
func normalizeScoreline(s string) (string, bool) {
	m := scorePattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return "", false
	}
	return m[1] + "-" + m[2], true
}

// normalizeDoubleChance interpreta seleções de dupla chance como o conjunto
// de resultados cobertos.
func normalizeDoubleChance(s string) (home, draw, away, ok bool) {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "1x", "x1", "home/draw", "home or draw", "draw or home":
		return true, true, false, true
	case "12", "home/away", "home or away", "away or home":
		return true, false, true, true
	case "x2", "2x", "draw/away", "draw or away", "away or draw":
		return false, true, true, true
	}
	return false, false, false, false
}

// oddEvenSelection interpreta seleções de par/ímpar.
func oddEvenSelection(b Bet) (odd bool, ok bool) {
	for _, s := range []string{b.Details.Label, b.Details.Name, b.Selection} {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "odd":
			return true, true
		case "even":
			return false, true
		}
	}
	return false, false
}

// splitPair quebra seleções compostas ("Away/No", "Home - Over") em duas
// componentes independentes.
func splitPair(s string) (string, string, bool) {
	for _, sep := range []string{"/", " - ", " & ", " and "} {
		if idx := strings.Index(s, sep); idx > 0 {
			left := strings.TrimSpace(s[:idx])
			right := strings.TrimSpace(s[idx+len(sep):])
			if left != "" && right != "" {
				return left, right, true
			}
		}
	}
	return "", "", false
}

var nameCleaner = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeName prepara nomes para comparação: minúsculas, sem diacríticos,
// sem pontuação, espaços colapsados.
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if cleaned, _, err := transform.String(nameCleaner, s); err == nil {
		s = cleaned
	}
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// fuzzyPlayerMatch compara nomes de jogadores tolerando variações de grafia
// entre provedores ("B. Finne" x "Bendik Finne"). Aceita igualdade
// normalizada ou sobreposição de pelo menos dois tokens, limitada ao número
// de tokens do nome mais curto. Um token de uma letra é tratado como inicial
// e casa com qualquer token que comece por ela.
func fuzzyPlayerMatch(a, b string) bool {
	na, nb := normalizeName(a), normalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	ta, tb := strings.Fields(na), strings.Fields(nb)
	required := 2
	if len(ta) < required {
		required = len(ta)
	}
	if len(tb) < required {
		required = len(tb)
	}

	overlap := 0
	for _, x := range ta {
		for _, y := range tb {
			if tokensMatch(x, y) {
				overlap++
				break
			}
		}
	}
	return overlap >= required
}

func tokensMatch(x, y string) bool {
	if x == y {
		return true
	}
	if len(x) == 1 {
		return strings.HasPrefix(y, x)
	}
	if len(y) == 1 {
		return strings.HasPrefix(x, y)
	}
	return false
}

// sideToken resolve uma componente de seleção composta que pode ser um token
// 1X2 ou o nome de um dos times da partida.
func sideToken(s string, f *facts.MatchFacts) resultToken {
	if t := normalizeResult(s); t != resultNone {
		return t
	}
	if fuzzyPlayerMatch(s, f.HomeName) {
		return resultHome
	}
	if fuzzyPlayerMatch(s, f.AwayName) {
		return resultAway
	}
	return resultNone
}

// teamSide resolve qual lado a aposta referencia em mercados por time:
// label/name explícito primeiro, depois nome do time na descrição do mercado.
func teamSide(b Bet, f *facts.MatchFacts) (home bool, ok bool) {
	for _, s := range []string{b.Details.Label, b.Details.Name} {
		switch normalizeResult(s) {
		case resultHome:
			return true, true
		case resultAway:
			return false, true
		}
		if s != "" {
			if fuzzyPlayerMatch(s, f.HomeName) {
				return true, true
			}
			if fuzzyPlayerMatch(s, f.AwayName) {
				return false, true
			}
		}
	}

	desc := normalizeName(b.Details.MarketDescription)
	if desc != "" {
		if h := normalizeName(f.HomeName); h != "" && strings.Contains(desc, h) {
			return true, true
		}
		if a := normalizeName(f.AwayName); a != "" && strings.Contains(desc, a) {
			return false, true
		}
	}

	switch normalizeResult(b.Selection) {
	case resultHome:
		return true, true
	case resultAway:
		return false, true
	}
	return false, false
}

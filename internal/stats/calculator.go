package stats

import (
	"errors"
	"math"

	"github.com/nschafer/dugout/internal/classifier"
	"github.com/nschafer/dugout/internal/merger"
	"github.com/nschafer/dugout/internal/models"
	"github.com/sirupsen/logrus"
)

// Mode selects which view of a player's numbers to compute.
type Mode string

const (
	ModeCareer   Mode = "career"
	ModeSeason   Mode = "season"
	ModeLive     Mode = "live"
	ModeCombined Mode = "combined"
)

var (
	ErrInvalidMode = errors.New("invalid mode")
	ErrNoStats     = errors.New("no stats found")
	ErrNoLiveStats = errors.New("no live stats found")
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCareer, ModeSeason, ModeLive, ModeCombined:
		return Mode(s), nil
	}
	return "", ErrInvalidMode
}

// WarSource supplies WAR values from the independent WAR ledger. WAR is
// never read from the counting tables; a missing year or a failed
// lookup reads as 0, never null.
type WarSource interface {
	CareerWAR(playerID string) (float64, error)
	WARByYear(playerID string) (map[int]float64, error)
}

// Result is the calculator's output, shaped to the response contract:
// career and combined views fill Totals, season and live views fill
// Stats (a list of per-year objects or a single live object).
type Result struct {
	Mode       Mode        `json:"mode"`
	PlayerType string      `json:"player_type"`
	Totals     interface{} `json:"totals,omitempty"`
	Stats      interface{} `json:"stats,omitempty"`
}

type Calculator struct {
	war    WarSource
	logger *logrus.Logger
}

func New(war WarSource, logger *logrus.Logger) *Calculator {
	return &Calculator{
		war:    war,
		logger: logger,
	}
}

// Compute derives the requested view from merged historical and live
// rows. role must already be pitcher or hitter; two-way selection
// happens upstream.
func (c *Calculator) Compute(mode Mode, role classifier.Role, merged *merger.Merged, playerID string) (*Result, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if role == classifier.RolePitcher {
		return c.computePitcher(mode, merged, playerID)
	}
	return c.computeHitter(mode, merged, playerID)
}

func (c *Calculator) careerWAR(playerID string) float64 {
	war, err := c.war.CareerWAR(playerID)
	if err != nil {
		c.logger.Warnf("Career WAR unavailable for %s: %v", playerID, err)
		return 0
	}
	return war
}

func (c *Calculator) warByYear(playerID string) map[int]float64 {
	byYear, err := c.war.WARByYear(playerID)
	if err != nil {
		c.logger.Warnf("Season WAR unavailable for %s: %v", playerID, err)
		return map[int]float64{}
	}
	if byYear == nil {
		byYear = map[int]float64{}
	}
	return byYear
}

// --- hitters ---

type battingTotals struct {
	g, ab, h, hr, rbi, sb, bb, hbp, sf, sh, doubles, triples int
}

func sumBatting(seasons []models.BattingSeason) battingTotals {
	var t battingTotals
	for _, s := range seasons {
		t.g += s.G
		t.ab += s.AB
		t.h += s.H
		t.hr += s.HR
		t.rbi += s.RBI
		t.sb += s.SB
		t.bb += s.BB
		t.hbp += s.HBP
		t.sf += s.SF
		t.sh += s.SH
		t.doubles += s.Doubles
		t.triples += s.Triples
	}
	return t
}

func hitterRates(t battingTotals) (ba, obp, slg, ops float64) {
	singles := t.h - t.doubles - t.triples - t.hr
	totalBases := singles + 2*t.doubles + 3*t.triples + 4*t.hr
	ba = safeDiv(float64(t.h), float64(t.ab))
	obpDenom := t.ab + t.bb + t.hbp + t.sf
	obp = safeDiv(float64(t.h+t.bb+t.hbp), float64(obpDenom))
	slg = safeDiv(float64(totalBases), float64(t.ab))
	return ba, obp, slg, obp + slg
}

func (c *Calculator) computeHitter(mode Mode, merged *merger.Merged, playerID string) (*Result, error) {
	result := &Result{Mode: mode, PlayerType: string(classifier.RoleHitter)}

	switch mode {
	case ModeCareer, ModeCombined:
		if len(merged.Batting) == 0 {
			return nil, ErrNoStats
		}
		t := sumBatting(merged.Batting)
		war := c.careerWAR(playerID)

		if mode == ModeCombined && merged.Live != nil {
			t.g += liveInt(merged.Live, "games")
			t.ab += liveInt(merged.Live, "ab")
			t.h += liveInt(merged.Live, "hits")
			t.hr += liveInt(merged.Live, "hr")
			t.rbi += liveInt(merged.Live, "rbi")
			t.sb += liveInt(merged.Live, "sb")
			t.bb += liveInt(merged.Live, "bb")
			t.hbp += liveInt(merged.Live, "hbp")
			t.sf += liveInt(merged.Live, "sf")
			t.sh += liveInt(merged.Live, "sh")
			t.doubles += liveInt(merged.Live, "doubles")
			t.triples += liveInt(merged.Live, "triples")
			war += liveFloat(merged.Live, "war")
		}

		ba, obp, slg, ops := hitterRates(t)
		result.Totals = map[string]interface{}{
			"war":                 roundTo(war, 1),
			"games":               t.g,
			"plate_appearances":   t.ab + t.bb + t.hbp + t.sf + t.sh,
			"hits":                t.h,
			"home_runs":           t.hr,
			"rbi":                 t.rbi,
			"stolen_bases":        t.sb,
			"batting_average":     roundTo(ba, 3),
			"on_base_percentage":  roundTo(obp, 3),
			"slugging_percentage": roundTo(slg, 3),
			"ops":                 roundTo(ops, 3),
			"ops_plus":            liveInt(merged.Live, "ops_plus"),
		}
		return result, nil

	case ModeSeason:
		if len(merged.Batting) == 0 {
			return nil, ErrNoStats
		}
		warByYear := c.warByYear(playerID)
		rows := make([]map[string]interface{}, 0, len(merged.Batting))
		for _, s := range merged.Batting {
			t := battingTotals{
				g: s.G, ab: s.AB, h: s.H, hr: s.HR, rbi: s.RBI, sb: s.SB,
				bb: s.BB, hbp: s.HBP, sf: s.SF, sh: s.SH,
				doubles: s.Doubles, triples: s.Triples,
			}
			ba, obp, slg, ops := hitterRates(t)
			rows = append(rows, map[string]interface{}{
				"year":            s.YearID,
				"teamid":          s.TeamID,
				"games":           s.G,
				"pa":              s.AB + s.BB + s.HBP + s.SF + s.SH,
				"at_bats":         s.AB,
				"hits":            s.H,
				"home_runs":       s.HR,
				"rbi":             s.RBI,
				"stolen_bases":    s.SB,
				"walks":           s.BB,
				"hit_by_pitch":    s.HBP,
				"sacrifice_flies": s.SF,
				"doubles":         s.Doubles,
				"triples":         s.Triples,
				"ba":              roundTo(ba, 3),
				"obp":             roundTo(obp, 3),
				"slg":             roundTo(slg, 3),
				"ops":             roundTo(ops, 3),
				"war":             roundTo(warByYear[s.YearID], 1),
			})
		}
		result.Stats = rows
		return result, nil

	case ModeLive:
		if merged.Live == nil {
			return nil, ErrNoLiveStats
		}
		result.Stats = map[string]interface{}{
			"war":                 roundTo(liveFloat(merged.Live, "war"), 1),
			"games":               liveInt(merged.Live, "games"),
			"plate_appearances":   liveInt(merged.Live, "pa"),
			"hits":                liveInt(merged.Live, "hits"),
			"home_runs":           liveInt(merged.Live, "hr"),
			"rbi":                 liveInt(merged.Live, "rbi"),
			"stolen_bases":        liveInt(merged.Live, "sb"),
			"batting_average":     roundTo(liveFloat(merged.Live, "avg"), 3),
			"on_base_percentage":  roundTo(liveFloat(merged.Live, "obp"), 3),
			"slugging_percentage": roundTo(liveFloat(merged.Live, "slg"), 3),
			"ops":                 roundTo(liveFloat(merged.Live, "ops"), 3),
			"ops_plus":            liveInt(merged.Live, "ops_plus"),
		}
		return result, nil
	}

	return nil, ErrInvalidMode
}

// --- pitchers ---

type pitchingTotals struct {
	w, l, g, gs, cg, sho, sv, ipOuts, h, er, hr, bb, so int
}

func sumPitching(seasons []models.PitchingSeason) pitchingTotals {
	var t pitchingTotals
	for _, s := range seasons {
		t.w += s.W
		t.l += s.L
		t.g += s.G
		t.gs += s.GS
		t.cg += s.CG
		t.sho += s.SHO
		t.sv += s.SV
		t.ipOuts += s.IPOuts
		t.h += s.H
		t.er += s.ER
		t.hr += s.HR
		t.bb += s.BB
		t.so += s.SO
	}
	return t
}

func pitcherRates(t pitchingTotals) (ip, era, whip float64) {
	ip = safeDiv(float64(t.ipOuts), 3)
	era = safeDiv(float64(t.er)*9, ip)
	whip = safeDiv(float64(t.h+t.bb), ip)
	return ip, era, whip
}

func (c *Calculator) computePitcher(mode Mode, merged *merger.Merged, playerID string) (*Result, error) {
	result := &Result{Mode: mode, PlayerType: string(classifier.RolePitcher)}

	switch mode {
	case ModeCareer, ModeCombined:
		if len(merged.Pitching) == 0 {
			return nil, ErrNoStats
		}
		t := sumPitching(merged.Pitching)
		war := c.careerWAR(playerID)

		if mode == ModeCombined && merged.Live != nil {
			t.w += liveInt(merged.Live, "wins")
			t.l += liveInt(merged.Live, "losses")
			t.g += liveInt(merged.Live, "games")
			t.gs += liveInt(merged.Live, "gs")
			t.cg += liveInt(merged.Live, "cg")
			t.sho += liveInt(merged.Live, "sho")
			t.sv += liveInt(merged.Live, "sv")
			t.ipOuts += int(liveInnings(merged.Live) * 3)
			t.h += liveInt(merged.Live, "hits")
			t.er += liveInt(merged.Live, "er")
			t.hr += liveInt(merged.Live, "hr")
			t.bb += liveInt(merged.Live, "bb")
			t.so += liveInt(merged.Live, "so")
			war += liveFloat(merged.Live, "war")
		}

		ip, era, whip := pitcherRates(t)
		result.Totals = pitcherTotalsMap(t, war, ip, era, whip)
		return result, nil

	case ModeSeason:
		if len(merged.Pitching) == 0 {
			return nil, ErrNoStats
		}
		warByYear := c.warByYear(playerID)
		rows := make([]map[string]interface{}, 0, len(merged.Pitching))
		for _, s := range merged.Pitching {
			t := pitchingTotals{
				w: s.W, l: s.L, g: s.G, gs: s.GS, cg: s.CG, sho: s.SHO,
				sv: s.SV, ipOuts: s.IPOuts, h: s.H, er: s.ER, hr: s.HR,
				bb: s.BB, so: s.SO,
			}
			ip, eraCalc, whip := pitcherRates(t)
			// The ledger's published ERA wins when present.
			era := s.ERA
			if era <= 0 {
				era = eraCalc
			}
			rows = append(rows, map[string]interface{}{
				"year":              s.YearID,
				"teamid":            s.TeamID,
				"wins":              s.W,
				"losses":            s.L,
				"games":             s.G,
				"games_started":     s.GS,
				"complete_games":    s.CG,
				"shutouts":          s.SHO,
				"saves":             s.SV,
				"innings_pitched":   roundTo(ip, 1),
				"hits_allowed":      s.H,
				"earned_runs":       s.ER,
				"home_runs_allowed": s.HR,
				"walks":             s.BB,
				"strikeouts":        s.SO,
				"era":               roundTo(era, 2),
				"whip":              roundTo(whip, 2),
				"war":               roundTo(warByYear[s.YearID], 1),
			})
		}
		result.Stats = rows
		return result, nil

	case ModeLive:
		if merged.Live == nil {
			return nil, ErrNoLiveStats
		}
		ip := liveInnings(merged.Live)
		h := liveInt(merged.Live, "hits")
		er := liveInt(merged.Live, "er")
		bb := liveInt(merged.Live, "bb")

		era := liveFloat(merged.Live, "era")
		if era == 0 {
			era = safeDiv(float64(er)*9, ip)
		}
		whip := liveFloat(merged.Live, "whip")
		if whip == 0 {
			whip = safeDiv(float64(h+bb), ip)
		}

		result.Stats = map[string]interface{}{
			"war":               roundTo(liveFloat(merged.Live, "war"), 1),
			"wins":              liveInt(merged.Live, "wins"),
			"losses":            liveInt(merged.Live, "losses"),
			"games":             liveInt(merged.Live, "games"),
			"games_started":     liveInt(merged.Live, "gs"),
			"complete_games":    liveInt(merged.Live, "cg"),
			"shutouts":          liveInt(merged.Live, "sho"),
			"saves":             liveInt(merged.Live, "sv"),
			"innings_pitched":   roundTo(ip, 1),
			"hits_allowed":      h,
			"earned_runs":       er,
			"home_runs_allowed": liveInt(merged.Live, "hr"),
			"walks":             bb,
			"strikeouts":        liveInt(merged.Live, "so"),
			"era":               roundTo(era, 2),
			"whip":              roundTo(whip, 3),
		}
		return result, nil
	}

	return nil, ErrInvalidMode
}

func pitcherTotalsMap(t pitchingTotals, war, ip, era, whip float64) map[string]interface{} {
	return map[string]interface{}{
		"war":               roundTo(war, 1),
		"wins":              t.w,
		"losses":            t.l,
		"games":             t.g,
		"games_started":     t.gs,
		"complete_games":    t.cg,
		"shutouts":          t.sho,
		"saves":             t.sv,
		"innings_pitched":   roundTo(ip, 1),
		"hits_allowed":      t.h,
		"earned_runs":       t.er,
		"home_runs_allowed": t.hr,
		"walks":             t.bb,
		"strikeouts":        t.so,
		"era":               roundTo(era, 2),
		"whip":              roundTo(whip, 2),
	}
}

// safeDiv guards the zero-denominator case: every rate over an empty
// denominator reads 0, never NaN or a panic.
func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

package stats

import (
	"strconv"
	"strings"

	"github.com/nschafer/dugout/internal/providers"
)

// statKeys maps each logical statistic to the ordered candidate column
// names the live provider may publish it under. Probing order matters:
// the first present, parseable candidate wins.
var statKeys = map[string][]string{
	"war":      {"WAR", "war", "War", "fWAR", "bWAR", "rWAR", "b_war", "p_war"},
	"avg":      {"AVG", "BA", "avg", "ba", "b_batting_avg"},
	"obp":      {"OBP", "obp", "b_onbase_perc"},
	"slg":      {"SLG", "slg", "b_slugging_perc"},
	"ops":      {"OPS", "ops", "b_onbase_plus_slugging"},
	"ops_plus": {"OPS+", "OPS_plus", "wRC+", "ops_plus", "b_onbase_plus_slugging_plus"},
	"games":    {"G", "Games", "GP", "b_games", "p_g"},
	"pa":       {"PA", "b_pa"},
	"ab":       {"AB", "b_ab"},
	"hits":     {"H", "Hits", "b_h", "p_h"},
	"hr":       {"HR", "Home Runs", "HRA", "b_hr", "p_hr"},
	"rbi":      {"RBI", "b_rbi"},
	"sb":       {"SB", "b_sb"},
	"bb":       {"BB", "Walks", "Walk", "b_bb", "p_bb"},
	"hbp":      {"HBP", "b_hbp"},
	"sf":       {"SF", "b_sf"},
	"sh":       {"SH", "b_sh"},
	"doubles":  {"2B", "b_doubles"},
	"triples":  {"3B", "b_triples"},
	"so":       {"SO", "K", "Strikeouts", "b_so", "p_so"},
	"wins":     {"W", "Wins", "p_w"},
	"losses":   {"L", "Losses", "p_l"},
	"gs":       {"GS", "Games Started", "p_gs"},
	"cg":       {"CG", "Complete Games", "p_cg"},
	"sho":      {"SHO", "Shutouts", "p_sho"},
	"sv":       {"SV", "Saves", "p_sv"},
	"ip":       {"IP", "Innings Pitched", "InningsPitched", "p_ip"},
	"er":       {"ER", "Earned Runs", "p_er"},
	"era":      {"ERA", "era", "p_era"},
	"whip":     {"WHIP", "whip", "p_whip"},
}

func liveFloat(row *providers.LiveRow, stat string) float64 {
	if row == nil {
		return 0
	}
	for _, key := range statKeys[stat] {
		raw, ok := row.Cols[key]
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return 0
}

func liveInt(row *providers.LiveRow, stat string) int {
	return int(liveFloat(row, stat))
}

// liveInnings reads innings pitched, which some providers publish as a
// string like "187 1/3".
func liveInnings(row *providers.LiveRow) float64 {
	if row == nil {
		return 0
	}
	for _, key := range statKeys["ip"] {
		raw, ok := row.Cols[key]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		if v, ok := parseInnings(raw); ok {
			return v
		}
	}
	return 0
}

func parseInnings(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if !strings.Contains(raw, "/") {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	parts := strings.Fields(raw)
	innings, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, false
	}
	if len(parts) > 1 && strings.Contains(parts[1], "/") {
		frac := strings.SplitN(parts[1], "/", 2)
		num, errN := strconv.ParseFloat(frac[0], 64)
		den, errD := strconv.ParseFloat(frac[1], 64)
		if errN == nil && errD == nil && den != 0 {
			innings += num / den
		}
	}
	return innings, true
}

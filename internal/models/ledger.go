package models

// Person is one historical player identity from the Lahman people table.
// Multiple people may share a full name; the playerid is the only key.
// Rows are loaded by the importer and never mutated by the service.
type Person struct {
	PlayerID  string `gorm:"column:playerid;primaryKey" json:"player_id"`
	NameFirst string `gorm:"column:namefirst" json:"name_first"`
	NameLast  string `gorm:"column:namelast" json:"name_last"`
	BirthYear int    `gorm:"column:birthyear" json:"birth_year"`
	Debut     string `gorm:"column:debut" json:"debut"`
	FinalGame string `gorm:"column:finalgame" json:"final_game"`
}

func (Person) TableName() string {
	return "lahman_people"
}

// BattingSeason is one year-team batting line.
type BattingSeason struct {
	PlayerID string `gorm:"column:playerid" json:"player_id"`
	YearID   int    `gorm:"column:yearid" json:"year"`
	TeamID   string `gorm:"column:teamid" json:"teamid"`
	G        int    `gorm:"column:g" json:"games"`
	AB       int    `gorm:"column:ab" json:"at_bats"`
	H        int    `gorm:"column:h" json:"hits"`
	Doubles  int    `gorm:"column:2b" json:"doubles"`
	Triples  int    `gorm:"column:3b" json:"triples"`
	HR       int    `gorm:"column:hr" json:"home_runs"`
	RBI      int    `gorm:"column:rbi" json:"rbi"`
	SB       int    `gorm:"column:sb" json:"stolen_bases"`
	BB       int    `gorm:"column:bb" json:"walks"`
	HBP      int    `gorm:"column:hbp" json:"hit_by_pitch"`
	SF       int    `gorm:"column:sf" json:"sacrifice_flies"`
	SH       int    `gorm:"column:sh" json:"sacrifice_hits"`
	SO       int    `gorm:"column:so" json:"strikeouts"`
}

func (BattingSeason) TableName() string {
	return "lahman_batting"
}

// PitchingSeason is one year-team pitching line. ERA carries the ledger's
// published value; the calculator prefers it over the derived value when
// it is non-zero.
type PitchingSeason struct {
	PlayerID string  `gorm:"column:playerid" json:"player_id"`
	YearID   int     `gorm:"column:yearid" json:"year"`
	TeamID   string  `gorm:"column:teamid" json:"teamid"`
	W        int     `gorm:"column:w" json:"wins"`
	L        int     `gorm:"column:l" json:"losses"`
	G        int     `gorm:"column:g" json:"games"`
	GS       int     `gorm:"column:gs" json:"games_started"`
	CG       int     `gorm:"column:cg" json:"complete_games"`
	SHO      int     `gorm:"column:sho" json:"shutouts"`
	SV       int     `gorm:"column:sv" json:"saves"`
	IPOuts   int     `gorm:"column:ipouts" json:"outs_recorded"`
	H        int     `gorm:"column:h" json:"hits_allowed"`
	ER       int     `gorm:"column:er" json:"earned_runs"`
	HR       int     `gorm:"column:hr" json:"home_runs_allowed"`
	BB       int     `gorm:"column:bb" json:"walks"`
	SO       int     `gorm:"column:so" json:"strikeouts"`
	ERA      float64 `gorm:"column:era" json:"era"`
}

func (PitchingSeason) TableName() string {
	return "lahman_pitching"
}

// WarSeason is one player-season WAR value from the independent WAR ledger.
// It shares no rowset with the counting tables; missing years read as 0.
type WarSeason struct {
	KeyBBRef string  `gorm:"column:key_bbref" json:"key_bbref"`
	YearID   int     `gorm:"column:year_id" json:"year"`
	WAR162   float64 `gorm:"column:war162" json:"war"`
}

func (WarSeason) TableName() string {
	return "jeffbagwell_war"
}

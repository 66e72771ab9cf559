package models

// AwardRow is one player award for one year.
type AwardRow struct {
	PlayerID string `gorm:"column:playerid" json:"player_id"`
	AwardID  string `gorm:"column:awardid" json:"award_id"`
	YearID   int    `gorm:"column:yearid" json:"year"`
}

func (AwardRow) TableName() string {
	return "lahman_awardsplayers"
}

// AllStarRow is one All-Star selection.
type AllStarRow struct {
	PlayerID string `gorm:"column:playerid" json:"player_id"`
	YearID   int    `gorm:"column:yearid" json:"year"`
	GP       int    `gorm:"column:gp" json:"games_played"`
}

func (AllStarRow) TableName() string {
	return "lahman_allstarfull"
}

// SeriesPostRow is one postseason series result.
type SeriesPostRow struct {
	YearID       int    `gorm:"column:yearid" json:"year"`
	Round        string `gorm:"column:round" json:"round"`
	TeamIDWinner string `gorm:"column:teamidwinner" json:"team_id_winner"`
	TeamIDLoser  string `gorm:"column:teamidloser" json:"team_id_loser"`
}

func (SeriesPostRow) TableName() string {
	return "lahman_seriespost"
}

// RegisterRow maps a Lahman player ID to the external numeric ID used by
// the photo provider. Loaded from the Chadwick register by the importer.
type RegisterRow struct {
	KeyLahman string `gorm:"column:key_lahman" json:"key_lahman"`
	KeyMLBAM  int    `gorm:"column:key_mlbam" json:"key_mlbam"`
}

func (RegisterRow) TableName() string {
	return "chadwick_register"
}

// TeamSeason is one franchise's season line.
type TeamSeason struct {
	YearID   int    `gorm:"column:yearid" json:"year"`
	TeamID   string `gorm:"column:teamid" json:"team_id"`
	FranchID string `gorm:"column:franchid" json:"franchise_id"`
	Name     string `gorm:"column:name" json:"name"`
	G        int    `gorm:"column:g" json:"games"`
	W        int    `gorm:"column:w" json:"wins"`
	L        int    `gorm:"column:l" json:"losses"`
	R        int    `gorm:"column:r" json:"runs_scored"`
	RA       int    `gorm:"column:ra" json:"runs_allowed"`
}

func (TeamSeason) TableName() string {
	return "lahman_teams"
}

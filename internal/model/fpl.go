package model

// FPL官方bootstrap-static接口的原始响应结构。
// 注意：官方API把form/持有率等浮点字段序列化为字符串（可能为空），由适配器统一转换。
type BootstrapResponse struct {
	Events       []BootstrapEvent       `json:"events"`
	Elements     []BootstrapElement     `json:"elements"`
	Teams        []BootstrapTeam        `json:"teams"`
	ElementTypes []BootstrapElementType `json:"element_types"`
}

// BootstrapEvent 轮次信息（仅取当前轮次标记）
type BootstrapEvent struct {
	ID        int  `json:"id"`
	IsCurrent bool `json:"is_current"`
}

// BootstrapElement 球员原始数据
type BootstrapElement struct {
	ID                int    `json:"id"`
	WebName           string `json:"web_name"`
	Team              int    `json:"team"`         // 外键：Teams.ID
	ElementType       int    `json:"element_type"` // 外键：ElementTypes.ID
	NowCost           int    `json:"now_cost"`
	TotalPoints       int    `json:"total_points"`
	PointsPerGame     string `json:"points_per_game"`
	SelectedByPercent string `json:"selected_by_percent"`
	Form              string `json:"form"`
	Minutes           int    `json:"minutes"`
	GoalsScored       int    `json:"goals_scored"`
	Assists           int    `json:"assists"`
	CleanSheets       int    `json:"clean_sheets"`
	GoalsConceded     int    `json:"goals_conceded"`
	OwnGoals          int    `json:"own_goals"`
	PenaltiesSaved    int    `json:"penalties_saved"`
	PenaltiesMissed   int    `json:"penalties_missed"`
	YellowCards       int    `json:"yellow_cards"`
	RedCards          int    `json:"red_cards"`
	Saves             int    `json:"saves"`
	Bonus             int    `json:"bonus"`
	BPS               int    `json:"bps"`
	Influence         string `json:"influence"`
	Creativity        string `json:"creativity"`
	Threat            string `json:"threat"`
	ICTIndex          string `json:"ict_index"`
	DreamteamCount    int    `json:"dreamteam_count"`
	InDreamteam       bool   `json:"in_dreamteam"`
}

// BootstrapTeam 球队信息
type BootstrapTeam struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// BootstrapElementType 位置信息
type BootstrapElementType struct {
	ID                int    `json:"id"`
	SingularNameShort string `json:"singular_name_short"`
}

// DefensiveRow FBref防守统计表的一行（scrape适配器输出的扁平结构）
type DefensiveRow struct {
	PlayerName       string
	TeamName         string
	PositionRaw      string
	MatchesPlayed    int
	Minutes90s       float64
	Clearances       int
	Blocks           int
	Interceptions    int
	TacklesWon       int
	TacklesAttempted int
}

// PossessionRow FBref控球统计表的一行（仅用于补充夺回球权数）
type PossessionRow struct {
	PlayerName     string
	TeamName       string
	BallRecoveries int
}

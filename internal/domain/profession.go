package domain

// ProfessionInfo describes a player's standing in a crafting profession
type ProfessionInfo struct {
	Name       string `json:"name"`
	Level      int    `json:"level"`
	Experience int64  `json:"experience"`
	XPToNext   int64  `json:"xp_to_next"`
}

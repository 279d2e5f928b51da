package profession

// XP formula constants
const (
	// BaseXP is the base XP value used in level calculations
	BaseXP = 100.0

	// LevelExponent is the exponent used in the XP formula: XP = BaseXP * (Level ^ LevelExponent)
	LevelExponent = 1.5

	// MaxIterationLevel is the maximum level to iterate to when calculating levels
	MaxIterationLevel = 100

	// StartingLevel is the level of a profession with no experience
	StartingLevel = 1
)

// Log messages
const (
	LogMsgExperienceAwarded = "Profession experience awarded"
	LogMsgLevelUp           = "Profession leveled up"
	LogMsgUnknownProfession = "Experience awarded to unknown profession, registering it"
	LogMsgPublishFailed     = "Failed to publish profession event"
)

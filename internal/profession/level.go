package profession

import (
	"math"
)

// CalculateLevel determines the level from total XP. A profession starts at
// StartingLevel and gains one level per BaseXP * (N ^ LevelExponent) earned.
func CalculateLevel(totalXP int64) int {
	level, _ := calculateLevelAndNextXP(totalXP)
	return level
}

// XPForLevel returns the cumulative XP required to reach level
func XPForLevel(level int) int64 {
	steps := level - StartingLevel
	if steps <= 0 {
		return 0
	}

	cumulative := int64(0)
	for i := 1; i <= steps; i++ {
		cumulative += int64(BaseXP * math.Pow(float64(i), LevelExponent))
	}

	return cumulative
}

// XPProgress returns current level and XP needed for next level
func XPProgress(currentXP int64) (currentLevel int, xpToNext int64) {
	var xpForNext int64
	currentLevel, xpForNext = calculateLevelAndNextXP(currentXP)
	xpToNext = xpForNext - currentXP
	return
}

// calculateLevelAndNextXP computes the level and the cumulative XP required for the next level
func calculateLevelAndNextXP(totalXP int64) (int, int64) {
	if totalXP <= 0 {
		return StartingLevel, int64(BaseXP)
	}

	steps := 0
	cumulative := int64(0)

	for steps < MaxIterationLevel {
		next := steps + 1
		xpForNext := int64(BaseXP * math.Pow(float64(next), LevelExponent))

		if cumulative+xpForNext > totalXP {
			return StartingLevel + steps, cumulative + xpForNext
		}
		cumulative += xpForNext
		steps = next
	}

	next := steps + 1
	xpForNext := int64(BaseXP * math.Pow(float64(next), LevelExponent))
	return StartingLevel + steps, cumulative + xpForNext
}

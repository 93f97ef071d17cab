package game

import (
	"fmt"
	"strings"
)

func formatLevelUp(name string, level int) string {
	return fmt.Sprintf("%s reaches level %d and is fully healed.", name, level)
}

func formatVictory(floor string, gold, xp int) string {
	return fmt.Sprintf("%s cleared: +%d gold, +%d xp.", floor, gold, xp)
}

func formatDescend(depth int, floor string, enemies int) string {
	noun := "enemies"
	if enemies == 1 {
		noun = "enemy"
	}
	return fmt.Sprintf("Floor %d, %s: %d %s attack!", depth, floor, enemies, noun)
}

// baseID strips the instance suffix from a spawned enemy ID ("rat#2" -> "rat")
func baseID(instanceID string) string {
	if i := strings.LastIndexByte(instanceID, '#'); i >= 0 {
		return instanceID[:i]
	}
	return instanceID
}

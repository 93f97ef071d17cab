// Package hud draws the heads-up panels: hero stats on the left, the enemy
// roster with intents on the right, and the message log along the bottom.
package hud

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/packdelve/internal/game"
)

// Config defines what to display in the HUD
type Config struct {
	ShowLog    bool    // Show the message log
	LogLines   int     // Number of log lines shown
	PanelWidth int     // Width of the side panels
	Opacity    float64 // Background opacity (0-1)
}

// DefaultConfig returns the standard HUD layout
func DefaultConfig() *Config {
	return &Config{
		ShowLog:    true,
		LogLines:   5,
		PanelWidth: 200,
		Opacity:    0.8,
	}
}

const lineHeight = 16

var (
	barBack    = color.RGBA{60, 20, 20, 255}
	energyFill = color.RGBA{230, 200, 60, 255}
	xpFill     = color.RGBA{120, 120, 230, 255}
)

// HUD manages the heads-up display
type HUD struct {
	config       *Config
	screenWidth  int
	screenHeight int
}

// New creates a new HUD with the given configuration
func New(config *Config, screenWidth, screenHeight int) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	return &HUD{
		config:       config,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// SetScreenSize updates the screen dimensions
func (h *HUD) SetScreenSize(width, height int) {
	h.screenWidth = width
	h.screenHeight = height
}

// Draw renders every panel for snap. target is the highlighted enemy.
func (h *HUD) Draw(screen *ebiten.Image, snap game.Snapshot, target int) {
	h.drawHero(screen, snap, 10, 10)
	if len(snap.Enemies) > 0 {
		h.drawEnemies(screen, snap, target, h.screenWidth-h.config.PanelWidth-10, 10)
	}
	if h.config.ShowLog {
		h.drawLog(screen, snap.Log)
	}
}

func (h *HUD) drawHero(screen *ebiten.Image, snap game.Snapshot, x, y int) {
	hero := snap.Hero
	lines := HeroLines(snap)
	height := 8 + lineHeight + 16 + len(lines)*lineHeight + 16 + 8
	h.drawPanel(screen, x, y, h.config.PanelWidth, height)

	cy := y + 8
	drawText(screen, fmt.Sprintf("%s  Lv %d", hero.Name, hero.Level), x+8, cy)
	cy += lineHeight

	barWidth := h.config.PanelWidth - 16
	drawBar(screen, x+8, cy, barWidth, 12, hero.HP, hero.MaxHP, hpColor(hero.HP, hero.MaxHP))
	drawText(screen, fmt.Sprintf("%d/%d", hero.HP, hero.MaxHP), x+8+barWidth/2-20, cy-1)
	cy += 16

	for _, line := range lines {
		drawText(screen, line, x+8, cy)
		cy += lineHeight
	}

	drawBar(screen, x+8, cy, barWidth, 6, hero.Energy, hero.MaxEnergy, energyFill)
	cy += 8
	drawBar(screen, x+8, cy, barWidth, 4, hero.XP, hero.XPToNextLevel, xpFill)
}

func (h *HUD) drawEnemies(screen *ebiten.Image, snap game.Snapshot, target, x, y int) {
	lines := EnemyLines(snap)
	height := 16 + len(snap.Enemies)*(lineHeight*2+4)
	h.drawPanel(screen, x, y, h.config.PanelWidth, height)

	cy := y + 8
	barWidth := h.config.PanelWidth - 16
	for i, e := range snap.Enemies {
		if i == target && e.Alive {
			vector.StrokeRect(screen, float32(x+4), float32(cy-2), float32(h.config.PanelWidth-8),
				float32(lineHeight*2+2), 1, color.RGBA{230, 200, 60, 255}, false)
		}
		drawText(screen, lines[i], x+8, cy)
		cy += lineHeight
		if e.Alive {
			drawBar(screen, x+8, cy+2, barWidth, 8, e.HP, e.MaxHP, hpColor(e.HP, e.MaxHP))
		}
		cy += lineHeight + 4
	}
}

func (h *HUD) drawLog(screen *ebiten.Image, log []string) {
	n := h.config.LogLines
	if len(log) < n {
		n = len(log)
	}
	if n == 0 {
		return
	}
	height := n*lineHeight + 8
	y := h.screenHeight - height - 10
	h.drawPanel(screen, 10, y, h.screenWidth-20, height)
	for i, line := range log[len(log)-n:] {
		drawText(screen, line, 18, y+4+i*lineHeight)
	}
}

// drawPanel draws the semi-transparent background panel
func (h *HUD) drawPanel(screen *ebiten.Image, x, y, w, height int) {
	alpha := uint8(h.config.Opacity * 255)
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(height), color.RGBA{20, 20, 30, alpha}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(height), 1, color.RGBA{60, 60, 80, alpha}, false)
}

// HeroLines formats the hero's numbers below the HP bar
func HeroLines(snap game.Snapshot) []string {
	hero := snap.Hero
	lines := []string{
		fmt.Sprintf("Energy %d/%d", hero.Energy, hero.MaxEnergy),
		fmt.Sprintf("Mana %d  Block %d", hero.Mana, hero.Block),
		fmt.Sprintf("XP %d/%d", hero.XP, hero.XPToNextLevel),
		fmt.Sprintf("Gold %d  Score %d", snap.Backpack.Gold, snap.Score),
	}
	if snap.Floors > 0 {
		floor := fmt.Sprintf("Floor %d/%d %s", snap.Floor, snap.Floors, snap.FloorName)
		if snap.Round > 0 {
			floor += fmt.Sprintf(" R%d", snap.Round)
		}
		lines = append(lines, floor)
	}
	return lines
}

// EnemyLines formats one header line per roster entry
func EnemyLines(snap game.Snapshot) []string {
	lines := make([]string, len(snap.Enemies))
	for i, e := range snap.Enemies {
		if !e.Alive {
			lines[i] = fmt.Sprintf("%d. %s (defeated)", i+1, e.Name)
			continue
		}
		line := fmt.Sprintf("%d. %s %d/%d", i+1, e.Name, e.HP, e.MaxHP)
		if e.Block > 0 {
			line += fmt.Sprintf(" [%d]", e.Block)
		}
		if e.Intent != "" {
			line += " > " + e.Intent
		}
		lines[i] = line
	}
	return lines
}

// hpColor shades a health bar green, yellow or red
func hpColor(hp, maxHP int) color.RGBA {
	if maxHP <= 0 {
		return color.RGBA{200, 50, 50, 255}
	}
	pct := float64(hp) / float64(maxHP)
	switch {
	case pct > 0.6:
		return color.RGBA{50, 180, 50, 255}
	case pct > 0.3:
		return color.RGBA{200, 180, 50, 255}
	default:
		return color.RGBA{200, 50, 50, 255}
	}
}

func drawBar(screen *ebiten.Image, x, y, w, height, value, maxValue int, fill color.Color) {
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(height), barBack, false)
	if maxValue <= 0 || value <= 0 {
		return
	}
	fw := w * min(value, maxValue) / maxValue
	if fw < 1 {
		fw = 1
	}
	vector.FillRect(screen, float32(x), float32(y), float32(fw), float32(height), fill, false)
}

// drawText draws text with a shadow for readability
func drawText(screen *ebiten.Image, text string, x, y int) {
	ebitenutil.DebugPrintAt(screen, text, x+1, y+1)
	ebitenutil.DebugPrintAt(screen, text, x, y)
}

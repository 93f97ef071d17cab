package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/packdelve/leaderboard"
)

// State is the screen currently shown
type State int

const (
	StateMainMenu State = iota
	StatePlaying
)

// Choice is a main menu entry
type Choice int

const (
	ChoiceNone Choice = iota
	ChoiceNewRun
	ChoiceScores
	ChoiceQuit
)

var menuEntries = []struct {
	choice Choice
	label  string
}{
	{ChoiceNewRun, "New Run"},
	{ChoiceScores, "Top Scores"},
	{ChoiceQuit, "Quit"},
}

const (
	menuX      = 60
	menuY      = 140
	menuEntryH = 30
	menuEntryW = 240
)

// MainMenu is the title screen
type MainMenu struct {
	selected   int
	showScores bool
	lastClick  bool
}

// Move shifts the selection, wrapping at both ends
func (m *MainMenu) Move(delta int) {
	n := len(menuEntries)
	m.selected = ((m.selected+delta)%n + n) % n
}

// Selected returns the highlighted entry
func (m *MainMenu) Selected() Choice {
	return menuEntries[m.selected].choice
}

// EntryAt returns the index of the entry under a screen point, or -1
func (m *MainMenu) EntryAt(x, y int) int {
	for i := range menuEntries {
		r := rect{x: menuX, y: menuY + i*menuEntryH, w: menuEntryW, h: menuEntryH - 4}
		if pointInRect(x, y, r) {
			return i
		}
	}
	return -1
}

// Update reads input for one frame and returns the activated entry
func (m *MainMenu) Update() Choice {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		m.Move(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		m.Move(1)
	}

	// Click on press edge only
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	clicked := pressed && !m.lastClick
	m.lastClick = pressed
	if clicked {
		if i := m.EntryAt(ebiten.CursorPosition()); i >= 0 {
			m.selected = i
			return m.activate()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return m.activate()
	}
	return ChoiceNone
}

func (m *MainMenu) activate() Choice {
	choice := m.Selected()
	if choice == ChoiceScores {
		m.showScores = !m.showScores
	}
	return choice
}

// Draw renders the title, the entries and optionally the leaderboard
func (m *MainMenu) Draw(screen *ebiten.Image, scores []leaderboard.Entry, height int) {
	screen.Fill(color.RGBA{20, 20, 30, 255})
	ebitenutil.DebugPrintAt(screen, "P A C K D E L V E", menuX, 60)
	ebitenutil.DebugPrintAt(screen, "Four floors down. Pack wisely.", menuX, 80)

	for i, e := range menuEntries {
		y := menuY + i*menuEntryH
		if i == m.selected {
			vector.FillRect(screen, float32(menuX-6), float32(y-4), menuEntryW, menuEntryH-4, color.RGBA{60, 90, 60, 255}, false)
		}
		ebitenutil.DebugPrintAt(screen, e.label, menuX, y)
	}

	if m.showScores {
		y := menuY + len(menuEntries)*menuEntryH + 30
		ebitenutil.DebugPrintAt(screen, "Top scores:", menuX, y)
		if len(scores) == 0 {
			ebitenutil.DebugPrintAt(screen, "  none yet", menuX, y+18)
		}
		for i, e := range scores {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d. %-12s %5d  Lv %d", i+1, e.Name, e.Score, e.Level), menuX, y+18*(i+1))
		}
	}

	ebitenutil.DebugPrintAt(screen, "Arrows and Enter, or click. Esc quits.", 20, height-40)
}

type rect struct {
	x, y, w, h int
}

func pointInRect(px, py int, r rect) bool {
	return px >= r.x && px <= r.x+r.w && py >= r.y && py <= r.y+r.h
}

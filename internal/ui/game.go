// Package ui is the desktop front-end: it draws a session with ebiten and
// maps key presses to session actions.
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"chosenoffset.com/packdelve/action"
	"chosenoffset.com/packdelve/contract"
	"chosenoffset.com/packdelve/grid"
	"chosenoffset.com/packdelve/hud"
	"chosenoffset.com/packdelve/internal/control"
	"chosenoffset.com/packdelve/internal/game"
	"chosenoffset.com/packdelve/item"
	"chosenoffset.com/packdelve/leaderboard"
)

const (
	ScreenWidth  = 800
	ScreenHeight = 600
	cellSize     = 48
)

// keymap is scanned in order, so keys pressed in the same frame apply in a
// fixed sequence
var keymap = []struct {
	key ebiten.Key
	cmd control.Command
}{
	{ebiten.KeyArrowUp, control.CmdUp},
	{ebiten.KeyArrowDown, control.CmdDown},
	{ebiten.KeyArrowLeft, control.CmdLeft},
	{ebiten.KeyArrowRight, control.CmdRight},
	{ebiten.KeySpace, control.CmdPick},
	{ebiten.KeyBackspace, control.CmdCancel},
	{ebiten.KeyR, control.CmdRotate},
	{ebiten.KeyX, control.CmdDiscard},
	{ebiten.KeyDigit1, control.CmdAttack1},
	{ebiten.KeyDigit2, control.CmdAttack2},
	{ebiten.KeyDigit3, control.CmdAttack3},
	{ebiten.KeyD, control.CmdDefend},
	{ebiten.KeyU, control.CmdUse},
	{ebiten.KeyTab, control.CmdTarget},
	{ebiten.KeyL, control.CmdLoot},
	{ebiten.KeyT, control.CmdTake},
	{ebiten.KeyE, control.CmdEndTurn},
	{ebiten.KeyN, control.CmdNext},
}

var kindColors = map[item.Kind]color.RGBA{
	item.KindWeapon:    {170, 70, 60, 255},
	item.KindArmor:     {80, 110, 170, 255},
	item.KindManaStone: {120, 80, 180, 255},
	item.KindGold:      {200, 170, 50, 255},
}

// Game implements ebiten.Game around one session at a time
type Game struct {
	state      State
	menu       MainMenu
	session    *game.Session
	newSession func() (*game.Session, error)
	scores     func() []leaderboard.Entry
	snap       game.Snapshot

	width, height int

	ctrl   control.Controller
	hud    *hud.HUD
	logger *zap.Logger
}

// New creates the front-end on the main menu. scores supplies the
// leaderboard shown there and may be nil.
func New(factory func() (*game.Session, error), scores func() []leaderboard.Entry, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	if scores == nil {
		scores = func() []leaderboard.Entry { return nil }
	}
	return &Game{
		state:      StateMainMenu,
		newSession: factory,
		scores:     scores,
		hud:        hud.New(nil, ScreenWidth, ScreenHeight),
		width:      ScreenWidth,
		height:     ScreenHeight,
		logger:     logger.Named("ui"),
	}
}

func (g *Game) restart() error {
	s, err := g.newSession()
	if err != nil {
		return err
	}
	g.session = s
	g.ctrl = control.Controller{}
	g.snap = s.Snapshot()
	g.state = StatePlaying
	g.logger.Debug("run started", zap.String("session", s.ID))
	return nil
}

// Update handles input for one frame
func (g *Game) Update() error {
	if g.state == StateMainMenu {
		return g.updateMenu()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.state = StateMainMenu
		return nil
	}
	if g.snap.Phase.IsOver() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			return g.restart()
		}
		return nil
	}

	for _, k := range keymap {
		if !inpututil.IsKeyJustPressed(k.key) {
			continue
		}
		if a, ok := g.ctrl.Handle(k.cmd, g.snap); ok {
			g.apply(a)
		}
	}
	return nil
}

func (g *Game) updateMenu() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	switch g.menu.Update() {
	case ChoiceNewRun:
		return g.restart()
	case ChoiceQuit:
		return ebiten.Termination
	}
	return nil
}

func (g *Game) apply(a action.Action) {
	var err error
	func() {
		defer contract.Recover(&err)
		g.session.Apply(a)
	}()
	if err != nil {
		g.logger.Error("action violated a contract", zap.Stringer("action", a), zap.Error(err))
	}
	g.snap = g.session.Snapshot()
}

// Draw renders the current snapshot
func (g *Game) Draw(screen *ebiten.Image) {
	if g.state == StateMainMenu {
		g.menu.Draw(screen, g.scores(), g.height)
		return
	}

	screen.Fill(color.RGBA{20, 20, 30, 255})

	ox, oy := g.gridOrigin()
	g.drawBackpack(screen, ox, oy)
	g.drawLoot(screen, ox, oy+g.snap.Backpack.Height*cellSize+12)
	g.hud.Draw(screen, g.snap, g.ctrl.Target)
	ebitenutil.DebugPrintAt(screen, helpLine(g.snap.Phase), 10, g.height-18)
	if g.snap.OnPace {
		ebitenutil.DebugPrintAt(screen, "On pace for a top score", ox, oy-36)
	}

	if g.snap.Phase.IsOver() {
		g.drawGameOver(screen)
	}
}

// Layout follows the window size, never going below the initial size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, ScreenWidth), max(outsideHeight, ScreenHeight)
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.hud.SetScreenSize(w, h)
	}
	return w, h
}

func (g *Game) gridOrigin() (int, int) {
	w := g.snap.Backpack.Width * cellSize
	return (g.width - w) / 2, 200
}

func (g *Game) drawBackpack(screen *ebiten.Image, ox, oy int) {
	bp := g.snap.Backpack
	for y := 0; y < bp.Height; y++ {
		for x := 0; x < bp.Width; x++ {
			px, py := float32(ox+x*cellSize), float32(oy+y*cellSize)
			vector.FillRect(screen, px+1, py+1, cellSize-2, cellSize-2, color.RGBA{40, 40, 55, 255}, false)
		}
	}

	held, holding := g.ctrl.Holding()
	for _, p := range bp.Items {
		clr := kindColors[p.Item.Kind]
		if holding && p.Anchor == held {
			clr.A = 120
		}
		for _, cell := range p.Cells {
			px, py := float32(ox+cell.X*cellSize), float32(oy+cell.Y*cellSize)
			vector.FillRect(screen, px+2, py+2, cellSize-4, cellSize-4, clr, false)
		}
		ax, ay := ox+p.Anchor.X*cellSize+6, oy+p.Anchor.Y*cellSize+4
		ebitenutil.DebugPrintAt(screen, abbreviate(p.Item.Name), ax, ay)
	}

	g.drawCursor(screen, ox, oy, g.ctrl.Cursor)
}

func (g *Game) drawCursor(screen *ebiten.Image, ox, oy int, pos grid.Position) {
	px, py := float32(ox+pos.X*cellSize), float32(oy+pos.Y*cellSize)
	vector.StrokeRect(screen, px, py, cellSize, cellSize, 2, color.RGBA{240, 240, 240, 255}, false)

	for _, p := range g.snap.Backpack.Items {
		for _, cell := range p.Cells {
			if cell == pos {
				ebitenutil.DebugPrintAt(screen, describe(p.Item), ox, oy-18)
				return
			}
		}
	}
}

func (g *Game) drawLoot(screen *ebiten.Image, x, y int) {
	if len(g.snap.Loot) == 0 {
		return
	}
	ebitenutil.DebugPrintAt(screen, "On the floor:", x, y)
	for i, d := range g.snap.Loot {
		marker := "  "
		if i == g.ctrl.Loot {
			marker = "> "
		}
		ebitenutil.DebugPrintAt(screen, marker+describe(d), x, y+16*(i+1))
	}
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	vector.FillRect(screen, 200, 150, 400, 260, color.RGBA{0, 0, 0, 220}, false)
	title := "VICTORY"
	if g.snap.Phase == game.PhaseDefeat {
		title = "YOU DIED"
	}
	ebitenutil.DebugPrintAt(screen, title, 220, 170)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score %d  Level %d", g.snap.Score, g.snap.Hero.Level), 220, 195)
	ebitenutil.DebugPrintAt(screen, "Top scores:", 220, 230)
	for i, e := range g.snap.Scores {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d. %-12s %5d  Lv %d", i+1, e.Name, e.Score, e.Level), 230, 250+i*18)
	}
	ebitenutil.DebugPrintAt(screen, "Enter: new run   Esc: menu", 220, 380)
}

func helpLine(phase game.Phase) string {
	var cat action.Category
	switch phase {
	case game.PhaseCombat:
		cat = action.CategoryCombat
	case game.PhaseExploring:
		cat = action.CategoryDungeon
	default:
		return ""
	}
	line := ""
	for _, info := range append(action.ByCategory(cat), action.ByCategory(action.CategoryInventory)...) {
		line += fmt.Sprintf("%s:%s  ", info.Hotkey, info.Name)
	}
	return line
}

func abbreviate(name string) string {
	if len(name) > 5 {
		return name[:5]
	}
	return name
}

func describe(d item.Definition) string {
	switch d.Kind {
	case item.KindWeapon:
		return fmt.Sprintf("%s  dmg %d  energy %d", d.Name, d.Damage, d.EnergyCost)
	case item.KindArmor:
		return fmt.Sprintf("%s  block %d  energy %d", d.Name, d.Protection, d.EnergyCost)
	case item.KindManaStone:
		return fmt.Sprintf("%s  mana +%d", d.Name, d.Mana)
	case item.KindGold:
		return fmt.Sprintf("%s  %d coins", d.Name, d.Amount)
	}
	return d.Name
}

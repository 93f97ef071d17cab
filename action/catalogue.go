package action

// Info describes an action for help screens
type Info struct {
	Type        Type
	Name        string
	Description string
	Category    Category
	Hotkey      string // Suggested keyboard shortcut
}

var catalogue = map[Type]Info{}

// order keeps help output stable
var order []Type

func register(info Info) {
	catalogue[info.Type] = info
	order = append(order, info.Type)
}

func init() {
	register(Info{TypeAttack, "Attack", "Strike an enemy with the weapon under the cursor", CategoryCombat, "1-3"})
	register(Info{TypeDefend, "Defend", "Raise the armor under the cursor", CategoryCombat, "D"})
	register(Info{TypeUseItem, "Use", "Use the item under the cursor on the selected enemy", CategoryCombat, "U"})
	register(Info{TypeEndTurn, "End Turn", "Let the enemies act", CategoryCombat, "E"})
	register(Info{TypeMove, "Move", "Pick up and drop an item", CategoryInventory, "Space"})
	register(Info{TypeRotate, "Rotate", "Rotate the item under the cursor", CategoryInventory, "R"})
	register(Info{TypeDiscard, "Discard", "Drop the item under the cursor on the floor", CategoryInventory, "X"})
	register(Info{TypeTakeLoot, "Take", "Put the selected floor item at the cursor", CategoryInventory, "T"})
	register(Info{TypeNextEncounter, "Descend", "Go down to the next floor", CategoryDungeon, "N"})
}

// Lookup returns the description of an action type
func Lookup(t Type) (Info, bool) {
	info, ok := catalogue[t]
	return info, ok
}

// All returns every action description in a stable order
func All() []Info {
	out := make([]Info, 0, len(order))
	for _, t := range order {
		out = append(out, catalogue[t])
	}
	return out
}

// ByCategory returns the actions in one category
func ByCategory(c Category) []Info {
	var out []Info
	for _, t := range order {
		if catalogue[t].Category == c {
			out = append(out, catalogue[t])
		}
	}
	return out
}

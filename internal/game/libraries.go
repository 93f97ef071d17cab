package game

import (
	"fmt"

	"chosenoffset.com/packdelve/entity"
	"chosenoffset.com/packdelve/internal/config"
	"chosenoffset.com/packdelve/item"
)

// LoadLibraries reads the item and enemy data files named in cfg. An empty
// path selects the built-in library.
func LoadLibraries(cfg config.DataConfig) (*item.Library, *entity.Library, error) {
	items := item.DefaultLibrary()
	if cfg.Items != "" {
		lib, err := item.LoadLibrary(cfg.Items)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load items: %w", err)
		}
		items = lib
	}

	enemies := entity.DefaultLibrary()
	if cfg.Enemies != "" {
		lib, err := entity.LoadLibrary(cfg.Enemies)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load enemies: %w", err)
		}
		enemies = lib
	}
	return items, enemies, nil
}

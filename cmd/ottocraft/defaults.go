package main

import (
	"embed"
	"io/fs"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/logger"
	"github.com/hammamikhairi/ottocraft/internal/provider"
	"github.com/hammamikhairi/ottocraft/internal/recipe"
)

//go:embed defaults
var defaultsFS embed.FS

// defaultRecipes is extracted into recipe folders that do not exist yet.
func defaultRecipes() fs.FS {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}

// gemIDKey is the custom data key the demo gem items carry.
const gemIDKey = "gems:id"

// demoProviders returns the external item providers the CLI ships with.
func demoProviders() []domain.Provider {
	return []domain.Provider{
		provider.NewKeyed("gems", gemIDKey, map[string]*domain.Item{
			"ruby": {Type: "EMERALD", Amount: 1, Meta: &domain.ItemMeta{
				DisplayName:     "Ruby",
				CustomModelData: 1001,
			}},
			"sapphire": {Type: "DIAMOND", Amount: 1, Meta: &domain.ItemMeta{
				DisplayName:     "Sapphire",
				CustomModelData: 1002,
			}},
		}),
	}
}

// logSink stands in for a host recipe manager: it logs what would be
// installed.
type logSink struct {
	log *logger.Logger
}

func (s logSink) Install(key string, def *recipe.Definition) error {
	s.log.Debug("install %s (%s)", key, def.Kind())
	return nil
}

func (s logSink) Uninstall(key string) {
	s.log.Debug("uninstall %s", key)
}

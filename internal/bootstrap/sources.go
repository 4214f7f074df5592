// AngelaMos | 2026
// sources.go

package bootstrap

import (
	"github.com/carterperez-dev/heritage-museum/internal/catalog"
	"github.com/carterperez-dev/heritage-museum/internal/config"
)

func CatalogSources(c catalog.Collections, storage config.StorageConfig) []Source {
	return []Source{
		{Seeder: c.Temples, File: storage.TemplesFile},
		{Seeder: c.Weapons, File: storage.WeaponsFile},
		{Seeder: c.Fossils, File: storage.FossilsFile},
	}
}

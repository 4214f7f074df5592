// AngelaMos | 2026
// collections.go

package catalog

import (
	"log/slog"

	"github.com/carterperez-dev/heritage-museum/internal/config"
)

type Collections struct {
	Temples *Collection[Temple]
	Weapons *Collection[Weapon]
	Fossils *Collection[Fossil]
}

// NewCollections wires the three kinds to Postgres. Mirror files are written
// to the data dir, next to the seed files they replace.
func NewCollections(
	db Store,
	storage config.StorageConfig,
	logger *slog.Logger,
) Collections {
	mirror := NewMirror(storage.DataDir)

	return Collections{
		Temples: NewCollection[Temple](
			KindTemples, NewTempleRepository(db), mirror, storage.TemplesFile, logger,
		),
		Weapons: NewCollection[Weapon](
			KindWeapons, NewWeaponRepository(db), mirror, storage.WeaponsFile, logger,
		),
		Fossils: NewCollection[Fossil](
			KindFossils, NewFossilRepository(db), mirror, storage.FossilsFile, logger,
		),
	}
}

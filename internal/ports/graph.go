package ports

import "rocrate-convert/internal/types"

type GraphSourcePort interface {
	LoadEntities(path string) ([]types.Entity, error)
}

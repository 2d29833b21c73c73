package ports

import "rocrate-convert/internal/types"

type MappingSourcePort interface {
	LoadMapping(path string) (types.Mapping, error)
}

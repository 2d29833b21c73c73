package app

import (
	"rocrate-convert/internal/adapters"
	"rocrate-convert/internal/ports"
)

type Service struct {
	Graph   ports.GraphSourcePort
	Mapping ports.MappingSourcePort
	Sink    ports.DocumentSinkPort
}

func NewService() Service {
	return Service{
		Graph:   adapters.NewGraphFileAdapter(),
		Mapping: adapters.NewMappingFileAdapter(),
		Sink:    adapters.NewOutputFileAdapter(),
	}
}

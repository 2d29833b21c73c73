package app

import "rocrate-convert/internal/types"

type ConvertRequest struct {
	InputPath   string
	MappingPath string
	OutputPath  string
}

type ConvertResult struct {
	OutputPath   string
	Documents    int
	Hierarchical bool
	Profile      types.OutputProfile
}

type InspectRequest struct {
	InputPath string
}

type InspectResult struct {
	Entities     int
	Datasets     int
	Hierarchical bool
	Classifiers  map[string]int
}

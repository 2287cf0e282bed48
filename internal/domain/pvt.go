package domain

// Range is a nominal value with its sweep limits.
type Range struct {
	Nominal float64
	Min     float64
	Max     float64
}

// Corners lists the process corners; Nominal is the default.
type Corners struct {
	Nominal string
	All     []string
}

// PVT holds the process/voltage/temperature settings of a fixture.
type PVT struct {
	Corner      Corners
	Voltage     Range
	Temperature Range
}

// GlobalSettings is the shared configuration document referenced by
// fixtures: model library includes plus the PVT definition.
type GlobalSettings struct {
	Path    string
	Include []string
	PVT     PVT
}

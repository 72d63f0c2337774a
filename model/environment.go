package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownEnvironment = errors.New("unknown environment type")

// EnvironmentType tags the kind of space being planned. It drives the
// effective coverage radius and which interference catalog entries apply.
type EnvironmentType string

const (
	EnvOffice     EnvironmentType = "office"
	EnvWarehouse  EnvironmentType = "warehouse"
	EnvDataCenter EnvironmentType = "data_center"
)

// ParseEnvironment maps a string (e.g. from a scenario file) to an
// EnvironmentType. Unknown values are an error, never a silent default:
// skipping interference analysis would make a plan look cleaner than it is.
func ParseEnvironment(s string) (EnvironmentType, error) {
	switch EnvironmentType(strings.ToLower(strings.TrimSpace(s))) {
	case EnvOffice:
		return EnvOffice, nil
	case EnvWarehouse:
		return EnvWarehouse, nil
	case EnvDataCenter:
		return EnvDataCenter, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, s)
	}
}

package query

import "github.com/achilleasa/go-bvhquery/config"

// ErrInvalidCapacity is returned when opts.Capacity is outside the fixed
// traversal-capacity set, matching the teacher's errors.New-sentinel style
// in renderer/errors.go (§7).
var ErrInvalidCapacity = config.ErrInvalidCapacity

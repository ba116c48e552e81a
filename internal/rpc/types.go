// Package rpc exposes the viewer's control surface as a JSON-RPC 2.0
// service over loopback HTTP, plus the matching client used by the
// command-line tool.
package rpc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAngle parses an angle string: a "d"/"D" suffix means degrees, an
// "r"/"R" suffix or no suffix means radians.
func ParseAngle(s string) (float32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty angle string")
	}

	switch s[len(s)-1] {
	case 'd', 'D':
		num := s[:len(s)-1]
		degrees, err := strconv.ParseFloat(num, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid number in angle: %s", num)
		}
		return float32(degrees * math.Pi / 180), nil

	case 'r', 'R':
		num := s[:len(s)-1]
		radians, err := strconv.ParseFloat(num, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid number in angle: %s", num)
		}
		return float32(radians), nil

	default:
		radians, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid angle format %q: use '90d' for degrees or '1.57r' for radians", s)
		}
		return float32(radians), nil
	}
}

// StatsResponse is the get_stats result.
type StatsResponse struct {
	Vertices   int  `json:"vertices"`
	Edges      int  `json:"edges"`
	Faces      int  `json:"faces"`
	IsManifold bool `json:"is_manifold"`
	Holes      int  `json:"holes"`
}

package road

import "fmt"

// ParseProfile maps a config/scene profile name to a Profile.
// The empty string keeps def.
func ParseProfile(s string, def Profile) (Profile, error) {
	switch s {
	case "":
		return def, nil
	case "basic":
		return ProfileBasic, nil
	case "extended":
		return ProfileExtended, nil
	}
	return def, fmt.Errorf("unknown road profile %q", s)
}

// ParseDirection maps a direction policy name to a DirectionPolicy.
// The empty string keeps def.
func ParseDirection(s string, def DirectionPolicy) (DirectionPolicy, error) {
	switch s {
	case "":
		return def, nil
	case "averaged":
		return DirAveraged, nil
	case "forward":
		return DirForward, nil
	}
	return def, fmt.Errorf("unknown direction policy %q", s)
}

// ParseSmoothingPolicy maps a smoothing policy name to a
// SmoothingPolicy. The empty string keeps def.
func ParseSmoothingPolicy(s string, def SmoothingPolicy) (SmoothingPolicy, error) {
	switch s {
	case "":
		return def, nil
	case "average":
		return SmoothAverage, nil
	case "simplify":
		return SmoothSimplify, nil
	case "none":
		return SmoothNone, nil
	}
	return def, fmt.Errorf("unknown smoothing policy %q", s)
}

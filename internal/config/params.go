package config

import (
	"fmt"

	"github.com/strayfield/roadgrade/internal/road"
)

// Params converts the configured road defaults into builder settings.
func (r RoadConfig) Params() (road.Params, error) {
	p := road.DefaultParams()

	if r.Width != 0 {
		p.Width = r.Width
	}
	if r.Thickness != 0 {
		p.Thickness = r.Thickness
	}
	if r.HitboxMargin != 0 {
		p.HitboxMargin = r.HitboxMargin
	}

	var err error
	if p.Profile, err = road.ParseProfile(r.Profile, p.Profile); err != nil {
		return road.Params{}, err
	}
	if p.Direction, err = road.ParseDirection(r.Direction, p.Direction); err != nil {
		return road.Params{}, err
	}
	if p.Smoothing.Policy, err = road.ParseSmoothingPolicy(r.Smoothing.Policy, p.Smoothing.Policy); err != nil {
		return road.Params{}, err
	}
	if r.Smoothing.Window != 0 {
		p.Smoothing.Window = r.Smoothing.Window
	}
	if r.Smoothing.Tolerance != 0 {
		p.Smoothing.Tolerance = r.Smoothing.Tolerance
	}

	if err := p.Validate(); err != nil {
		return road.Params{}, fmt.Errorf("road config: %w", err)
	}
	return p, nil
}

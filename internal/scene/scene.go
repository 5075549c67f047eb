// Package scene loads road scene descriptions from YAML files.
package scene

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/strayfield/roadgrade/internal/road"
	"github.com/strayfield/roadgrade/internal/terrain"
)

// Scene describes one road and, optionally, the terrain it is graded
// into. Points are world-space [x, y, z] triples in traversal order.
type Scene struct {
	Name    string       `yaml:"name"`
	Road    RoadSpec     `yaml:"road"`
	Points  [][]float32  `yaml:"points"`
	Terrain *TerrainSpec `yaml:"terrain,omitempty"`
}

// RoadSpec overrides the configured road defaults. Zero-valued fields
// keep the default.
type RoadSpec struct {
	Width        float32       `yaml:"width"`
	Thickness    float32       `yaml:"thickness"`
	HitboxMargin float32       `yaml:"hitbox_margin"`
	Profile      string        `yaml:"profile"`   // basic | extended
	Direction    string        `yaml:"direction"` // averaged | forward
	Smoothing    SmoothingSpec `yaml:"smoothing"`
}

// SmoothingSpec selects and tunes centerline smoothing.
type SmoothingSpec struct {
	Policy    string  `yaml:"policy"` // average | simplify | none
	Window    int     `yaml:"window"`
	Tolerance float32 `yaml:"tolerance"`
}

// TerrainSpec describes the heightfield the road is graded into.
type TerrainSpec struct {
	Width          int       `yaml:"width"`
	Height         int       `yaml:"height"`
	CellSize       float32   `yaml:"cell_size"`
	VerticalExtent float32   `yaml:"vertical_extent"`
	BaseHeight     float32   `yaml:"base_height"` // Initial normalized height
	NeighborRadius int       `yaml:"neighbor_radius"`
	Origin         []float32 `yaml:"origin"` // Optional [x, y, z]
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}

	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scene %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks shape errors a later stage could not report clearly.
func (s *Scene) Validate() error {
	for i, p := range s.Points {
		if len(p) != 3 {
			return fmt.Errorf("point %d has %d components, want 3", i, len(p))
		}
	}

	if _, err := road.ParseProfile(s.Road.Profile, road.ProfileBasic); err != nil {
		return err
	}
	if _, err := road.ParseDirection(s.Road.Direction, road.DirAveraged); err != nil {
		return err
	}
	if _, err := road.ParseSmoothingPolicy(s.Road.Smoothing.Policy, road.SmoothAverage); err != nil {
		return err
	}

	if t := s.Terrain; t != nil {
		if t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("terrain size %dx%d, want positive", t.Width, t.Height)
		}
		if t.NeighborRadius < 0 {
			return fmt.Errorf("terrain neighbor radius %d is negative", t.NeighborRadius)
		}
		if t.BaseHeight < 0 || t.BaseHeight > 1 {
			return fmt.Errorf("terrain base height %v outside [0,1]", t.BaseHeight)
		}
		if t.Origin != nil && len(t.Origin) != 3 {
			return fmt.Errorf("terrain origin has %d components, want 3", len(t.Origin))
		}
	}
	return nil
}

// PathPoints returns the scene's points as vectors.
func (s *Scene) PathPoints() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(s.Points))
	for i, p := range s.Points {
		out[i] = mgl32.Vec3{p[0], p[1], p[2]}
	}
	return out
}

// BuilderParams overlays the scene's road settings on the given
// defaults and validates the result.
func (s *Scene) BuilderParams(defaults road.Params) (road.Params, error) {
	p := defaults

	if s.Road.Width != 0 {
		p.Width = s.Road.Width
	}
	if s.Road.Thickness != 0 {
		p.Thickness = s.Road.Thickness
	}
	if s.Road.HitboxMargin != 0 {
		p.HitboxMargin = s.Road.HitboxMargin
	}

	var err error
	if p.Profile, err = road.ParseProfile(s.Road.Profile, p.Profile); err != nil {
		return road.Params{}, err
	}
	if p.Direction, err = road.ParseDirection(s.Road.Direction, p.Direction); err != nil {
		return road.Params{}, err
	}
	if p.Smoothing.Policy, err = road.ParseSmoothingPolicy(s.Road.Smoothing.Policy, p.Smoothing.Policy); err != nil {
		return road.Params{}, err
	}
	if s.Road.Smoothing.Window != 0 {
		p.Smoothing.Window = s.Road.Smoothing.Window
	}
	if s.Road.Smoothing.Tolerance != 0 {
		p.Smoothing.Tolerance = s.Road.Smoothing.Tolerance
	}

	if err := p.Validate(); err != nil {
		return road.Params{}, fmt.Errorf("road settings: %w", err)
	}
	return p, nil
}

// BuildHeightfield allocates the heightfield described by the terrain
// block, filled to the base height.
func (t *TerrainSpec) BuildHeightfield() (*terrain.Heightfield, error) {
	hf, err := terrain.NewHeightfield(t.Width, t.Height, t.CellSize, t.VerticalExtent)
	if err != nil {
		return nil, err
	}
	if t.Origin != nil {
		hf.Origin = mgl32.Vec3{t.Origin[0], t.Origin[1], t.Origin[2]}
	}
	hf.Fill(t.BaseHeight)
	return hf, nil
}

package prefabs

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	data, err := Load(filename)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return decodeSpec[T](filename, data)
}

// LoadSpecFile reads a spec from an arbitrary path, bypassing the prefab
// directory and the embedded copies.
func LoadSpecFile[T any](path string) (T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("prefabs: read %s: %w", path, err)
	}
	return decodeSpec[T](path, data)
}

func decodeSpec[T any](name string, data []byte) (T, error) {
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		var zero T
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

// SpriteSpec describes a procedurally generated sprite. Shape is one of
// "rect", "circle", "hills", "clouds" or "stars".
type SpriteSpec struct {
	Shape   string     `yaml:"shape"`
	Width   int        `yaml:"width"`
	Height  int        `yaml:"height"`
	Color   *YAMLColor `yaml:"color"`
	Accent  *YAMLColor `yaml:"accent"`
	Seed    int64      `yaml:"seed"`
	OriginX float64    `yaml:"origin_x"`
	OriginY float64    `yaml:"origin_y"`
	Center  bool       `yaml:"center"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

type PlayerSpec struct {
	Name                  string          `yaml:"name"`
	MoveSpeed             float64         `yaml:"move_speed"`
	Acceleration          float64         `yaml:"acceleration"`
	Deceleration          float64         `yaml:"deceleration"`
	RotateTowardsMovement bool            `yaml:"rotate_towards_movement"`
	RotationSpeed         float64         `yaml:"rotation_speed"`
	Transform             TransformSpec   `yaml:"transform"`
	Collider              ColliderSpec    `yaml:"collider"`
	Sprite                SpriteSpec      `yaml:"sprite"`
	RenderLayer           RenderLayerSpec `yaml:"render_layer"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CameraSpec struct {
	Name       string        `yaml:"name"`
	Transform  TransformSpec `yaml:"transform"`
	Target     string        `yaml:"target"`
	Zoom       float64       `yaml:"zoom"`
	Smoothness float64       `yaml:"smoothness"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ParallaxLayerSpec configures one background plane.
type ParallaxLayerSpec struct {
	Name        string          `yaml:"name"`
	Strength    float64         `yaml:"strength"`
	DriftSpeed  float64         `yaml:"drift_speed"`
	WrapEnabled *bool           `yaml:"wrap_enabled"`
	WrapMargin  float64         `yaml:"wrap_margin"`
	Count       int             `yaml:"count"`
	SpacingX    float64         `yaml:"spacing_x"`
	SpacingY    float64         `yaml:"spacing_y"`
	Transform   TransformSpec   `yaml:"transform"`
	Sprite      SpriteSpec      `yaml:"sprite"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

// Wrap returns WrapEnabled, defaulting to true when unset.
func (s ParallaxLayerSpec) Wrap() bool {
	if s.WrapEnabled == nil {
		return true
	}
	return *s.WrapEnabled
}

type ParallaxSpec struct {
	Layers []ParallaxLayerSpec `yaml:"layers"`
}

func LoadParallaxSpec() (*ParallaxSpec, error) {
	spec, err := LoadSpec[ParallaxSpec]("parallax.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Find returns the layer spec with the given name.
func (s *ParallaxSpec) Find(name string) (ParallaxLayerSpec, bool) {
	if s == nil {
		return ParallaxLayerSpec{}, false
	}
	for _, l := range s.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return ParallaxLayerSpec{}, false
}

type ProgressBarSpec struct {
	OffsetX    float64    `yaml:"offset_x"`
	OffsetY    float64    `yaml:"offset_y"`
	Width      float64    `yaml:"width"`
	Height     float64    `yaml:"height"`
	Fill       *YAMLColor `yaml:"fill"`
	Background *YAMLColor `yaml:"background"`
}

type PickupSpec struct {
	Name          string          `yaml:"name"`
	Radius        float64         `yaml:"radius"`
	PickupTime    float64         `yaml:"pickup_time"`
	DecreaseDelay float64         `yaml:"decrease_delay"`
	DecreaseSpeed float64         `yaml:"decrease_speed"`
	Bar           ProgressBarSpec `yaml:"bar"`
	Sprite        SpriteSpec      `yaml:"sprite"`
	RenderLayer   RenderLayerSpec `yaml:"render_layer"`
}

func LoadPickupSpec() (*PickupSpec, error) {
	spec, err := LoadSpec[PickupSpec]("pickup.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ItemPlacement struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

type LevelSpec struct {
	Name         string          `yaml:"name"`
	Width        float64         `yaml:"width"`
	Height       float64         `yaml:"height"`
	SpawnX       float64         `yaml:"spawn_x"`
	SpawnY       float64         `yaml:"spawn_y"`
	LevelTime    float64         `yaml:"level_time"`
	TimerEnabled *bool           `yaml:"timer_enabled"`
	BannerTime   float64         `yaml:"banner_time"`
	Items        []ItemPlacement `yaml:"items"`
	Floor        SpriteSpec      `yaml:"floor"`
}

// Timer returns TimerEnabled, defaulting to true when unset.
func (s LevelSpec) Timer() bool {
	if s.TimerEnabled == nil {
		return true
	}
	return *s.TimerEnabled
}

func LoadLevelSpec(name string) (*LevelSpec, error) {
	if name == "" {
		name = "level.yaml"
	}
	if !isSpecFile(name) {
		name += ".yaml"
	}
	spec, err := LoadSpec[LevelSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type DustSpec struct {
	Name         string          `yaml:"name"`
	Target       string          `yaml:"target"`
	LeftOffsetX  float64         `yaml:"left_offset_x"`
	LeftOffsetY  float64         `yaml:"left_offset_y"`
	RightOffsetX float64         `yaml:"right_offset_x"`
	RightOffsetY float64         `yaml:"right_offset_y"`
	Rate         float64         `yaml:"rate"`
	Lifetime     float64         `yaml:"lifetime"`
	Speed        float64         `yaml:"speed"`
	Spread       float64         `yaml:"spread"`
	Size         float64         `yaml:"size"`
	MaxAlive     int             `yaml:"max_alive"`
	Color        *YAMLColor      `yaml:"color"`
	RenderLayer  RenderLayerSpec `yaml:"render_layer"`
}

func LoadDustSpec() (*DustSpec, error) {
	spec, err := LoadSpec[DustSpec]("dust.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

// Or returns the color, or fallback when c is nil.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

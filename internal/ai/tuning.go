package ai

// Tuning holds enemy behavior constants.
type Tuning struct {
	DetectRange          float64 `yaml:"detect_range"`
	FireRange            float64 `yaml:"fire_range"`
	DisengageFactor      float64 `yaml:"disengage_factor"`       // Chase -> Patrol beyond DetectRange*factor
	OuterDisengageFactor float64 `yaml:"outer_disengage_factor"` // Attack -> Patrol beyond DetectRange*factor
	AdvanceFactor        float64 `yaml:"advance_factor"`         // Attack advances beyond FireRange*factor
	AdvanceSpeedScale    float64 `yaml:"advance_speed_scale"`
	FireRate             float64 `yaml:"fire_rate"` // shots per second
	ArrivalRadius        float64 `yaml:"arrival_radius"`
	SafeHalfExtent       float64 `yaml:"safe_half_extent"`   // patrol and spawn square around the origin
	BoundsHalfExtent     float64 `yaml:"bounds_half_extent"` // agents are kept inside this square; 0 disables
	BoundsMargin         float64 `yaml:"bounds_margin"`
	MaxPatrolHeight      float64 `yaml:"max_patrol_height"` // patrol points on surfaces above this are rejected
	Health               float64 `yaml:"health"`
	WaveSize             int     `yaml:"wave_size"`
	RespawnDelay         float64 `yaml:"respawn_delay"` // seconds after a wave is cleared; 0 disables
}

// DefaultTuning returns the stock enemy behavior.
func DefaultTuning() Tuning {
	return Tuning{
		DetectRange:          12,
		FireRange:            7,
		DisengageFactor:      1.4,
		OuterDisengageFactor: 1.5,
		AdvanceFactor:        1.15,
		AdvanceSpeedScale:    0.65,
		FireRate:             1.8,
		ArrivalRadius:        0.5,
		SafeHalfExtent:       7,
		BoundsHalfExtent:     9.2,
		BoundsMargin:         0.3,
		MaxPatrolHeight:      1,
		Health:               100,
		WaveSize:             3,
		RespawnDelay:         0,
	}
}

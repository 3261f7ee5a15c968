// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"hash/fnv"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Reproduction failure policies.
const (
	FailurePay  = "pay"  // parent pays cost and resets energy even without an offspring slot
	FailureKeep = "keep" // no slot means no cost and no reset
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Food         FoodConfig         `yaml:"food"`
	Bug          BugConfig          `yaml:"bug"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
}

// ScreenConfig holds display settings for the graphical viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the world settings, spawn defaults and global tuning constants.
type WorldConfig struct {
	Settings      SettingsConfig `yaml:"settings"`
	FoodSpawnVals SpawnConfig    `yaml:"food_spawn_vals"`
	BugSpawnVals  SpawnConfig    `yaml:"bug_spawn_vals"`

	MaxCompatibleTaste float64 `yaml:"max_compatible_taste"` // taste distance at which feeding yields nothing

	EndangeredTime          int `yaml:"endangered_time"` // ticks between endangered checks (0 = never)
	FoodEndangeredThreshold int `yaml:"food_endangered_threshold"`
	BugEndangeredThreshold  int `yaml:"bug_endangered_threshold"`

	FoodMinEnergy float64 `yaml:"food_min_energy"`
	BugMinEnergy  float64 `yaml:"bug_min_energy"`

	FoodMaturityAge      int     `yaml:"food_maturity_age"`
	FoodReproductionCost float64 `yaml:"food_reproduction_cost"`

	BugMaturityAge      int     `yaml:"bug_maturity_age"`
	BugMouthSize        float64 `yaml:"bug_mouth_size"` // max energy bitten per tick
	BugReproductionCost float64 `yaml:"bug_reproduction_cost"`
}

// SettingsConfig holds the world dimensions and initial population.
type SettingsConfig struct {
	Seed         string       `yaml:"seed"` // empty = current timestamp
	Rows         int          `yaml:"rows"`
	Columns      int          `yaml:"columns"`
	FertileLands []Rect       `yaml:"fertile_lands"` // empty = whole grid (unless FertileNoise is set)
	FertileNoise *NoiseConfig `yaml:"fertile_noise,omitempty"`
	InitFood     int          `yaml:"init_food"`
	InitBugs     int          `yaml:"init_bugs"`
	FoodDropRate int          `yaml:"food_drop_rate"` // food dropped after every tick
}

// Rect is an inclusive fertile rectangle written as [[min_x, min_y], [max_x, max_y]].
type Rect [2][2]int

// Bounds returns the rectangle corners.
func (r Rect) Bounds() (minX, minY, maxX, maxY int) {
	return r[0][0], r[0][1], r[1][0], r[1][1]
}

// NoiseConfig describes a noise-generated fertile mask.
type NoiseConfig struct {
	Scale     float64 `yaml:"scale"`     // noise frequency per cell
	Threshold float64 `yaml:"threshold"` // cells with normalized noise >= threshold are fertile
}

// SpawnConfig holds the values an organism is created with when dropped.
type SpawnConfig struct {
	Energy                float64 `yaml:"energy"`
	ReproductionThreshold float64 `yaml:"reproduction_threshold"`
	EnergyMax             float64 `yaml:"energy_max"`
	Taste                 float64 `yaml:"taste"`
}

// EvolutionConfig holds the per-trait mutation switches and limits.
type EvolutionConfig struct {
	EvolveReproductionThreshold        bool    `yaml:"evolve_reproduction_threshold"`
	ReproductionThresholdMutationLimit float64 `yaml:"reproduction_threshold_mutation_limit"`
	EvolveTaste                        bool    `yaml:"evolve_taste"`
	TasteMutationLimit                 float64 `yaml:"taste_mutation_limit"`
}

// FoodConfig holds food-specific parameters.
type FoodConfig struct {
	GrowthRate      float64 `yaml:"growth_rate"` // energy gained per tick
	EvolutionConfig `yaml:",inline"`
}

// BugConfig holds bug-specific parameters.
type BugConfig struct {
	RespirationRate float64 `yaml:"respiration_rate"` // energy lost per tick
	EatTax          float64 `yaml:"eat_tax"`          // energy lost per bite
	EvolutionConfig `yaml:",inline"`
}

// ReproductionConfig holds shared reproduction behaviour.
type ReproductionConfig struct {
	FailurePolicy string `yaml:"failure_policy"` // "pay" or "keep"
}

// TelemetryConfig holds statistics and output parameters.
type TelemetryConfig struct {
	Window     int `yaml:"window"`      // ticks in the rolling death/lifespan window
	WorldEvery int `yaml:"world_every"` // ticks between world dumps (0 = off)
	GenesEvery int `yaml:"genes_every"` // ticks between gene histograms (0 = off)
	GeneBins   int `yaml:"gene_bins"`
	LogEvery   int `yaml:"log_every"` // ticks between slog stats lines
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if cfg.World.Settings.Seed == "" {
		cfg.World.Settings.Seed = time.Now().Format("2006-01-02_15-04-05")
	}
	if cfg.Reproduction.FailurePolicy == "" {
		cfg.Reproduction.FailurePolicy = FailurePay
	}

	return cfg, nil
}

// RNGSeed hashes the textual seed into the value used to seed the random source.
func (c *Config) RNGSeed() int64 {
	h := fnv.New64a()
	h.Write([]byte(c.World.Settings.Seed))
	return int64(h.Sum64())
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ValidationError lists every rule a configuration breaks.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// Validate checks that the configuration can build a consistent world.
// It returns nil or a *ValidationError.
func (c *Config) Validate() error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	s := c.World.Settings
	if s.Rows <= 0 || s.Columns <= 0 {
		addf("grid must be positive, got %dx%d", s.Rows, s.Columns)
	}
	if s.InitFood < 0 || s.InitBugs < 0 || s.FoodDropRate < 0 {
		addf("initial counts and drop rate must be non-negative")
	}

	for i, r := range s.FertileLands {
		minX, minY, maxX, maxY := r.Bounds()
		switch {
		case minX > maxX || minY > maxY:
			addf("fertile_lands[%d]: min corner (%d,%d) past max corner (%d,%d)", i, minX, minY, maxX, maxY)
		case minX < 0 || minY < 0 || maxX >= s.Columns || maxY >= s.Rows:
			addf("fertile_lands[%d]: (%d,%d)-(%d,%d) outside %dx%d grid", i, minX, minY, maxX, maxY, s.Columns, s.Rows)
		}
	}
	if n := s.FertileNoise; n != nil {
		if len(s.FertileLands) > 0 {
			addf("fertile_lands and fertile_noise are mutually exclusive")
		}
		if n.Scale <= 0 {
			addf("fertile_noise.scale must be positive, got %g", n.Scale)
		}
		if n.Threshold < 0 || n.Threshold > 1 {
			addf("fertile_noise.threshold must be in [0,1], got %g", n.Threshold)
		}
	}

	for name, sp := range map[string]SpawnConfig{
		"food_spawn_vals": c.World.FoodSpawnVals,
		"bug_spawn_vals":  c.World.BugSpawnVals,
	} {
		if sp.EnergyMax <= 0 {
			addf("%s.energy_max must be positive, got %g", name, sp.EnergyMax)
		}
		if sp.Energy < 0 || sp.Energy > sp.EnergyMax {
			addf("%s.energy %g outside [0, %g]", name, sp.Energy, sp.EnergyMax)
		}
		if sp.ReproductionThreshold < 0 {
			addf("%s.reproduction_threshold must be non-negative", name)
		}
		if sp.Taste < 0 || sp.Taste >= 360 {
			addf("%s.taste %g outside [0, 360)", name, sp.Taste)
		}
	}

	w := c.World
	if w.MaxCompatibleTaste <= 0 {
		addf("max_compatible_taste must be positive")
	}
	if w.EndangeredTime < 0 {
		addf("endangered_time must be non-negative")
	}
	if w.FoodMaturityAge < 0 || w.BugMaturityAge < 0 {
		addf("maturity ages must be non-negative")
	}
	if w.FoodReproductionCost < 0 || w.BugReproductionCost < 0 {
		addf("reproduction costs must be non-negative")
	}
	if w.BugMouthSize < 0 {
		addf("bug_mouth_size must be non-negative")
	}
	if c.Food.GrowthRate < 0 || c.Bug.RespirationRate < 0 || c.Bug.EatTax < 0 {
		addf("growth_rate, respiration_rate and eat_tax must be non-negative")
	}
	for name, ev := range map[string]EvolutionConfig{"food": c.Food.EvolutionConfig, "bug": c.Bug.EvolutionConfig} {
		if ev.ReproductionThresholdMutationLimit < 0 || ev.TasteMutationLimit < 0 {
			addf("%s mutation limits must be non-negative", name)
		}
	}

	switch c.Reproduction.FailurePolicy {
	case FailurePay, FailureKeep:
	default:
		addf("reproduction.failure_policy must be %q or %q, got %q", FailurePay, FailureKeep, c.Reproduction.FailurePolicy)
	}

	if c.Telemetry.Window < 1 {
		addf("telemetry.window must be at least 1")
	}
	if c.Telemetry.GeneBins < 1 {
		addf("telemetry.gene_bins must be at least 1")
	}

	if len(problems) == 0 {
		return nil
	}
	// Map iteration above is unordered; keep messages stable.
	sort.Strings(problems)
	return &ValidationError{Problems: problems}
}

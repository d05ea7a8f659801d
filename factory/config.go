/*
Package factory provides JSON to Go workday-configuration conversion.

PURPOSE:
  Converts JSON flextime configuration into FlextimeDefinition and
  BreakTimeDefinitions objects. This enables schedule configuration
  without code changes - HR can define grade schedules and break rules
  in JSON, and the factory creates the proper Go structs.

WHY JSON?
  - Non-developers can modify schedules
  - Easy integration with admin UI
  - Version control for schedule definitions

JSON SCHEMA:
  {
    "grades": [
      {
        "grade": "default",
        "base_grace_seconds": 1800,
        "workdays": [
          {"weekday": 0, "target_seconds": 28800,
           "grace_in_seconds": 900, "grace_out_seconds": 900},
          ...
        ]
      }
    ],
    "break_rules": [
      {"min_work_seconds": 21600, "max_work_seconds": 32400,
       "deduction_seconds": 1800},
      {"min_work_seconds": 32400, "deduction_seconds": 2700}
    ]
  }

  Weekdays are 0=Monday through 6=Sunday. Every grade must define all
  seven weekdays; a non-working day has target_seconds 0. A break rule
  with max_work_seconds 0 (or omitted) is unbounded above.

USAGE:
  cfg, err := factory.LoadConfig("./config/flextime.json")
  if err != nil {
      log.Fatal(err)
  }
  service := flextime.NewProcessingService(clock, store, store,
      cfg, cfg, store, store, store, store, store)

SEE ALSO:
  - flextime/definition.go: FlextimeDefinition type
  - flextime/breaktime.go: BreakTimeDefinitions type
*/
package factory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/warp/flextime-engine/flextime"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ConfigJSON is the JSON representation of the full flextime configuration.
type ConfigJSON struct {
	Grades     []GradeJSON     `json:"grades"`
	BreakRules []BreakRuleJSON `json:"break_rules,omitempty"`
}

// GradeJSON maps one employee grade to its weekly schedule.
type GradeJSON struct {
	Grade            string        `json:"grade"`
	BaseGraceSeconds int           `json:"base_grace_seconds,omitempty"`
	Workdays         []WorkdayJSON `json:"workdays"`
}

// WorkdayJSON is one weekday's schedule entry.
type WorkdayJSON struct {
	Weekday         int `json:"weekday"` // 0=Monday .. 6=Sunday
	TargetSeconds   int `json:"target_seconds"`
	GraceInSeconds  int `json:"grace_in_seconds,omitempty"`
	GraceOutSeconds int `json:"grace_out_seconds,omitempty"`
}

// BreakRuleJSON is one break deduction band.
type BreakRuleJSON struct {
	MinWorkSeconds   int `json:"min_work_seconds"`
	MaxWorkSeconds   int `json:"max_work_seconds,omitempty"` // 0 = unbounded
	DeductionSeconds int `json:"deduction_seconds"`
}

// =============================================================================
// CONFIG
// =============================================================================

// Config holds the parsed schedules and break rules. It serves as both
// the DefinitionSource and the BreakTimeSource of a processing run.
type Config struct {
	definitions map[string]*flextime.FlextimeDefinition
	breaks      *flextime.BreakTimeDefinitions
}

var (
	_ flextime.DefinitionSource = (*Config)(nil)
	_ flextime.BreakTimeSource  = (*Config)(nil)
)

// GetByGrade returns the schedule for a grade, nil when the grade has none.
func (c *Config) GetByGrade(_ context.Context, grade string) (*flextime.FlextimeDefinition, error) {
	return c.definitions[grade], nil
}

// GetDefinitions returns the shared break rules.
func (c *Config) GetDefinitions(_ context.Context) (*flextime.BreakTimeDefinitions, error) {
	return c.breaks, nil
}

// Grades lists the configured grade names.
func (c *Config) Grades() []string {
	grades := make([]string, 0, len(c.definitions))
	for grade := range c.definitions {
		grades = append(grades, grade)
	}
	return grades
}

// =============================================================================
// PARSING
// =============================================================================

// LoadConfig reads and parses a configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses JSON configuration bytes.
func ParseConfig(data []byte) (*Config, error) {
	var cj ConfigJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return FromJSON(cj)
}

// FromJSON converts ConfigJSON to a validated Config.
func FromJSON(cj ConfigJSON) (*Config, error) {
	if len(cj.Grades) == 0 {
		return nil, fmt.Errorf("config defines no grades")
	}

	definitions := make(map[string]*flextime.FlextimeDefinition, len(cj.Grades))
	for _, gj := range cj.Grades {
		if gj.Grade == "" {
			return nil, fmt.Errorf("grade entry with empty name")
		}
		if _, exists := definitions[gj.Grade]; exists {
			return nil, fmt.Errorf("grade %q defined twice", gj.Grade)
		}

		def := flextime.NewFlextimeDefinition(gj.BaseGraceSeconds)
		for _, wj := range gj.Workdays {
			workday := flextime.WorkdayDefinition{
				Weekday:       wj.Weekday,
				TargetSeconds: wj.TargetSeconds,
				GraceIn:       time.Duration(wj.GraceInSeconds) * time.Second,
				GraceOut:      time.Duration(wj.GraceOutSeconds) * time.Second,
			}
			if err := def.Insert(workday); err != nil {
				return nil, fmt.Errorf("grade %q weekday %d: %w", gj.Grade, wj.Weekday, err)
			}
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("grade %q: %w", gj.Grade, err)
		}
		definitions[gj.Grade] = def
	}

	rules := make([]flextime.BreakTimeRule, 0, len(cj.BreakRules))
	for _, bj := range cj.BreakRules {
		rules = append(rules, flextime.BreakTimeRule{
			MinWorkSeconds:   bj.MinWorkSeconds,
			MaxWorkSeconds:   bj.MaxWorkSeconds,
			DeductionSeconds: bj.DeductionSeconds,
		})
	}
	breaks, err := flextime.NewBreakTimeDefinitions(rules...)
	if err != nil {
		return nil, fmt.Errorf("break rules: %w", err)
	}

	return &Config{definitions: definitions, breaks: breaks}, nil
}

// =============================================================================
// PRESET CONFIGURATION
// =============================================================================

// DefaultConfigJSON is a 40-hour week for grade "default": eight hours
// Monday through Friday, statutory break deductions at six and nine
// hours of work.
func DefaultConfigJSON() string {
	return `{
  "grades": [
    {
      "grade": "default",
      "base_grace_seconds": 1800,
      "workdays": [
        {"weekday": 0, "target_seconds": 28800, "grace_in_seconds": 900, "grace_out_seconds": 900},
        {"weekday": 1, "target_seconds": 28800, "grace_in_seconds": 900, "grace_out_seconds": 900},
        {"weekday": 2, "target_seconds": 28800, "grace_in_seconds": 900, "grace_out_seconds": 900},
        {"weekday": 3, "target_seconds": 28800, "grace_in_seconds": 900, "grace_out_seconds": 900},
        {"weekday": 4, "target_seconds": 28800, "grace_in_seconds": 900, "grace_out_seconds": 900},
        {"weekday": 5, "target_seconds": 0},
        {"weekday": 6, "target_seconds": 0}
      ]
    }
  ],
  "break_rules": [
    {"min_work_seconds": 21600, "max_work_seconds": 32400, "deduction_seconds": 1800},
    {"min_work_seconds": 32400, "deduction_seconds": 2700}
  ]
}`
}

// DefaultConfig parses DefaultConfigJSON; it panics on error since the
// preset is a compile-time constant.
func DefaultConfig() *Config {
	cfg, err := ParseConfig([]byte(DefaultConfigJSON()))
	if err != nil {
		panic(fmt.Sprintf("invalid preset config: %v", err))
	}
	return cfg
}

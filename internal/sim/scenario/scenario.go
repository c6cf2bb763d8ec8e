// Package scenario seeds a world with its starting population, the
// structures they found, and where everyone works and lives.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"townsim.ai/internal/schemas"
	"townsim.ai/internal/sim/world"
)

// ErrInvalid wraps every scenario that fails the schema or reference checks.
var ErrInvalid = errors.New("invalid scenario")

type Scenario struct {
	Name       string      `yaml:"name" json:"name,omitempty"`
	Citizens   []Citizen   `yaml:"citizens" json:"citizens,omitempty"`
	Structures []Structure `yaml:"structures" json:"structures,omitempty"`
}

// Citizen refers to other entries by key. Work must name an office or farm,
// Home an apartment.
type Citizen struct {
	Key   string  `yaml:"key" json:"key,omitempty"`
	Name  string  `yaml:"name" json:"name,omitempty"`
	Skill string  `yaml:"skill" json:"skill,omitempty"`
	Cash  float64 `yaml:"cash" json:"cash,omitempty"`
	Work  string  `yaml:"work" json:"work,omitempty"`
	Home  string  `yaml:"home" json:"home,omitempty"`
}

// Structure kinds: office, farm, apartment, or a power source (coal, solar, wind).
type Structure struct {
	Key     string `yaml:"key" json:"key,omitempty"`
	Kind    string `yaml:"kind" json:"kind,omitempty"`
	Founder string `yaml:"founder" json:"founder,omitempty"`
}

func Load(path string) (Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (Scenario, error) {
	var s Scenario
	if err := schemas.ValidateYAML(schemas.Scenario, raw); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks what the schema cannot: unique keys and resolvable references.
func (s Scenario) Validate() error {
	citizens := map[string]bool{}
	for _, c := range s.Citizens {
		if citizens[c.Key] {
			return fmt.Errorf("%w: duplicate citizen key %q", ErrInvalid, c.Key)
		}
		if _, ok := world.ParseSkill(c.Skill); !ok {
			return fmt.Errorf("%w: citizen %q: unknown skill %q", ErrInvalid, c.Key, c.Skill)
		}
		citizens[c.Key] = true
	}
	kinds := map[string]string{}
	for _, st := range s.Structures {
		if _, dup := kinds[st.Key]; dup || citizens[st.Key] {
			return fmt.Errorf("%w: duplicate key %q", ErrInvalid, st.Key)
		}
		if !citizens[st.Founder] {
			return fmt.Errorf("%w: structure %q: unknown founder %q", ErrInvalid, st.Key, st.Founder)
		}
		if !validKind(st.Kind) {
			return fmt.Errorf("%w: structure %q: unknown kind %q", ErrInvalid, st.Key, st.Kind)
		}
		kinds[st.Key] = st.Kind
	}
	for _, c := range s.Citizens {
		if c.Work != "" {
			if k := kinds[c.Work]; k != "office" && k != "farm" {
				return fmt.Errorf("%w: citizen %q: work %q is not an office or farm", ErrInvalid, c.Key, c.Work)
			}
		}
		if c.Home != "" && kinds[c.Home] != "apartment" {
			return fmt.Errorf("%w: citizen %q: home %q is not an apartment", ErrInvalid, c.Key, c.Home)
		}
	}
	return nil
}

func validKind(k string) bool {
	switch k {
	case "office", "farm", "apartment":
		return true
	}
	return world.PowerSource(k).Valid()
}

// Result maps scenario keys to what was created. Refused lists placements the
// world turned down, such as a farm job for a non-farmer or a full apartment.
type Result struct {
	Citizens   map[string]*world.Citizen
	Structures map[string]world.Structure
	Refused    []string
}

// Apply creates citizens, then foundings, then jobs and homes, each in file order.
func (s Scenario) Apply(w *world.World) (Result, error) {
	res := Result{
		Citizens:   map[string]*world.Citizen{},
		Structures: map[string]world.Structure{},
	}
	if err := s.Validate(); err != nil {
		return res, err
	}
	for _, sc := range s.Citizens {
		skill, _ := world.ParseSkill(sc.Skill)
		c, err := w.AddCitizen(sc.Name, sc.Cash, skill)
		if err != nil {
			return res, fmt.Errorf("scenario: citizen %q: %w", sc.Key, err)
		}
		res.Citizens[sc.Key] = c
	}
	for _, st := range s.Structures {
		founder := res.Citizens[st.Founder]
		var created world.Structure
		switch st.Kind {
		case "office":
			created = w.FoundOffice(founder, w.Day())
		case "farm":
			created = w.FoundFarm(founder)
		case "apartment":
			created = w.FoundApartment(founder)
		default:
			p, ok := w.FoundPowerPlant(founder, world.PowerSource(st.Kind))
			if !ok {
				return res, fmt.Errorf("scenario: structure %q: cannot found %s plant", st.Key, st.Kind)
			}
			created = p
		}
		res.Structures[st.Key] = created
	}
	for _, sc := range s.Citizens {
		c := res.Citizens[sc.Key]
		if sc.Work != "" {
			e, _ := res.Structures[sc.Work].(world.Employer)
			if !w.GetHired(c, e) {
				res.Refused = append(res.Refused, fmt.Sprintf("%s work %s", sc.Key, sc.Work))
			}
		}
		if sc.Home != "" {
			a, _ := res.Structures[sc.Home].(*world.Apartment)
			if !w.MoveIn(c, a) {
				res.Refused = append(res.Refused, fmt.Sprintf("%s home %s", sc.Key, sc.Home))
			}
		}
	}
	return res, nil
}

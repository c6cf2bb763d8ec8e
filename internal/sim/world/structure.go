package world

import "townsim.ai/internal/sim/world/logic/blueprint"

type Kind string

const (
	KindOffice     Kind = "OFFICE"
	KindFarm       Kind = "FARM"
	KindApartment  Kind = "APARTMENT"
	KindPowerPlant Kind = "POWER_PLANT"
)

// Structure is any office, farm, apartment or power plant.
type Structure interface {
	Base() *Building
}

// Building holds the state every structure shares.
type Building struct {
	ID        string
	Kind      Kind
	Name      string
	OwnerID   string
	Blueprint blueprint.Blueprint
	Treasury  float64

	// AdministrationEfficiency scales income. Farms also scale it by staffing density.
	AdministrationEfficiency float64
	baseEfficiency           float64

	employed []string
}

func newBuilding(id string, kind Kind, name string, owner *Citizen, bp blueprint.Blueprint, treasury float64) Building {
	eff := 0.75
	if owner.Skill == SkillAdministration {
		eff = 1
	}
	return Building{
		ID:                       id,
		Kind:                     kind,
		Name:                     name,
		OwnerID:                  owner.ID,
		Blueprint:                bp,
		Treasury:                 treasury,
		AdministrationEfficiency: eff,
		baseEfficiency:           eff,
	}
}

func (b *Building) Base() *Building { return b }

// Employed returns the employee ids in hiring order.
func (b *Building) Employed() []string { return append([]string(nil), b.employed...) }

func (b *Building) EmployedCount() int { return len(b.employed) }

func (b *Building) IsEmployed(citizenID string) bool {
	return indexOf(b.employed, citizenID) >= 0
}

func (b *Building) removeEmployed(citizenID string) bool {
	var ok bool
	b.employed, ok = removeID(b.employed, citizenID)
	return ok
}

func indexOf(list []string, id string) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}

func removeID(list []string, id string) ([]string, bool) {
	i := indexOf(list, id)
	if i < 0 {
		return list, false
	}
	return append(list[:i], list[i+1:]...), true
}

type OccupationKind uint8

const (
	OccupationNone OccupationKind = iota
	OccupationOffice
	OccupationFarm
	OccupationPowerPlant
	OccupationApartment
)

func (k OccupationKind) String() string {
	switch k {
	case OccupationOffice:
		return "office"
	case OccupationFarm:
		return "farm"
	case OccupationPowerPlant:
		return "power_plant"
	case OccupationApartment:
		return "apartment"
	default:
		return "none"
	}
}

func occupationKindOf(k Kind) OccupationKind {
	switch k {
	case KindOffice:
		return OccupationOffice
	case KindFarm:
		return OccupationFarm
	case KindPowerPlant:
		return OccupationPowerPlant
	case KindApartment:
		return OccupationApartment
	default:
		return OccupationNone
	}
}

type Role uint8

const (
	RoleEmployee Role = iota
	// RoleFounder manages the structure without being on its payroll.
	RoleFounder
)

// Occupation is what a citizen does for a living. The zero value is unemployed.
type Occupation struct {
	Kind        OccupationKind
	StructureID string
	Role        Role
}

func (o Occupation) IsNone() bool { return o.Kind == OccupationNone }

func (o Occupation) IsEmployee() bool { return o.Kind != OccupationNone && o.Role == RoleEmployee }

func (o Occupation) IsFounder() bool { return o.Kind != OccupationNone && o.Role == RoleFounder }

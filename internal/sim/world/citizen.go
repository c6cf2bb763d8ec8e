package world

import "strings"

type Skill string

const (
	SkillSoftware       Skill = "software"
	SkillAccounting     Skill = "accounting"
	SkillFarming        Skill = "farming"
	SkillMaintenance    Skill = "maintenance"
	SkillAdministration Skill = "administration"
)

// Proficiency weights. No rule reads them yet.
var skillWeights = map[Skill]int{
	SkillSoftware:       7,
	SkillAccounting:     10,
	SkillFarming:        4,
	SkillMaintenance:    10,
	SkillAdministration: 4,
}

func SkillWeight(s Skill) int { return skillWeights[s] }

func (s Skill) Valid() bool {
	_, ok := skillWeights[s]
	return ok
}

func ParseSkill(s string) (Skill, bool) {
	sk := Skill(strings.ToLower(strings.TrimSpace(s)))
	return sk, sk.Valid()
}

type Citizen struct {
	ID        string
	Name      string
	Skill     Skill
	Food      int
	Happiness int

	cash       float64
	occupation Occupation
	residence  string
}

func (c *Citizen) Cash() float64 { return c.cash }

// Pay credits the citizen. Negative amounts are allowed and debit.
func (c *Citizen) Pay(amount float64) { c.cash += amount }

func (c *Citizen) Occupation() Occupation { return c.occupation }

// Residence is the apartment id, or "" when homeless.
func (c *Citizen) Residence() string { return c.residence }

// Surname is the second word of the name; single-word names are their own surname.
func (c *Citizen) Surname() string {
	parts := strings.Fields(c.Name)
	switch len(parts) {
	case 0:
		return c.Name
	case 1:
		return parts[0]
	}
	return parts[1]
}

// MoveIn rents a unit in a, leaving any previous residence.
func (w *World) MoveIn(c *Citizen, a *Apartment) bool {
	return w.Accept(a, c)
}

func (w *World) MoveOut(c *Citizen) bool {
	if c == nil {
		return false
	}
	from, ok := w.vacate(c)
	if !ok {
		w.audit(c.ID, ActionMoveOut, "", 0, ReasonNoResidence, nil)
		return false
	}
	w.audit(c.ID, ActionMoveOut, from, 0, "", nil)
	return true
}

// PayRent pays one rent cycle when cash strictly exceeds the rent price.
// The landlord receives the rent scaled by its administration efficiency.
func (w *World) PayRent(c *Citizen) bool {
	if c == nil {
		return false
	}
	a := w.Apartment(c.residence)
	if a == nil {
		return false
	}
	price := a.RentPrice()
	if c.cash <= price {
		w.audit(c.ID, ActionPayRent, a.ID, price, ReasonFunds, nil)
		return false
	}
	c.cash -= price
	a.Treasury += price * a.AdministrationEfficiency
	w.audit(c.ID, ActionPayRent, a.ID, price, "", nil)
	return true
}

package world

// Membership changes go through these helpers only, so a roster and the
// member's back-reference are always updated together.

// employ puts c on b's payroll, ending whatever c did before.
func (w *World) employ(b *Building, c *Citizen) {
	w.release(c)
	b.employed = append(b.employed, c.ID)
	c.occupation = Occupation{Kind: occupationKindOf(b.Kind), StructureID: b.ID, Role: RoleEmployee}
}

// appoint makes c the manager of b without adding c to the payroll.
func (w *World) appoint(b *Building, c *Citizen) {
	w.release(c)
	c.occupation = Occupation{Kind: occupationKindOf(b.Kind), StructureID: b.ID, Role: RoleFounder}
}

// release ends c's current occupation and returns it.
func (w *World) release(c *Citizen) (Occupation, bool) {
	prev := c.occupation
	if prev.IsNone() {
		return prev, false
	}
	if prev.IsEmployee() {
		if b := w.building(prev.StructureID); b != nil {
			b.removeEmployed(c.ID)
		}
	}
	c.occupation = Occupation{}
	return prev, true
}

// dismiss removes c from b's payroll. It reports false when c was not on it.
func (w *World) dismiss(b *Building, c *Citizen) bool {
	if !b.removeEmployed(c.ID) {
		return false
	}
	if c.occupation.IsEmployee() && c.occupation.StructureID == b.ID {
		c.occupation = Occupation{}
	}
	return true
}

// lease makes a the residence of c, moving c out of any previous home.
func (w *World) lease(a *Apartment, c *Citizen) {
	w.vacate(c)
	a.renters = append(a.renters, c.ID)
	c.residence = a.ID
}

// vacate ends c's tenancy and returns the apartment id left.
func (w *World) vacate(c *Citizen) (string, bool) {
	from := c.residence
	if from == "" {
		return "", false
	}
	if a := w.Apartment(from); a != nil {
		a.renters, _ = removeID(a.renters, c.ID)
	}
	c.residence = ""
	return from, true
}

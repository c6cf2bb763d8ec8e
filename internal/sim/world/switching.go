package world

// SwitchJobs moves c to the best-paying candidate office when it pays more
// than the switch premium over the current wage. Administration staff stay put.
// Ties go to the earliest candidate. The citizen resigns before applying, so a
// full target office leaves them unemployed.
func (w *World) SwitchJobs(c *Citizen, candidates []*Office) bool {
	if c == nil || c.Skill == SkillAdministration {
		return false
	}
	cur := w.EmployerOf(c)
	if cur == nil {
		return false
	}
	var best *Office
	for _, o := range candidates {
		if o == nil {
			continue
		}
		if best == nil || o.Wage() > best.Wage() {
			best = o
		}
	}
	if best == nil || best.Wage() <= cur.Wage()*(1+w.cfg.JobSwitchPremium) {
		return false
	}
	if prev, ok := w.release(c); ok {
		w.audit(c.ID, ActionResign, prev.StructureID, cur.Wage(), "", nil)
	}
	return w.GetHired(c, best)
}

// SwitchApartments moves c to the cheapest candidate when its rate undercuts
// the current one by more than the switch discount.
func (w *World) SwitchApartments(c *Citizen, candidates []*Apartment) bool {
	if c == nil {
		return false
	}
	cur := w.Apartment(c.residence)
	if cur == nil {
		return false
	}
	var best *Apartment
	for _, a := range candidates {
		if a == nil {
			continue
		}
		if best == nil || a.RentPerSqft < best.RentPerSqft {
			best = a
		}
	}
	if best == nil || best.RentPerSqft >= cur.RentPerSqft*(1-w.cfg.RentSwitchDiscount) {
		return false
	}
	if from, ok := w.vacate(c); ok {
		w.audit(c.ID, ActionMoveOut, from, 0, "", nil)
	}
	return w.Accept(best, c)
}

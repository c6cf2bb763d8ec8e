package world

import "fmt"

// CheckInvariants reports the first broken capacity or membership invariant.
func (w *World) CheckInvariants() error {
	for _, id := range w.citizenOrder {
		c := w.citizens[id]
		occ := c.occupation
		if !occ.IsNone() {
			b := w.building(occ.StructureID)
			if b == nil {
				return fmt.Errorf("%s: occupation points at unknown structure %q", c.ID, occ.StructureID)
			}
			if occupationKindOf(b.Kind) != occ.Kind {
				return fmt.Errorf("%s: occupation kind %s does not match %s", c.ID, occ.Kind, b.Kind)
			}
			switch occ.Role {
			case RoleEmployee:
				if !b.IsEmployed(c.ID) {
					return fmt.Errorf("%s: employed by %s but missing from its roster", c.ID, b.ID)
				}
			case RoleFounder:
				if b.OwnerID != c.ID {
					return fmt.Errorf("%s: manages %s owned by %s", c.ID, b.ID, b.OwnerID)
				}
				if b.IsEmployed(c.ID) {
					return fmt.Errorf("%s: founder listed on payroll of %s", c.ID, b.ID)
				}
			}
		}
		if c.residence != "" {
			a := w.Apartment(c.residence)
			if a == nil {
				return fmt.Errorf("%s: residence points at unknown apartment %q", c.ID, c.residence)
			}
			if !a.IsRenter(c.ID) {
				return fmt.Errorf("%s: lives in %s but missing from its renters", c.ID, a.ID)
			}
		}
	}

	for _, o := range w.offices {
		if err := w.checkRoster(o); err != nil {
			return err
		}
		if o.wage < 1 {
			return fmt.Errorf("%s: wage %v below 1", o.ID, o.wage)
		}
	}
	for _, f := range w.farms {
		if err := w.checkRoster(f); err != nil {
			return err
		}
		if f.wage < 1 {
			return fmt.Errorf("%s: wage %v below 1", f.ID, f.wage)
		}
	}
	for _, a := range w.apartments {
		if a.EmployedCount() != 0 {
			return fmt.Errorf("%s: apartments have no payroll", a.ID)
		}
		if len(a.renters) > a.TotalApartments() {
			return fmt.Errorf("%s: %d renters exceed %d units", a.ID, len(a.renters), a.TotalApartments())
		}
		if a.RentPerSqft < 0 {
			return fmt.Errorf("%s: negative rent %v", a.ID, a.RentPerSqft)
		}
		seen := map[string]bool{}
		for _, id := range a.renters {
			if seen[id] {
				return fmt.Errorf("%s: renter %s listed twice", a.ID, id)
			}
			seen[id] = true
			if c := w.Citizen(id); c == nil || c.residence != a.ID {
				return fmt.Errorf("%s: renter %s does not live here", a.ID, id)
			}
		}
	}
	for _, p := range w.plants {
		if p.EmployedCount() != 0 {
			return fmt.Errorf("%s: power plants have no payroll", p.ID)
		}
	}
	return nil
}

func (w *World) checkRoster(e Employer) error {
	b := e.Base()
	if b.EmployedCount() > e.MaxEmployed() {
		return fmt.Errorf("%s: %d employees exceed capacity %d", b.ID, b.EmployedCount(), e.MaxEmployed())
	}
	seen := map[string]bool{}
	for _, id := range b.employed {
		if seen[id] {
			return fmt.Errorf("%s: employee %s listed twice", b.ID, id)
		}
		seen[id] = true
		c := w.Citizen(id)
		if c == nil || !c.occupation.IsEmployee() || c.occupation.StructureID != b.ID {
			return fmt.Errorf("%s: employee %s does not work here", b.ID, id)
		}
	}
	return nil
}

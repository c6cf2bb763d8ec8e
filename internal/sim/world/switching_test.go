package world

import "testing"

func officeWithWage(t *testing.T, w *World, wage float64) *Office {
	t.Helper()
	o := w.FoundOffice(mustCitizen(t, w, "Boss Person", 0, SkillAdministration), 0)
	o.wage = wage
	return o
}

func TestSwitchJobsTakesBetterOffer(t *testing.T) {
	w := newTestWorld(t)
	cur := officeWithWage(t, w, 100)
	low := officeWithWage(t, w, 90)
	high := officeWithWage(t, w, 115)
	c := mustCitizen(t, w, "Job Hopper", 0, SkillSoftware)
	w.Hire(cur, c)

	if !w.SwitchJobs(c, []*Office{low, high}) {
		t.Fatalf("expected switch to the 115 office")
	}
	if c.Occupation().StructureID != high.ID || !high.IsEmployed(c.ID) || cur.IsEmployed(c.ID) {
		t.Fatalf("occupation=%+v", c.Occupation())
	}
	mustInvariants(t, w)
}

func TestSwitchJobsNeedsMoreThanPremium(t *testing.T) {
	w := newTestWorld(t)
	cur := officeWithWage(t, w, 100)
	near := officeWithWage(t, w, 110)
	c := mustCitizen(t, w, "Job Keeper", 0, SkillSoftware)
	w.Hire(cur, c)
	if w.SwitchJobs(c, []*Office{near}) {
		t.Fatalf("110 is not more than 10%% above 100")
	}
	if c.Occupation().StructureID != cur.ID {
		t.Fatalf("citizen should stay")
	}
}

func TestSwitchJobsAdministrationStays(t *testing.T) {
	w := newTestWorld(t)
	cur := officeWithWage(t, w, 100)
	rich := officeWithWage(t, w, 500)
	c := mustCitizen(t, w, "Office Admin", 0, SkillAdministration)
	w.Hire(cur, c)
	if w.SwitchJobs(c, []*Office{rich}) {
		t.Fatalf("administration staff never switch")
	}
}

func TestSwitchJobsUnemployedStays(t *testing.T) {
	w := newTestWorld(t)
	rich := officeWithWage(t, w, 500)
	c := mustCitizen(t, w, "No Job", 0, SkillSoftware)
	if w.SwitchJobs(c, []*Office{rich}) || !c.Occupation().IsNone() {
		t.Fatalf("unemployed citizens do not job hunt through SwitchJobs")
	}
}

func TestSwitchJobsTieGoesToFirst(t *testing.T) {
	w := newTestWorld(t)
	cur := officeWithWage(t, w, 100)
	a := officeWithWage(t, w, 150)
	b := officeWithWage(t, w, 150)
	c := mustCitizen(t, w, "Tie Break", 0, SkillSoftware)
	w.Hire(cur, c)
	w.SwitchJobs(c, []*Office{b, a})
	if c.Occupation().StructureID != b.ID {
		t.Fatalf("tie should go to first candidate %s, got %s", b.ID, c.Occupation().StructureID)
	}
}

func TestSwitchJobsToFullOfficeLeavesUnemployed(t *testing.T) {
	w := newTestWorld(t)
	cur := officeWithWage(t, w, 100)
	full := officeWithWage(t, w, 300)
	for full.EmployedCount() < full.MaxEmployed() {
		w.Hire(full, mustCitizen(t, w, "Filler Worker", 0, SkillSoftware))
	}
	c := mustCitizen(t, w, "Unlucky One", 0, SkillSoftware)
	w.Hire(cur, c)
	if w.SwitchJobs(c, []*Office{full}) {
		t.Fatalf("full office cannot take the citizen")
	}
	if !c.Occupation().IsNone() || cur.IsEmployed(c.ID) {
		t.Fatalf("citizen resigns before applying: occ=%+v", c.Occupation())
	}
	mustInvariants(t, w)
}

func TestSwitchJobsFounderLeavesManagement(t *testing.T) {
	w := newTestWorld(t)
	founder := mustCitizen(t, w, "Farm Founder", 0, SkillFarming)
	f := w.FoundFarm(founder)
	f.wage = 50
	o := officeWithWage(t, w, 200)
	if !w.SwitchJobs(founder, []*Office{o}) {
		t.Fatalf("founder should take the better paid job")
	}
	if f.OwnerID != founder.ID {
		t.Fatalf("ownership does not change")
	}
	if !founder.Occupation().IsEmployee() || founder.Occupation().StructureID != o.ID {
		t.Fatalf("occupation=%+v", founder.Occupation())
	}
	mustInvariants(t, w)
}

func TestSwitchApartments(t *testing.T) {
	w := newTestWorld(t)
	cur := newApartment(t, w)
	cur.RentPerSqft = 2
	pricey := newApartment(t, w)
	pricey.RentPerSqft = 1.9
	cheap := newApartment(t, w)
	cheap.RentPerSqft = 1.7
	c := mustCitizen(t, w, "Bargain Hunter", 0, SkillSoftware)
	w.MoveIn(c, cur)

	if !w.SwitchApartments(c, []*Apartment{pricey, cheap}) {
		t.Fatalf("expected switch to the cheaper apartment")
	}
	if c.Residence() != cheap.ID || cur.IsRenter(c.ID) || !cheap.IsRenter(c.ID) {
		t.Fatalf("residence=%q", c.Residence())
	}
	if w.SwitchApartments(c, []*Apartment{pricey, cheap}) {
		t.Fatalf("nothing is cheaper than the current home")
	}
	mustInvariants(t, w)
}

func TestSwitchApartmentsNeedsDiscount(t *testing.T) {
	w := newTestWorld(t)
	cur := newApartment(t, w)
	cur.RentPerSqft = 2
	near := newApartment(t, w)
	near.RentPerSqft = 1.85
	c := mustCitizen(t, w, "Home Body", 0, SkillSoftware)
	w.MoveIn(c, cur)
	if w.SwitchApartments(c, []*Apartment{near}) {
		t.Fatalf("1.85 is not more than 10%% below 2")
	}
	homeless := mustCitizen(t, w, "No Home", 0, SkillSoftware)
	if w.SwitchApartments(homeless, []*Apartment{near}) {
		t.Fatalf("homeless citizens do not switch")
	}
}

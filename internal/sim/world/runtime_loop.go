package world

import "context"

// Run advances the given number of days. Cancellation is honored between days.
func (w *World) Run(ctx context.Context, days int) error {
	for i := 0; i < days; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		w.AdvanceDay()
	}
	return nil
}

// AdvanceDay runs one simulated day in a fixed order: offices, farms,
// apartments, then citizens, each in creation order.
func (w *World) AdvanceDay() DayLogEntry {
	day := w.day
	entry := DayLogEntry{Day: day}

	for _, o := range w.offices {
		w.PayCitizens(o)
		if w.CheckBankruptcy(o, day) {
			entry.Liquidated = append(entry.Liquidated, o.ID)
		}
		w.ChangePay(o)
		w.DevelopProduct(o, day)
		if o.ReleaseProduct(day) {
			w.shipProduct(o)
			entry.Released = append(entry.Released, o.ID)
		}
	}
	for _, f := range w.farms {
		w.PayCitizens(f)
		if w.CheckBankruptcy(f, day) {
			entry.Liquidated = append(entry.Liquidated, f.ID)
		}
		w.ChangePay(f)
		if w.AutoHarvest(f, day) {
			entry.Harvested = append(entry.Harvested, f.ID)
		}
		w.PlantCorn(f, day)
	}
	for _, a := range w.apartments {
		w.CollectRent(a)
		w.ChangeRent(a)
	}
	offices := w.Offices()
	apartments := w.Apartments()
	for _, id := range w.citizenOrder {
		c := w.citizens[id]
		w.SwitchJobs(c, offices)
		w.SwitchApartments(c, apartments)
	}

	entry.Metrics = w.Metrics()
	entry.Digest = w.StateDigest()
	if w.dayLogger != nil {
		_ = w.dayLogger.WriteDay(entry)
	}
	w.day++
	return entry
}

package world

import "math"

type Office struct {
	Building
	payroll

	Industry    string
	FoundingDay int
	Product     *SoftwareProduct
}

type SoftwareProduct struct {
	Name       string
	Quality    float64
	ReleaseDay int
	CompanyID  string
}

func (o *Office) MaxEmployed() int { return o.Blueprint.MaxOccupantsTotal() }

func (o *Office) Capacity() float64 { return float64(o.MaxEmployed()) }

func (o *Office) admit(*Citizen) string { return "" }

// Each hire adds a point of quality to a product in development.
func (o *Office) hired(*Citizen) {
	if o.Product != nil {
		o.Product.Quality++
	}
}

// DevelopProduct starts a product when none is in flight. Quality starts at
// half the staff plus one; thinly staffed offices take longer to ship.
func (w *World) DevelopProduct(o *Office, day int) bool {
	if o == nil || o.Product != nil {
		return false
	}
	quality := 1 + float64(o.EmployedCount())/2
	if w.cfg.ProductQualityJitter > 0 {
		quality += w.rng.Float64() * w.cfg.ProductQualityJitter
	}
	name := o.Name
	if owner := w.Citizen(o.OwnerID); owner != nil {
		name = owner.Surname() + " Software"
	}
	release := int(math.Floor(float64(day) + (2-StaffRatio(o))*float64(w.cfg.ProductDevelopmentDays)))
	o.Product = &SoftwareProduct{
		Name:       name,
		Quality:    quality,
		ReleaseDay: release,
		CompanyID:  o.ID,
	}
	w.audit(o.ID, ActionProductStart, name, quality, "", map[string]any{"release_day": release})
	return true
}

// ReleaseProduct reports whether day is the product's release day.
func (o *Office) ReleaseProduct(day int) bool {
	return o.Product != nil && day == o.Product.ReleaseDay
}

func (o *Office) DestroyProduct() { o.Product = nil }

func (o *Office) SellSoftware(amount float64) { o.Treasury += amount }

// shipProduct sells the finished product and clears it for the next one.
func (w *World) shipProduct(o *Office) float64 {
	if o.Product == nil {
		return 0
	}
	p := o.Product
	revenue := p.Quality * w.cfg.SoftwareRevenuePerQuality
	o.SellSoftware(revenue)
	o.DestroyProduct()
	w.audit(o.ID, ActionProductRelease, p.Name, revenue, "", map[string]any{"quality": p.Quality})
	w.logf("day %d: %s released %s (quality %.1f) for %.2f", p.ReleaseDay, o.Name, p.Name, p.Quality, revenue)
	return revenue
}

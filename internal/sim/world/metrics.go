package world

type Metrics struct {
	Day int `json:"day"`

	Citizens   int `json:"citizens"`
	Employed   int `json:"employed"`
	Founders   int `json:"founders"`
	Unemployed int `json:"unemployed"`
	Housed     int `json:"housed"`

	Offices     int `json:"offices"`
	Farms       int `json:"farms"`
	Apartments  int `json:"apartments"`
	PowerPlants int `json:"power_plants"`

	Bankrupt         int `json:"bankrupt"`
	ProductsInFlight int `json:"products_in_flight"`
	FieldsPlanted    int `json:"fields_planted"`

	CitizenCash       float64 `json:"citizen_cash"`
	StructureTreasury float64 `json:"structure_treasury"`
	MeanOfficeWage    float64 `json:"mean_office_wage"`
	MeanRentPerSqft   float64 `json:"mean_rent_per_sqft"`
}

func (w *World) Metrics() Metrics {
	m := Metrics{
		Day:         w.day,
		Citizens:    len(w.citizens),
		Offices:     len(w.offices),
		Farms:       len(w.farms),
		Apartments:  len(w.apartments),
		PowerPlants: len(w.plants),
	}
	for _, id := range w.citizenOrder {
		c := w.citizens[id]
		m.CitizenCash += c.cash
		switch {
		case c.occupation.IsEmployee():
			m.Employed++
		case c.occupation.IsFounder():
			m.Founders++
		default:
			m.Unemployed++
		}
		if c.residence != "" {
			m.Housed++
		}
	}
	for _, o := range w.offices {
		m.StructureTreasury += o.Treasury
		m.MeanOfficeWage += o.Wage()
		if o.bankrupt {
			m.Bankrupt++
		}
		if o.Product != nil {
			m.ProductsInFlight++
		}
	}
	if len(w.offices) > 0 {
		m.MeanOfficeWage /= float64(len(w.offices))
	}
	for _, f := range w.farms {
		m.StructureTreasury += f.Treasury
		if f.bankrupt {
			m.Bankrupt++
		}
		if f.planted {
			m.FieldsPlanted++
		}
	}
	for _, a := range w.apartments {
		m.StructureTreasury += a.Treasury
		m.MeanRentPerSqft += a.RentPerSqft
	}
	for _, p := range w.plants {
		m.StructureTreasury += p.Treasury
	}
	if len(w.apartments) > 0 {
		m.MeanRentPerSqft /= float64(len(w.apartments))
	}
	return m
}

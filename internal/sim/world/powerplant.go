package world

type PowerSource string

const (
	PowerCoal  PowerSource = "coal"
	PowerSolar PowerSource = "solar"
	PowerWind  PowerSource = "wind"
)

var powerPlantSuffix = map[PowerSource]string{
	PowerCoal:  "Coalworks",
	PowerSolar: "Solar",
	PowerWind:  "Turbines",
}

func (s PowerSource) Valid() bool {
	_, ok := powerPlantSuffix[s]
	return ok
}

// PowerPlant has no payroll or production yet; it only holds a site and a treasury.
type PowerPlant struct {
	Building
	Source PowerSource
}

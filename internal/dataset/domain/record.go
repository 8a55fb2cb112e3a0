package dataset

// EquipmentRecord is one validated row of equipment data. Immutable
// once produced by the parser.
type EquipmentRecord struct {
	Name        string  `json:"Equipment Name"`
	Type        string  `json:"Type"`
	Flowrate    float64 `json:"Flowrate"`
	Pressure    float64 `json:"Pressure"`
	Temperature float64 `json:"Temperature"`
}

package fleet

// Aircraft is one airframe in the registry. Registration is the natural key
// the registry guards against duplicates.
type Aircraft struct {
	ID                 uint   `gorm:"primaryKey"`
	Model              string `gorm:"not null"`
	Registration       string `gorm:"uniqueIndex;size:16;not null"`
	YearOfManufacture  int    `gorm:"not null"`
	Manufacturer       string `gorm:"not null"`
	PassengerCapacity  *int
	Status             string  `gorm:"size:32;default:Active"`
	TotalFlightHours   float64 `gorm:"not null;default:0"`
	Cycles             int     `gorm:"not null;default:0"`
	OwnerOperator      string
	LastInspectionDate string
	CurrentLocation    string
}

func (Aircraft) TableName() string { return "aircraft" }

// AircraftPart is a component fitted to a specific airframe, tracked
// separately from the maintenance catalog.
type AircraftPart struct {
	ID               uint    `gorm:"primaryKey"`
	PartName         string  `gorm:"not null"`
	PartNumber       string  `gorm:"uniqueIndex;size:64;not null"`
	AircraftID       uint    `gorm:"not null;index"`
	TotalFlightHours float64 `gorm:"not null;default:0"`
}

func (AircraftPart) TableName() string { return "aircraft_parts" }

package constants

// Unit is the canonical unit set every raw invoice unit token is mapped into.
type Unit string

const (
	UnitLiter        Unit = "l"
	UnitKilogram     Unit = "kg"
	UnitPiece        Unit = "pcs"
	UnitKilowattHour Unit = "kwh"
	UnitCubicMeter   Unit = "m3"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitLiter, UnitKilogram, UnitPiece, UnitKilowattHour, UnitCubicMeter:
		return true
	}
	return false
}

func AllUnits() []Unit {
	return []Unit{UnitLiter, UnitKilogram, UnitPiece, UnitKilowattHour, UnitCubicMeter}
}

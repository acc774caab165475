package domain

// Unit is a measurement unit for ingredient quantities. UnitFreeText means
// the textual quantity is authoritative and the numeric one is absent.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitTeaspoon   Unit = "tsp"
	UnitTablespoon Unit = "tbsp"
	UnitCup        Unit = "cup"
	UnitPiece      Unit = "piece"
	UnitFreeText   Unit = "free_text"
)

var knownUnits = map[Unit]bool{
	UnitGram: true, UnitKilogram: true, UnitMilliliter: true, UnitLiter: true,
	UnitTeaspoon: true, UnitTablespoon: true, UnitCup: true, UnitPiece: true,
	UnitFreeText: true,
}

// Valid reports whether the unit is one of the supported values.
func (u Unit) Valid() bool { return knownUnits[u] }

package agro

import "github.com/shopspring/decimal"

// AreaScale is the number of decimal places areas are stored with (hectares)
const AreaScale = 2

// MaxArea is the largest area the numeric(10,2) columns can hold
var MaxArea = decimal.RequireFromString("99999999.99")

// AreasValid reports whether the agricultural and vegetation areas fit inside
// the total area. Equality is allowed.
func AreasValid(total, agricultural, vegetation decimal.Decimal) bool {
	return agricultural.Add(vegetation).LessThanOrEqual(total)
}

// AreaWithinScale reports whether area needs no more than AreaScale decimals
func AreaWithinScale(area decimal.Decimal) bool {
	return area.Equal(area.Round(AreaScale))
}

// RoundArea rounds an area to the stored precision
func RoundArea(area decimal.Decimal) decimal.Decimal {
	return area.Round(AreaScale)
}

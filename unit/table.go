package unit

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerWeek   = 7 * secondsPerDay

	// SecondsPerMonth is the fixed length of a month used when a calendar
	// duration is converted to a fixed unit.
	SecondsPerMonth = 30 * secondsPerDay

	// SecondsPerYear is the fixed length of a year used when a calendar
	// duration is converted to a fixed unit.
	SecondsPerYear = 365 * secondsPerDay
)

var (
	length      = Of(Length)
	mass        = Of(Mass)
	elapsed     = Of(Time)
	temperature = Of(Temperature)
	current     = Of(Current)
	count       = Of(Count)

	area      = length.Mul(length)
	volume    = area.Mul(length)
	speed     = length.Div(elapsed)
	accel     = speed.Div(elapsed)
	force     = mass.Mul(accel)
	energy    = force.Mul(length)
	power     = energy.Div(elapsed)
	pressure  = force.Div(area)
	frequency = Dimension{}.Div(elapsed)
	charge    = current.Mul(elapsed)
	voltage   = power.Div(current)
)

//nolint:gochecknoglobals
var table = []*Unit{
	// length
	{Symbol: "m", Name: "meter", Plural: "meters", Aliases: []string{"metre", "metres"}, Dim: length, Factor: 1},
	{Symbol: "km", Name: "kilometer", Plural: "kilometers", Aliases: []string{"kilometre", "kilometres"}, Dim: length, Factor: 1e3},
	{Symbol: "cm", Name: "centimeter", Plural: "centimeters", Aliases: []string{"centimetre", "centimetres"}, Dim: length, Factor: 1e-2},
	{Symbol: "mm", Name: "millimeter", Plural: "millimeters", Aliases: []string{"millimetre", "millimetres"}, Dim: length, Factor: 1e-3},
	{Symbol: "µm", Name: "micrometer", Plural: "micrometers", Aliases: []string{"um", "micron", "microns"}, Dim: length, Factor: 1e-6},
	{Symbol: "nm", Name: "nanometer", Plural: "nanometers", Dim: length, Factor: 1e-9},
	{Symbol: "mi", Name: "mile", Plural: "miles", Dim: length, Factor: 1609.344},
	{Symbol: "yd", Name: "yard", Plural: "yards", Dim: length, Factor: 0.9144},
	{Symbol: "ft", Name: "foot", Plural: "feet", Dim: length, Factor: 0.3048},
	{Symbol: "inch", Name: "inch", Plural: "inches", Dim: length, Factor: 0.0254},
	{Symbol: "nmi", Name: "nautical mile", Plural: "nautical miles", Dim: length, Factor: 1852},

	// mass
	{Symbol: "kg", Name: "kilogram", Plural: "kilograms", Aliases: []string{"kilo", "kilos"}, Dim: mass, Factor: 1},
	{Symbol: "g", Name: "gram", Plural: "grams", Dim: mass, Factor: 1e-3},
	{Symbol: "mg", Name: "milligram", Plural: "milligrams", Dim: mass, Factor: 1e-6},
	{Symbol: "µg", Name: "microgram", Plural: "micrograms", Aliases: []string{"ug", "mcg"}, Dim: mass, Factor: 1e-9},
	{Symbol: "tonne", Name: "tonne", Plural: "tonnes", Aliases: []string{"metric ton", "metric tons"}, Dim: mass, Factor: 1e3},
	{Symbol: "lb", Name: "pound", Plural: "pounds", Aliases: []string{"lbs"}, Dim: mass, Factor: 0.45359237},
	{Symbol: "oz", Name: "ounce", Plural: "ounces", Dim: mass, Factor: 0.028349523125},
	{Symbol: "st", Name: "stone", Plural: "stones", Dim: mass, Factor: 6.35029318},

	// time
	{Symbol: "ns", Name: "nanosecond", Plural: "nanoseconds", Dim: elapsed, Factor: 1e-9},
	{Symbol: "µs", Name: "microsecond", Plural: "microseconds", Aliases: []string{"us"}, Dim: elapsed, Factor: 1e-6},
	{Symbol: "ms", Name: "millisecond", Plural: "milliseconds", Dim: elapsed, Factor: 1e-3},
	{Symbol: "s", Name: "second", Plural: "seconds", Aliases: []string{"sec", "secs"}, Dim: elapsed, Factor: 1},
	{Symbol: "min", Name: "minute", Plural: "minutes", Aliases: []string{"mins"}, Dim: elapsed, Factor: secondsPerMinute},
	{Symbol: "h", Name: "hour", Plural: "hours", Aliases: []string{"hr", "hrs"}, Dim: elapsed, Factor: secondsPerHour},
	{Symbol: "day", Name: "day", Plural: "days", Aliases: []string{"d"}, Dim: elapsed, Factor: secondsPerDay, Spelled: true},
	{Symbol: "week", Name: "week", Plural: "weeks", Aliases: []string{"wk", "wks"}, Dim: elapsed, Factor: secondsPerWeek, Spelled: true},
	{Symbol: "month", Name: "month", Plural: "months", Aliases: []string{"mo", "mos"}, Dim: elapsed, Factor: SecondsPerMonth, Spelled: true, Calendar: true},
	{Symbol: "year", Name: "year", Plural: "years", Aliases: []string{"yr", "yrs"}, Dim: elapsed, Factor: SecondsPerYear, Spelled: true, Calendar: true},
	{Symbol: "business day", Name: "business day", Plural: "business days", Aliases: []string{"workday", "workdays"}, Dim: elapsed, Factor: secondsPerDay, Spelled: true, Business: true},

	// temperature
	{Symbol: "K", Name: "kelvin", Plural: "kelvins", Dim: temperature, Factor: 1, Affine: true},
	{Symbol: "°C", Name: "celsius", Aliases: []string{"degC", "°c"}, Dim: temperature, Factor: 1, Offset: 273.15, Affine: true},
	{Symbol: "°F", Name: "fahrenheit", Aliases: []string{"degF", "°f"}, Dim: temperature, Factor: 5.0 / 9, Offset: 459.67 * 5 / 9, Affine: true},
	{Symbol: "ΔK", Name: "kelvin difference", Aliases: []string{"deltaK"}, Dim: temperature, Factor: 1},
	{Symbol: "Δ°C", Name: "celsius difference", Aliases: []string{"deltaC", "ΔC"}, Dim: temperature, Factor: 1},
	{Symbol: "Δ°F", Name: "fahrenheit difference", Aliases: []string{"deltaF", "ΔF"}, Dim: temperature, Factor: 5.0 / 9},

	// current and charge
	{Symbol: "A", Name: "ampere", Plural: "amperes", Aliases: []string{"amp", "amps"}, Dim: current, Factor: 1},
	{Symbol: "mA", Name: "milliampere", Plural: "milliamperes", Dim: current, Factor: 1e-3},
	{Symbol: "C", Name: "coulomb", Plural: "coulombs", Dim: charge, Factor: 1},
	{Symbol: "mAh", Name: "milliampere hour", Plural: "milliampere hours", Dim: charge, Factor: 3.6},
	{Symbol: "V", Name: "volt", Plural: "volts", Dim: voltage, Factor: 1},

	// count
	{Symbol: "pcs", Name: "piece", Plural: "pieces", Aliases: []string{"pc", "item", "items"}, Dim: count, Factor: 1},
	{Symbol: "dozen", Name: "dozen", Plural: "dozens", Dim: count, Factor: 12},

	// area
	{Symbol: "m²", Name: "square meter", Plural: "square meters", Aliases: []string{"m2", "sqm"}, Dim: area, Factor: 1},
	{Symbol: "km²", Name: "square kilometer", Plural: "square kilometers", Aliases: []string{"km2"}, Dim: area, Factor: 1e6},
	{Symbol: "ft²", Name: "square foot", Plural: "square feet", Aliases: []string{"ft2", "sqft"}, Dim: area, Factor: 0.09290304},
	{Symbol: "ha", Name: "hectare", Plural: "hectares", Dim: area, Factor: 1e4},
	{Symbol: "acre", Name: "acre", Plural: "acres", Dim: area, Factor: 4046.8564224},

	// volume
	{Symbol: "L", Name: "liter", Plural: "liters", Aliases: []string{"l", "litre", "litres"}, Dim: volume, Factor: 1e-3},
	{Symbol: "mL", Name: "milliliter", Plural: "milliliters", Aliases: []string{"ml", "millilitre", "millilitres"}, Dim: volume, Factor: 1e-6},
	{Symbol: "m³", Name: "cubic meter", Plural: "cubic meters", Aliases: []string{"m3"}, Dim: volume, Factor: 1},
	{Symbol: "gal", Name: "gallon", Plural: "gallons", Dim: volume, Factor: 3.785411784e-3},
	{Symbol: "cup", Name: "cup", Plural: "cups", Dim: volume, Factor: 2.365882365e-4},

	// speed and acceleration
	{Symbol: "kph", Name: "kilometer per hour", Plural: "kilometers per hour", Aliases: []string{"kmh"}, Dim: speed, Factor: 1e3 / secondsPerHour},
	{Symbol: "mph", Name: "mile per hour", Plural: "miles per hour", Dim: speed, Factor: 1609.344 / secondsPerHour},
	{Symbol: "kn", Name: "knot", Plural: "knots", Dim: speed, Factor: 1852.0 / secondsPerHour},
	{Symbol: "gee", Name: "standard gravity", Dim: accel, Factor: 9.80665},

	// force, energy, power, pressure, frequency
	{Symbol: "N", Name: "newton", Plural: "newtons", Dim: force, Factor: 1},
	{Symbol: "J", Name: "joule", Plural: "joules", Dim: energy, Factor: 1},
	{Symbol: "kJ", Name: "kilojoule", Plural: "kilojoules", Dim: energy, Factor: 1e3},
	{Symbol: "cal", Name: "calorie", Plural: "calories", Dim: energy, Factor: 4.184},
	{Symbol: "kcal", Name: "kilocalorie", Plural: "kilocalories", Dim: energy, Factor: 4184},
	{Symbol: "Wh", Name: "watt hour", Plural: "watt hours", Dim: energy, Factor: secondsPerHour},
	{Symbol: "kWh", Name: "kilowatt hour", Plural: "kilowatt hours", Dim: energy, Factor: 1e3 * secondsPerHour},
	{Symbol: "W", Name: "watt", Plural: "watts", Dim: power, Factor: 1},
	{Symbol: "kW", Name: "kilowatt", Plural: "kilowatts", Dim: power, Factor: 1e3},
	{Symbol: "hp", Name: "horsepower", Dim: power, Factor: 745.69987158227022},
	{Symbol: "Pa", Name: "pascal", Plural: "pascals", Dim: pressure, Factor: 1},
	{Symbol: "kPa", Name: "kilopascal", Plural: "kilopascals", Dim: pressure, Factor: 1e3},
	{Symbol: "bar", Name: "bar", Plural: "bars", Dim: pressure, Factor: 1e5},
	{Symbol: "psi", Name: "pound per square inch", Dim: pressure, Factor: 6894.757293168},
	{Symbol: "Hz", Name: "hertz", Dim: frequency, Factor: 1},
	{Symbol: "kHz", Name: "kilohertz", Dim: frequency, Factor: 1e3},
	{Symbol: "MHz", Name: "megahertz", Dim: frequency, Factor: 1e6},
}

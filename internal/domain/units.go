package domain

// Unit conversion for provider payloads. Conversions are idempotent: values
// already tagged with the metric target unit pass through unchanged, and so
// do values with unit strings we do not recognize (lenient fallback, not an
// error).

// ToCelsius converts a temperature tagged with the given unit to Celsius.
func ToCelsius(value float64, unit string) float64 {
	switch unit {
	case "F", "°F", "Fahrenheit":
		return (value - 32) * 5 / 9
	default:
		return value
	}
}

// ToMillimeters converts a liquid amount tagged with the given unit to mm.
func ToMillimeters(value float64, unit string) float64 {
	switch unit {
	case "in", "Inches":
		return value * 25.4
	case "cm", "Centimeters":
		return value * 10
	default:
		return value
	}
}

// ToKilometersPerHour converts a speed tagged with the given unit to km/h.
func ToKilometersPerHour(value float64, unit string) float64 {
	switch unit {
	case "mi/h", "mph", "Miles/Hour":
		return value * 1.609344
	case "kn", "Knots":
		return value * 1.852
	case "m/s", "Meters/Second":
		return value * 3.6
	default:
		return value
	}
}

package accuweather

// Wire types for the AccuWeather forecast API. Magnitudes arrive unit-tagged;
// normalization converts them to metric and drops everything the risk
// pipeline does not need.

// UnitValue is AccuWeather's tagged magnitude.
type UnitValue struct {
	Value float64 `json:"Value"`
	Unit  string  `json:"Unit"`
}

// Wind bundles speed and direction.
type Wind struct {
	Speed     *UnitValue `json:"Speed"`
	Direction *struct {
		Degrees   float64 `json:"Degrees"`
		Localized string  `json:"Localized"`
	} `json:"Direction"`
}

// HalfDay is the Day or Night block of a daily forecast.
type HalfDay struct {
	IconPhrase               string     `json:"IconPhrase"`
	PrecipitationProbability *int       `json:"PrecipitationProbability"`
	RainProbability          *int       `json:"RainProbability"`
	TotalLiquid              *UnitValue `json:"TotalLiquid"`
	Wind                     *Wind      `json:"Wind"`
	WindGust                 *Wind      `json:"WindGust"`
}

// DailyForecast is one day object of the daily endpoint.
type DailyForecast struct {
	Date        string `json:"Date"`
	Temperature struct {
		Minimum *UnitValue `json:"Minimum"`
		Maximum *UnitValue `json:"Maximum"`
	} `json:"Temperature"`
	Day   *HalfDay `json:"Day"`
	Night *HalfDay `json:"Night"`
}

// DailyResponse is the daily endpoint envelope.
type DailyResponse struct {
	DailyForecasts []DailyForecast `json:"DailyForecasts"`
}

// HourlyForecast is one entry of the 12-hour hourly endpoint.
type HourlyForecast struct {
	DateTime                 string     `json:"DateTime"`
	IconPhrase               string     `json:"IconPhrase"`
	Temperature              *UnitValue `json:"Temperature"`
	PrecipitationProbability *int       `json:"PrecipitationProbability"`
	TotalLiquid              *UnitValue `json:"TotalLiquid"`
	Wind                     *Wind      `json:"Wind"`
}

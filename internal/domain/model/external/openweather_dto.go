package external

// GeocodeResponse is an entry of the direct and reverse geocoding endpoints.
type GeocodeResponse struct {
	Name    string  `json:"name"`
	State   string  `json:"state"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Zip     string  `json:"zip"`
}

// ZipGeocodeResponse is the body of the postal code endpoint.
type ZipGeocodeResponse struct {
	Zip     string  `json:"zip"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type WeatherDescription struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentWeatherResponse is the body of data/2.5/weather.
type CurrentWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
	Weather []WeatherDescription `json:"weather"`
	Wind    struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Dt int64 `json:"dt"`
}

// ForecastResponse is the body of data/2.5/forecast.
type ForecastResponse struct {
	City ForecastCity   `json:"city"`
	List []ForecastItem `json:"list"`
}

type ForecastCity struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Timezone int64  `json:"timezone"`
}

type ForecastItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp    *float64 `json:"temp"`
		TempMin *float64 `json:"temp_min"`
		TempMax *float64 `json:"temp_max"`
	} `json:"main"`
	Weather []WeatherDescription `json:"weather"`
}

// APIErrorResponse is the error body returned by OpenWeather. Cod is a number on some
// endpoints and a string on others.
type APIErrorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

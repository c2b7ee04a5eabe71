// Package weather looks up current conditions and a short forecast from Open-Meteo.
package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/units"
	"github.com/tartampluch/go-folio/internal/upstream"
)

// Errors returned by Lookup. Their messages are safe to show to users.
var (
	ErrCityRequired = errors.New(config.ErrCityRequired)
	ErrCityNotFound = errors.New(config.ErrCityNotFound)
	ErrUnavailable  = errors.New(config.ErrWeatherDown)
)

// Place is the geocoding match used for the forecast.
type Place struct {
	Name      string  `json:"name"`
	Region    string  `json:"region,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// Label is "Name, Country" or just the name.
func (p Place) Label() string {
	if p.Country == "" {
		return p.Name
	}
	return p.Name + config.DescribeSeparator + p.Country
}

// Current holds the conditions at lookup time.
type Current struct {
	Time       string  `json:"time"`
	Celsius    float64 `json:"celsius"`
	Fahrenheit float64 `json:"fahrenheit"`
	WindKph    float64 `json:"windKph"`
	WindMph    float64 `json:"windMph"`
	Code       int     `json:"code"`
}

// Day is one forecast entry.
type Day struct {
	Date          string  `json:"date"`
	MinCelsius    float64 `json:"minCelsius"`
	MaxCelsius    float64 `json:"maxCelsius"`
	MinFahrenheit float64 `json:"minFahrenheit"`
	MaxFahrenheit float64 `json:"maxFahrenheit"`
	Code          int     `json:"code"`
}

// Report is the result of a successful lookup.
type Report struct {
	Place    Place   `json:"place"`
	Current  Current `json:"current"`
	Forecast []Day   `json:"forecast"`
}

// Client queries the geocoding and forecast endpoints.
type Client struct {
	GeocodingURL string
	ForecastURL  string
	Language     string
	Days         int

	http *upstream.Client
}

// NewClient builds a client for the given endpoints. Empty URLs select Open-Meteo.
func NewClient(geocodingURL, forecastURL string, opts ...upstream.Option) *Client {
	if geocodingURL == "" {
		geocodingURL = config.DefaultGeocodingURL
	}
	if forecastURL == "" {
		forecastURL = config.DefaultForecastURL
	}
	return &Client{
		GeocodingURL: geocodingURL,
		ForecastURL:  forecastURL,
		Language:     config.DefaultLanguage,
		Days:         config.DefaultForecastDays,
		http:         upstream.New(config.UpstreamWeather, opts...),
	}
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Admin1    string  `json:"admin1"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

type forecastResponse struct {
	Current struct {
		Time        string  `json:"time"`
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		Time           []string  `json:"time"`
		WeatherCode    []int     `json:"weather_code"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// Lookup resolves city and fetches its weather.
// Upstream failures of any kind are reported as ErrUnavailable.
func (c *Client) Lookup(ctx context.Context, city string) (Report, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Report{}, ErrCityRequired
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompWeather),
		slog.String(config.LogKeyCity, city),
	)

	place, err := c.geocode(ctx, city)
	if err != nil {
		log.Warn(config.MsgWeatherLookup, config.LogKeyError, err)
		return Report{}, err
	}

	report, err := c.forecast(ctx, place)
	if err != nil {
		log.Warn(config.MsgWeatherLookup, config.LogKeyError, err)
		return Report{}, err
	}

	log.Info(config.MsgWeatherLookup, config.LogKeyTarget, place.Label())
	return report, nil
}

func (c *Client) geocode(ctx context.Context, city string) (Place, error) {
	q := url.Values{}
	q.Set("name", city)
	q.Set("count", "1")
	q.Set("language", c.Language)
	q.Set("format", "json")

	var resp geocodingResponse
	if err := c.http.GetJSON(ctx, c.GeocodingURL, q, &resp); err != nil {
		return Place{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(resp.Results) == 0 {
		return Place{}, ErrCityNotFound
	}

	r := resp.Results[0]
	return Place{
		Name:      r.Name,
		Region:    r.Admin1,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Timezone:  r.Timezone,
	}, nil
}

func (c *Client) forecast(ctx context.Context, place Place) (Report, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(place.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(place.Longitude, 'f', -1, 64))
	q.Set("current", "temperature_2m,weather_code,wind_speed_10m")
	q.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min")
	q.Set("timezone", "auto")
	q.Set("forecast_days", strconv.Itoa(c.Days))

	var resp forecastResponse
	if err := c.http.GetJSON(ctx, c.ForecastURL, q, &resp); err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	cur := resp.Current
	report := Report{
		Place: place,
		Current: Current{
			Time:       cur.Time,
			Celsius:    round1(cur.Temperature),
			Fahrenheit: fahrenheit(cur.Temperature),
			WindKph:    round1(cur.WindSpeed),
			WindMph:    round1(units.ConvertLinear(cur.WindSpeed, units.KilometerPerHour, units.MilePerHour)),
			Code:       cur.WeatherCode,
		},
	}

	// Open-Meteo returns parallel arrays; trust only the shortest one.
	daily := resp.Daily
	n := min(len(daily.Time), len(daily.WeatherCode), len(daily.TemperatureMax), len(daily.TemperatureMin))
	report.Forecast = make([]Day, 0, n)
	for i := range n {
		report.Forecast = append(report.Forecast, Day{
			Date:          daily.Time[i],
			MinCelsius:    round1(daily.TemperatureMin[i]),
			MaxCelsius:    round1(daily.TemperatureMax[i]),
			MinFahrenheit: fahrenheit(daily.TemperatureMin[i]),
			MaxFahrenheit: fahrenheit(daily.TemperatureMax[i]),
			Code:          daily.WeatherCode[i],
		})
	}
	return report, nil
}

func fahrenheit(celsius float64) float64 {
	return round1(units.ConvertTemperature(celsius, units.Celsius, units.Fahrenheit))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

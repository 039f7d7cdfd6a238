package factors

import (
	"math"

	"github.com/yourusername/hr-predictor/internal/models"
)

const (
	neutralTempF    = 70.0
	neutralHumidity = 50.0
	calmWindMPH     = 5.0
	strongWindMPH   = 15.0
)

// Weather combines temperature, wind, humidity and pressure into one factor in [0.7, 1.5].
// orientation is the bearing from home plate to center field.
func Weather(w models.WeatherSample, orientation float64) float64 {
	if w.IsZero() {
		return 1.0
	}
	temp := orDefault(w.TempF, neutralTempF)
	humidity := orDefault(w.Humidity, neutralHumidity)

	combined := Temperature(temp) *
		Wind(w.WindSpeed, w.WindDeg, orientation) *
		Humidity(humidity) *
		Pressure(temp, humidity)
	return clamp(combined, 0.7, 1.5)
}

// Temperature adds 1% per degree above 70°F and removes 0.5% per degree below,
// with extra swings above 90°F and below 50°F.
func Temperature(tempF float64) float64 {
	tempF = orDefault(tempF, neutralTempF)

	var f float64
	if tempF > neutralTempF {
		f = 1 + (tempF-neutralTempF)*0.01
	} else {
		f = 1 - (neutralTempF-tempF)*0.005
	}
	switch {
	case tempF > 90:
		f *= 1.08
	case tempF < 50:
		f *= 0.92
	}
	return f
}

// Wind is 2% per mph when blowing out toward center, -2% per mph when blowing in,
// neutral for crosswinds and light wind. Result is in [0.7, 1.5].
func Wind(speed, fromDeg, orientation float64) float64 {
	if !finite(speed) || speed <= calmWindMPH {
		return 1.0
	}
	fromDeg = orDefault(fromDeg, 0)
	orientation = orDefault(orientation, 0)

	// a tailwind comes from behind home plate
	tailwindFrom := math.Mod(orientation+180, 360)
	diff := angularDistance(fromDeg, tailwindFrom)

	f := 1.0
	switch {
	case diff < 45:
		f = 1 + speed*0.02
		if speed > strongWindMPH {
			f *= 1.15
		}
	case diff > 135:
		f = 1 - speed*0.02
		if speed > strongWindMPH {
			f *= 0.85
		}
	}
	return clamp(f, 0.7, 1.5)
}

// Humidity slightly favors dry air
func Humidity(humidity float64) float64 {
	humidity = orDefault(humidity, neutralHumidity)

	var f float64
	if humidity > neutralHumidity {
		f = 1 - (humidity-neutralHumidity)*0.001
	} else {
		f = 1 + (neutralHumidity-humidity)*0.001
	}
	switch {
	case humidity > 80:
		f *= 0.95
	case humidity < 30:
		f *= 1.05
	}
	return f
}

// Pressure approximates air density from temperature and humidity
func Pressure(tempF, humidity float64) float64 {
	switch {
	case tempF > 80 && humidity < 40:
		return 1.06
	case tempF < 60 && humidity > 70:
		return 0.96
	default:
		return 1.0
	}
}

// angularDistance is the smallest angle between two bearings, in [0, 180]
func angularDistance(a, b float64) float64 {
	d := math.Abs(math.Mod(a-b, 360))
	if d > 180 {
		d = 360 - d
	}
	return d
}

func orDefault(v, def float64) float64 {
	if !finite(v) {
		return def
	}
	return v
}

package handlers

import (
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/echotrace/echo-trace/internal/model"
)

// Synthetic wearable readings. Everything here is fabricated per request;
// there is no device behind it.

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Healthcheck() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"ok":      true,
			"service": "echo-trace-backend",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func GetDashboard() echo.HandlerFunc {
	stressLevels := []string{"Low", "Medium", "High"}
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"ok": true,
			"stats": echo.Map{
				"heartRate":    68 + rand.Intn(12),
				"oxygen":       96 + rand.Intn(4),
				"temperatureC": round1(36.4 + rand.Float64()*0.8),
				"stress":       stressLevels[rand.Intn(len(stressLevels))],
				"sleepHours":   round1(6.5 + rand.Float64()*2.2),
				"safetyStatus": "All systems active",
			},
			"device": echo.Map{
				"watchConnected": true,
				"crashDetection": true,
			},
		})
	}
}

func GetHealthSeries() echo.HandlerFunc {
	labels6h := []string{"-6h", "-5h", "-4h", "-3h", "-2h", "-1h", "Now"}
	labels24h := []string{"-24h", "-21h", "-18h", "-15h", "-12h", "-9h", "-6h", "-3h", "Now"}
	labels7d := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	return func(c echo.Context) error {
		hr := make([]int, len(labels6h))
		for i := range hr {
			hr[i] = 70 + int(math.Round(8*math.Sin(float64(i)/2)+(rand.Float64()*6-3)))
		}

		stress := make([]int, len(labels24h))
		for i := range stress {
			base := 4 + 2*math.Sin(float64(i)/1.3)
			bump := 0.0
			if i > 5 {
				bump = 1
			}
			stress[i] = clamp(int(math.Round(base+(rand.Float64()*2-1)+bump)), 1, 10)
		}

		sleep := make([]float64, len(labels7d))
		for i := range sleep {
			sleep[i] = round1(6.8 + 0.9*math.Sin(float64(i)/1.1) + (rand.Float64()*0.6 - 0.3))
		}

		return c.JSON(http.StatusOK, echo.Map{"ok": true, "series": echo.Map{
			"labels6h":  labels6h,
			"hr":        hr,
			"labels24h": labels24h,
			"stress":    stress,
			"labels7d":  labels7d,
			"sleep":     sleep,
		}})
	}
}

func GetStatsCharts() echo.HandlerFunc {
	labels7 := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	return func(c echo.Context) error {
		labels30 := make([]string, 30)
		safety := make([]int, 30)
		for i := range safety {
			labels30[i] = "Day " + strconv.Itoa(i+1)
			trend := 72 + 8*math.Sin(float64(i)/4)
			safety[i] = clamp(int(math.Round(trend+(rand.Float64()*6-3))), 40, 95)
		}

		activity := make([]int, len(labels7))
		for i := range activity {
			activity[i] = clamp(int(math.Round(55+25*math.Sin(float64(i+1)/1.4)+(rand.Float64()*10-5))), 10, 100)
		}

		return c.JSON(http.StatusOK, echo.Map{"ok": true, "charts": echo.Map{
			"labels30": labels30,
			"safety":   safety,
			"labels7":  labels7,
			"activity": activity,
		}})
	}
}

func GetLocations() echo.HandlerFunc {
	type point struct {
		Time string `json:"time"`
		model.Location
	}
	history := []point{
		{Time: "15:42", Location: model.Location{Lat: 19.0760, Lng: 72.8777, Label: "Mumbai Central, Maharashtra, India"}},
		{Time: "14:30", Location: model.Location{Lat: 19.0596, Lng: 72.8295, Label: "Bandra West, Mumbai"}},
		{Time: "13:15", Location: model.Location{Lat: 19.0990, Lng: 72.8258, Label: "Juhu Beach, Mumbai"}},
		{Time: "12:00", Location: model.Location{Lat: 19.1136, Lng: 72.8697, Label: "Home Location (Andheri), Mumbai"}},
	}
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "current": history[0], "history": history})
	}
}

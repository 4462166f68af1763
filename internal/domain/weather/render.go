package weather

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrDivisionUndefined is returned when averaging an empty sample set.
var ErrDivisionUndefined = errors.New("cannot average an empty sample set")

// Render averages the hourly samples and builds the reply and summary.
func Render(location string, window TimeWindow, temps, precs []float64) (AgentReply, error) {
	avgTemp, err := mean(temps)
	if err != nil {
		return AgentReply{}, fmt.Errorf("temperature: %w", err)
	}
	avgPrec, err := mean(precs)
	if err != nil {
		return AgentReply{}, fmt.Errorf("precipitation: %w", err)
	}
	return RenderAverages(location, window, avgTemp, avgPrec), nil
}

// RenderAverages builds the reply and summary from precomputed means.
func RenderAverages(location string, window TimeWindow, avgTempC, avgPrecMM float64) AgentReply {
	tod := TimeOfDay(window)
	temp := roundHalfEven(avgTempC)

	rainPhrase := "dry skies"
	rainDesc := "no rain expected"
	if avgPrecMM > 0 {
		rainPhrase = "some rain"
		rainDesc = "light rain/drizzle likely"
	}

	reply := fmt.Sprintf("In %s during the %s, it’ll be around %d°C with %s.\n%s",
		location, tod, temp, rainPhrase, Advice(avgTempC, avgPrecMM))
	summary := fmt.Sprintf("%s, %s: about %d°C, %s. %s.",
		location, tod, temp, rainDesc, clothingHint(avgTempC))
	return AgentReply{Reply: reply, Summary: summary}
}

// TimeOfDay labels a window by its midpoint hour.
func TimeOfDay(window TimeWindow) string {
	hour := (window.StartHour + window.EndHour) / 2
	switch {
	case hour >= 5 && hour < 11:
		return "morning"
	case hour >= 11 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}

// Advice is the plain-language clothing and rain guidance.
func Advice(avgTempC, avgPrecMM float64) string {
	bits := make([]string, 0, 2)
	switch {
	case avgTempC < 12:
		bits = append(bits, "Wear something warm, like a sweater or coat.")
	case avgTempC < 18:
		bits = append(bits, "A light jacket should be fine.")
	default:
		bits = append(bits, "You’ll be comfortable in regular clothes.")
	}
	switch {
	case avgPrecMM > 0.2:
		bits = append(bits, "Don’t forget an umbrella — there’s a good chance of rain.")
	case avgPrecMM > 0:
		bits = append(bits, "There might be a light drizzle, so keep an umbrella handy.")
	}
	return strings.Join(bits, " ")
}

func clothingHint(avgTempC float64) string {
	switch {
	case avgTempC < 12:
		return "bundle up, it's chilly"
	case avgTempC < 18:
		return "light jacket ok"
	default:
		return "regular clothes fine"
	}
}

func mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrDivisionUndefined
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// roundHalfEven rounds ties to the even neighbour, so 2.5 becomes 2.
func roundHalfEven(v float64) int {
	return int(math.RoundToEven(v))
}

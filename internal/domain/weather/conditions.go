package weather

// conditionDescriptions maps Open-Meteo WMO weather codes to plain words.
var conditionDescriptions = map[int]string{
	0:  "clear skies",
	1:  "mostly clear",
	2:  "partly cloudy",
	3:  "overcast",
	45: "foggy",
	48: "rime fog",
	51: "light drizzle",
	61: "light rain",
	63: "moderate rain",
	65: "heavy rain",
	71: "snow",
	95: "thunderstorms",
}

// DescribeCondition returns the description for a weather code.
func DescribeCondition(code int) string {
	if desc, ok := conditionDescriptions[code]; ok {
		return desc
	}
	return "uncertain conditions"
}

// dominantCode returns the most frequent code, earliest first on ties.
func dominantCode(codes []int) (int, bool) {
	if len(codes) == 0 {
		return 0, false
	}
	counts := make(map[int]int, len(codes))
	best, bestCount := codes[0], 0
	for _, code := range codes {
		counts[code]++
	}
	for _, code := range codes {
		if counts[code] > bestCount {
			best, bestCount = code, counts[code]
		}
	}
	return best, true
}

package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderReplyAndSummary(t *testing.T) {
	cases := []struct {
		name     string
		location string
		window   TimeWindow
		temps    []float64
		precs    []float64
		reply    string
		summary  string
	}{
		{
			name:     "cold and wet morning",
			location: "Fremont",
			window:   TimeWindow{StartHour: 8, EndHour: 10},
			temps:    []float64{10.4, 11.6},
			precs:    []float64{0.3, 0.5},
			reply:    "In Fremont during the morning, it’ll be around 11°C with some rain.\nWear something warm, like a sweater or coat. Don’t forget an umbrella — there’s a good chance of rain.",
			summary:  "Fremont, morning: about 11°C, light rain/drizzle likely. bundle up, it's chilly.",
		},
		{
			name:     "mild drizzle afternoon",
			location: "Paris",
			window:   TimeWindow{StartHour: 12, EndHour: 14},
			temps:    []float64{15, 16},
			precs:    []float64{0, 0.2},
			reply:    "In Paris during the afternoon, it’ll be around 16°C with some rain.\nA light jacket should be fine. There might be a light drizzle, so keep an umbrella handy.",
			summary:  "Paris, afternoon: about 16°C, light rain/drizzle likely. light jacket ok.",
		},
		{
			name:     "warm dry evening",
			location: "Tokyo",
			window:   TimeWindow{StartHour: 18, EndHour: 20},
			temps:    []float64{22.5},
			precs:    []float64{0},
			reply:    "In Tokyo during the evening, it’ll be around 22°C with dry skies.\nYou’ll be comfortable in regular clothes.",
			summary:  "Tokyo, evening: about 22°C, no rain expected. regular clothes fine.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Render(tc.location, tc.window, tc.temps, tc.precs)
			require.NoError(t, err)
			require.Equal(t, tc.reply, got.Reply)
			require.Equal(t, tc.summary, got.Summary)

			again, err := Render(tc.location, tc.window, tc.temps, tc.precs)
			require.NoError(t, err)
			require.Equal(t, got, again)
		})
	}
}

func TestRenderEmptySamples(t *testing.T) {
	_, err := Render("Fremont", DefaultWindow, nil, []float64{0})
	require.ErrorIs(t, err, ErrDivisionUndefined)
	_, err = Render("Fremont", DefaultWindow, []float64{10}, []float64{})
	require.ErrorIs(t, err, ErrDivisionUndefined)
}

func TestTimeOfDayBoundaries(t *testing.T) {
	cases := map[TimeWindow]string{
		{StartHour: 0, EndHour: 2}:   "night",
		{StartHour: 3, EndHour: 5}:   "night",
		{StartHour: 4, EndHour: 6}:   "morning",
		{StartHour: 9, EndHour: 11}:  "morning",
		{StartHour: 10, EndHour: 12}: "afternoon",
		{StartHour: 15, EndHour: 17}: "afternoon",
		{StartHour: 16, EndHour: 18}: "evening",
		{StartHour: 19, EndHour: 21}: "evening",
		{StartHour: 20, EndHour: 22}: "night",
		{StartHour: 30, EndHour: 32}: "night",
	}
	for window, want := range cases {
		require.Equal(t, want, TimeOfDay(window), "%+v", window)
	}
}

func TestAdviceThresholds(t *testing.T) {
	require.Equal(t, "Wear something warm, like a sweater or coat.", Advice(11.9, 0))
	require.Equal(t, "A light jacket should be fine.", Advice(12, 0))
	require.Equal(t, "You’ll be comfortable in regular clothes.", Advice(18, 0))
	require.Contains(t, Advice(20, 0.2), "light drizzle")
	require.Contains(t, Advice(20, 0.21), "umbrella — there’s a good chance")
}

func TestDescribeCondition(t *testing.T) {
	require.Equal(t, "light rain", DescribeCondition(61))
	require.Equal(t, "uncertain conditions", DescribeCondition(2000))

	code, ok := dominantCode([]int{3, 61, 61, 3})
	require.True(t, ok)
	require.Equal(t, 3, code)
	_, ok = dominantCode(nil)
	require.False(t, ok)
}

package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/weather-buddy/pkg/errors"
)

type serviceFixture struct {
	rec       *stubRecognizer
	parser    *stubDateParser
	geocoder  *stubGeocoder
	forecast  *stubForecast
	generator *stubGenerator
}

func (f serviceFixture) build(cfg Config) Service {
	base := newAssemblerUnderTest(f.rec, f.parser)
	var gen TextGenerator
	if f.generator != nil {
		gen = f.generator
	}
	reasoning := NewReasoningAssembler(base, gen, cfg.DefaultLocation, newTestLogger())
	fetcher := newFetcherUnderTest(f.geocoder, f.forecast)
	return NewService(cfg, base, reasoning, fetcher, gen, newTestLogger())
}

func sunnySeries() HourlySeries {
	return HourlySeries{
		TemperatureC:    []*float64{floatPtr(21), floatPtr(23)},
		PrecipitationMM: []*float64{floatPtr(0), floatPtr(0)},
		WeatherCodes:    []*int{intPtr(0), intPtr(0)},
	}
}

func TestServiceHandleSuccess(t *testing.T) {
	fx := serviceFixture{
		rec:      &stubRecognizer{spans: map[string]Label{"Fremont": LabelGPE}},
		parser:   &stubDateParser{},
		geocoder: &stubGeocoder{found: true, place: Place{Name: "Fremont"}},
		forecast: &stubForecast{series: sunnySeries()},
	}
	svc := fx.build(Config{DefaultLocation: "Newark, CA"})

	resp, err := svc.Handle(context.Background(), Request{Text: "Do I need an umbrella in Fremont?"})
	require.NoError(t, err)
	require.Equal(t, "In Fremont during the night, it’ll be around 22°C with dry skies.\nYou’ll be comfortable in regular clothes.", resp.Reply)
	require.Equal(t, "Fremont, night: about 22°C, no rain expected. regular clothes fine.", resp.Summary)
	require.NotNil(t, resp.Forecast)
	require.Equal(t, "clear skies", resp.Forecast.Condition)
	require.Equal(t, []float64{21, 23}, resp.Forecast.TemperaturesC)
	require.Equal(t, DefaultWindow, resp.Intent.Window())
	require.Empty(t, resp.Code)
}

func TestServiceHandleLocationNotFound(t *testing.T) {
	fx := serviceFixture{
		rec:      &stubRecognizer{spans: map[string]Label{"Atlantis": LabelGPE}},
		parser:   &stubDateParser{},
		geocoder: &stubGeocoder{},
		forecast: &stubForecast{},
	}
	resp, err := fx.build(Config{DefaultLocation: "Newark, CA"}).Handle(context.Background(), Request{Text: "Weather in Atlantis?"})
	require.NoError(t, err)
	require.Equal(t, "Sorry, I couldn’t find any weather information for Atlantis.", resp.Reply)
	require.Equal(t, "Weather unknown for Atlantis right now.", resp.Summary)
	require.False(t, resp.Forecast.OK)
	require.Equal(t, apperrors.CodeLocationNotFound, resp.Code)
}

func TestServiceHandleTransportFailure(t *testing.T) {
	fx := serviceFixture{
		rec:      &stubRecognizer{spans: map[string]Label{"Paris": LabelGPE}},
		parser:   &stubDateParser{},
		geocoder: &stubGeocoder{err: errors.New("dial tcp: i/o timeout")},
		forecast: &stubForecast{},
	}
	resp, err := fx.build(Config{}).Handle(context.Background(), Request{Text: "Is it warm enough Paris for picnic?"})
	require.NoError(t, err)
	require.Contains(t, resp.Reply, "Oops, something went wrong fetching the weather: ")
	require.Contains(t, resp.Reply, "i/o timeout")
	require.Equal(t, "Weather unknown for Paris right now.", resp.Summary)
}

func TestServiceHandleAsksForClarification(t *testing.T) {
	fx := serviceFixture{rec: &stubRecognizer{}, parser: &stubDateParser{}, geocoder: &stubGeocoder{}, forecast: &stubForecast{}}
	resp, err := fx.build(Config{DefaultLocation: "Newark, CA"}).Handle(context.Background(), Request{Text: "Can I walk outside later or no?"})
	require.NoError(t, err)
	require.Equal(t, clarifyReply, resp.Reply)
	require.Equal(t, clarifySummary, resp.Summary)
	require.Equal(t, apperrors.CodeExtractionAmbiguous, resp.Code)
	require.Nil(t, resp.Intent.Location)
	require.Empty(t, fx.geocoder.queries)
}

func TestServiceHandleRejectsBadInput(t *testing.T) {
	fx := serviceFixture{rec: &stubRecognizer{}, parser: &stubDateParser{}, geocoder: &stubGeocoder{}, forecast: &stubForecast{}}
	svc := fx.build(Config{})

	_, err := svc.Handle(context.Background(), Request{Text: "   "})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Handle(context.Background(), Request{Text: "weather", Strategy: "psychic"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestServiceReasoningStrategyPhrasesReply(t *testing.T) {
	fx := serviceFixture{
		rec:       &stubRecognizer{},
		parser:    &stubDateParser{},
		geocoder:  &stubGeocoder{found: true, place: Place{Name: "Toronto"}},
		forecast:  &stubForecast{series: sunnySeries()},
		generator: &stubGenerator{responses: []string{`{"location": "Toronto", "hours": 6}`, "  Lovely and dry in Toronto, about 22°C.  "}},
	}
	svc := fx.build(Config{DefaultLocation: "Newark, CA", Strategy: StrategyReasoning, PhraseReplies: true})

	resp, err := svc.Handle(context.Background(), Request{Text: "Will it rain in Toronto?"})
	require.NoError(t, err)
	require.Equal(t, "Lovely and dry in Toronto, about 22°C.", resp.Reply)
	require.Equal(t, "Toronto, morning: about 22°C, no rain expected. regular clothes fine.", resp.Summary)
	require.Equal(t, TimeWindow{StartHour: 6, EndHour: 8}, resp.Intent.Window())
	require.Len(t, fx.generator.prompts, 2)
}

func TestServiceReasoningKeepsReplyWhenPhrasingEmpty(t *testing.T) {
	fx := serviceFixture{
		rec:       &stubRecognizer{},
		parser:    &stubDateParser{},
		geocoder:  &stubGeocoder{found: true, place: Place{Name: "Toronto"}},
		forecast:  &stubForecast{series: sunnySeries()},
		generator: &stubGenerator{responses: []string{`{"location": "Toronto"}`}},
	}
	svc := fx.build(Config{Strategy: StrategyAPI, PhraseReplies: true})

	resp, err := svc.Handle(context.Background(), Request{Text: "Will it rain in Toronto?", Strategy: StrategyReasoning})
	require.NoError(t, err)
	require.Equal(t, "In Toronto during the night, it’ll be around 22°C with dry skies.\nYou’ll be comfortable in regular clothes.", resp.Reply)
}

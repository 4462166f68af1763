package weather

import "time"

// Label classifies a recognised entity span.
type Label string

const (
	LabelGPE  Label = "GPE"
	LabelDate Label = "DATE"
	LabelTime Label = "TIME"
)

// Entity is a labelled span returned by an EntityRecognizer.
type Entity struct {
	Text  string
	Label Label
	Start int
}

// ExtractedEntities is the raw result of entity extraction.
type ExtractedEntities struct {
	Location   *string
	TimePhrase *string
}

// TimeWindow is a forecast window in whole hours from now.
type TimeWindow struct {
	StartHour int `json:"startHour"`
	EndHour   int `json:"endHour"`
}

// DefaultWindow covers the next couple of hours.
var DefaultWindow = TimeWindow{StartHour: 0, EndHour: 2}

func windowFrom(start int) TimeWindow {
	if start < 0 {
		start = 0
	}
	return TimeWindow{StartHour: start, EndHour: start + 2}
}

// WeatherIntent is the assembled understanding of a weather question.
type WeatherIntent struct {
	Location   *string `json:"location"`
	TimePhrase *string `json:"timePhrase"`
	StartHour  int     `json:"startHour"`
	EndHour    int     `json:"endHour"`
}

// Window returns the intent's hour window.
func (i WeatherIntent) Window() TimeWindow {
	return TimeWindow{StartHour: i.StartHour, EndHour: i.EndHour}
}

// ForecastBlock holds the averaged forecast numbers for a window.
type ForecastBlock struct {
	OK           bool    `json:"ok"`
	AvgTempC     float64 `json:"avgTempC,omitempty"`
	AvgPrecMM    float64 `json:"avgPrecMm,omitempty"`
	ResolvedName string  `json:"resolvedName,omitempty"`
	Condition    string  `json:"condition,omitempty"`
	Samples      int     `json:"samples,omitempty"`
	Error        string  `json:"error,omitempty"`

	// TemperaturesC and PrecipitationMM are the aligned hourly samples.
	TemperaturesC   []float64 `json:"temperaturesC,omitempty"`
	PrecipitationMM []float64 `json:"precipitationMm,omitempty"`
}

// AgentReply pairs the user-facing answer with a cacheable summary.
type AgentReply struct {
	Reply   string `json:"reply"`
	Summary string `json:"summary"`
}

// Place is a geocoding candidate.
type Place struct {
	Name      string
	Latitude  float64
	Longitude float64
	Country   string
	Admin1    string
}

// HourlySeries is the raw hourly forecast. Values may be missing.
type HourlySeries struct {
	Times           []time.Time
	TemperatureC    []*float64
	PrecipitationMM []*float64
	WeatherCodes    []*int
}

// Strategy selects how intents are extracted.
type Strategy string

const (
	StrategyAPI       Strategy = "api"
	StrategyReasoning Strategy = "reasoning"
)

// Request is the payload accepted by the weather agent.
type Request struct {
	Text     string   `json:"text"`
	Strategy Strategy `json:"strategy,omitempty"`
}

// Response is serialized back to API consumers.
type Response struct {
	Reply    string         `json:"reply"`
	Summary  string         `json:"summary"`
	Intent   WeatherIntent  `json:"intent"`
	Forecast *ForecastBlock `json:"forecast,omitempty"`
	// Code is the error code behind a clarification or apology reply.
	Code string `json:"code,omitempty"`
}

// Config wires runtime settings for the weather agent.
type Config struct {
	DefaultLocation string
	Strategy        Strategy
	PhraseReplies   bool
}

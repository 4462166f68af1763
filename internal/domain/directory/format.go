package directory

import (
	"fmt"
	"strconv"

	"github.com/yanqian/weather-buddy/pkg/util"
)

const (
	defaultMaxResults = 5
	yourArea          = "your area"
	noAddress         = "Address not available"
	noRating          = "No rating"
)

// FormatPlaces turns raw places into a Result. An empty location reads as
// "your area" in messages.
func FormatPlaces(places []Place, category, location string, maxResults int) Result {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	where := location
	if where == "" {
		where = yourArea
	}
	if len(places) == 0 {
		return Result{
			Kind:     KindPlaces,
			Success:  false,
			Category: category,
			Location: where,
			Message:  fmt.Sprintf("Sorry, I couldn’t find any %s near %s.", category, where),
		}
	}
	if len(places) > maxResults {
		places = places[:maxResults]
	}
	entries := make([]Entry, 0, len(places))
	for _, p := range places {
		entries = append(entries, toEntry(p))
	}
	return Result{
		Kind:     KindPlaces,
		Success:  true,
		Category: category,
		Location: where,
		Message:  fmt.Sprintf("Here are some %s near %s.", util.TitleCase(category), where),
		Results:  entries,
	}
}

func toEntry(p Place) Entry {
	e := Entry{Name: p.Name, Address: noAddress, Rating: noRating}
	if p.Address != nil && *p.Address != "" {
		e.Address = *p.Address
	}
	if p.Rating != nil {
		e.Rating = strconv.FormatFloat(*p.Rating, 'f', -1, 64)
	}
	if len(p.WeekdayDescriptions) > 0 {
		hours := p.WeekdayDescriptions[0]
		e.Hours = &hours
	}
	return e
}

func formatLine(n int, e Entry) string {
	return fmt.Sprintf("%d. %s — %s (Rating: %s)", n, e.Name, e.Address, e.Rating)
}

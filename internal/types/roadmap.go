package types

// RoadmapStep is one phase of a linear learning roadmap. Steps carry a
// resource link and a calendar event label the frontend can schedule.
type RoadmapStep struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Link          string `json:"link"`
	CalendarEvent string `json:"calendarEvent"`
}

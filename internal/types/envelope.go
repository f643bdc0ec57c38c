package types

// CanvasType selects which frontend widget renders the response payload.
type CanvasType string

// Canvas types understood by the frontend.
const (
	CanvasJobSearch CanvasType = "job_search"
	CanvasRoadmap   CanvasType = "roadmap"
	CanvasSessions  CanvasType = "sessions"
	CanvasNone      CanvasType = "none"
)

// ResponseEnvelope is the sole output of one orchestration run. CanvasUtils
// is shaped per CanvasType:
//
//	job_search: params, job_link, job_api_token, job_results, platforms_searched
//	roadmap:    roadmap, enable_calendar_integration
//	sessions:   session_link, session_api_token
//	none:       empty
type ResponseEnvelope struct {
	Text        string         `json:"text"`
	CanvasType  CanvasType     `json:"canvasType"`
	CanvasUtils map[string]any `json:"canvasUtils"`
}

// NewTextEnvelope builds a plain-text envelope with no canvas payload.
func NewTextEnvelope(text string) *ResponseEnvelope {
	return &ResponseEnvelope{
		Text:        text,
		CanvasType:  CanvasNone,
		CanvasUtils: map[string]any{},
	}
}

package verse

import "time"

const (
	SourceGenerated = "generated"
	SourceStatic    = "static"
)

type Verse struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
	Date      string `json:"date"`
	Source    string `json:"source"`
}

func cacheKey(day time.Time) string {
	return "verse:" + day.Format("2006-01-02")
}

package catalog

// Person is a key figure profile shown on the people page
type Person struct {
	Name        string `json:"name" yaml:"name"`
	Designation string `json:"designation" yaml:"designation"`
	Bio         string `json:"bio" yaml:"bio"`
	Initials    string `json:"initials" yaml:"initials"`
	Color       string `json:"color" yaml:"color"`
}

// EventType classifies a timeline entry
type EventType string

const (
	EventArrest        EventType = "arrest"
	EventProsecution   EventType = "prosecution"
	EventInvestigation EventType = "investigation"
	EventSettlement    EventType = "settlement"
	EventKey           EventType = "key-event"
	EventDeath         EventType = "death"
	EventLaw           EventType = "law"
)

// TimelineEntry is one period on the case timeline
type TimelineEntry struct {
	Period   string    `json:"period" yaml:"period"`
	Type     EventType `json:"type" yaml:"type"`
	Label    string    `json:"label" yaml:"-"`
	Headline string    `json:"headline" yaml:"headline"`
	Points   []string  `json:"points" yaml:"points"`
	People   []string  `json:"people,omitempty" yaml:"people"`
	DocTypes []string  `json:"doc_types,omitempty" yaml:"doc_types"`
}

package catalog

import (
	"embed"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"filesfeed/internal/domain"
	models "filesfeed/internal/domain/models/catalog"
)

//go:embed config/*.yaml
var configFiles embed.FS

var eventLabels = map[models.EventType]string{
	models.EventArrest:        "Arrest",
	models.EventProsecution:   "Prosecution",
	models.EventInvestigation: "Investigation",
	models.EventSettlement:    "Settlement",
	models.EventKey:           "Key Event",
	models.EventDeath:         "Death",
	models.EventLaw:           "Legal Reform",
}

// Registry serves the static people profiles and case timeline.
// It is read-only after construction and safe for concurrent use.
type Registry struct {
	people   []models.Person
	timeline []models.TimelineEntry
}

// NewRegistry loads the embedded catalog files
func NewRegistry() (*Registry, error) {
	r := &Registry{}

	var people struct {
		People []models.Person `yaml:"people"`
	}
	if err := loadFile("people", &people); err != nil {
		return nil, err
	}
	for i := range people.People {
		if err := validatePerson(&people.People[i]); err != nil {
			return nil, fmt.Errorf("people.yaml entry %d: %w", i, err)
		}
	}
	r.people = people.People

	var timeline struct {
		Entries []models.TimelineEntry `yaml:"entries"`
	}
	if err := loadFile("timeline", &timeline); err != nil {
		return nil, err
	}
	for i := range timeline.Entries {
		entry := &timeline.Entries[i]
		label, ok := eventLabels[entry.Type]
		if !ok {
			return nil, fmt.Errorf("timeline.yaml entry %d: unknown event type %q", i, entry.Type)
		}
		entry.Label = label
	}
	r.timeline = timeline.Entries

	return r, nil
}

func loadFile(name string, out any) error {
	filename := fmt.Sprintf("config/%s.yaml", name)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}
	return nil
}

func validatePerson(p *models.Person) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Designation, validation.Required),
		validation.Field(&p.Initials, validation.Required, validation.RuneLength(1, 3)),
	)
}

// People returns every profile in display order
func (r *Registry) People() []models.Person {
	out := make([]models.Person, len(r.people))
	copy(out, r.people)
	return out
}

// Person looks up a profile by name, ignoring case
func (r *Registry) Person(name string) (*models.Person, error) {
	for i := range r.people {
		if strings.EqualFold(r.people[i].Name, name) {
			p := r.people[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("person %q: %w", name, domain.ErrNotFound)
}

// Timeline returns the entries oldest first, optionally only those of one type
// or those naming one person
func (r *Registry) Timeline(eventType models.EventType, person string) []models.TimelineEntry {
	out := make([]models.TimelineEntry, 0, len(r.timeline))
	for _, e := range r.timeline {
		if eventType != "" && e.Type != eventType {
			continue
		}
		if person != "" && !contains(e.People, person) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

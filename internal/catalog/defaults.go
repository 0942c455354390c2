package catalog

// DefaultDestination describes a destination seeded for every new account.
type DefaultDestination struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Icon        IconKey  `json:"icon"`
	Color       ColorKey `json:"color"`
	Description string   `json:"description"`
}

var defaults = []struct {
	slug, name  string
	icon        IconKey
	description string
}{
	{"backlog", "Backlog", "list-todo", "Actions without dates"},
	{"reference", "Reference", "book-open", "Info to consult later"},
	{"incubating", "Incubating", "lightbulb", "Ideas to develop"},
	{"someday", "Someday", "moon", "Maybe one day"},
	{"questions", "Questions", "help-circle", "Things to research"},
	{"waiting", "Waiting", "clock", "Delegated/waiting on others"},
	{"trash", "Trash", "trash-2", "Things to forget"},
}

// DefaultDestinations returns the seven seed destinations in sort order,
// colored by their position in the palette cycle.
func DefaultDestinations() []DefaultDestination {
	out := make([]DefaultDestination, len(defaults))
	for i, d := range defaults {
		out[i] = DefaultDestination{
			Slug:        d.slug,
			Name:        d.name,
			Icon:        d.icon,
			Color:       SuggestColor(i).Key,
			Description: d.description,
		}
	}
	return out
}

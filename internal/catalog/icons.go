// Package catalog holds the closed sets of icon and color keys a destination
// can reference, and the destinations every new account starts with.
package catalog

import "strings"

// IconKey identifies a renderable glyph.
type IconKey string

// IconCategory groups icons in the picker.
type IconCategory string

const (
	CategoryGeneral      IconCategory = "General"
	CategoryWork         IconCategory = "Work"
	CategoryPersonal     IconCategory = "Personal"
	CategoryHealth       IconCategory = "Health"
	CategoryTravel       IconCategory = "Travel"
	CategoryCreative     IconCategory = "Creative"
	CategoryEducation    IconCategory = "Education"
	CategoryOrganization IconCategory = "Organization"
)

// FallbackIcon is rendered for keys outside the catalog.
const FallbackIcon IconKey = "inbox"

// Icon is a catalog entry. Category is empty for icons not offered in the picker.
type Icon struct {
	Key      IconKey      `json:"key"`
	Name     string       `json:"name"`
	Category IconCategory `json:"category,omitempty"`
}

// Pickable reports whether users may choose the icon for a destination.
func (i Icon) Pickable() bool { return i.Category != "" }

var icons = []Icon{
	// destination defaults
	{Key: "list-todo", Name: "List", Category: CategoryOrganization},
	{Key: "book-open", Name: "Book Open"},
	{Key: "lightbulb", Name: "Lightbulb", Category: CategoryCreative},
	{Key: "moon", Name: "Moon"},
	{Key: "help-circle", Name: "Help"},
	{Key: "clock", Name: "Clock"},
	{Key: "trash-2", Name: "Trash"},

	{Key: "star", Name: "Star", Category: CategoryGeneral},
	{Key: "flag", Name: "Flag", Category: CategoryGeneral},
	{Key: "target", Name: "Target", Category: CategoryGeneral},
	{Key: "bookmark", Name: "Bookmark", Category: CategoryGeneral},
	{Key: "zap", Name: "Zap", Category: CategoryGeneral},
	{Key: "heart", Name: "Heart", Category: CategoryGeneral},
	{Key: "check", Name: "Check", Category: CategoryGeneral},
	{Key: "circle", Name: "Circle", Category: CategoryGeneral},
	{Key: "inbox", Name: "Inbox", Category: CategoryGeneral},
	{Key: "archive", Name: "Archive", Category: CategoryGeneral},

	{Key: "briefcase", Name: "Briefcase", Category: CategoryWork},
	{Key: "laptop", Name: "Laptop", Category: CategoryWork},
	{Key: "globe", Name: "Globe", Category: CategoryWork},
	{Key: "message-square", Name: "Message", Category: CategoryWork},
	{Key: "send", Name: "Send", Category: CategoryWork},
	{Key: "file-text", Name: "File", Category: CategoryWork},
	{Key: "folder", Name: "Folder", Category: CategoryWork},
	{Key: "building", Name: "Building", Category: CategoryWork},
	{Key: "users", Name: "Users", Category: CategoryWork},
	{Key: "phone", Name: "Phone", Category: CategoryWork},
	{Key: "mail", Name: "Mail", Category: CategoryWork},
	{Key: "megaphone", Name: "Megaphone", Category: CategoryWork},

	{Key: "home", Name: "Home", Category: CategoryPersonal},
	{Key: "coffee", Name: "Coffee", Category: CategoryPersonal},
	{Key: "music", Name: "Music", Category: CategoryPersonal},
	{Key: "smartphone", Name: "Smartphone", Category: CategoryPersonal},
	{Key: "gift", Name: "Gift", Category: CategoryPersonal},
	{Key: "shopping-cart", Name: "Shopping", Category: CategoryPersonal},
	{Key: "wallet", Name: "Wallet", Category: CategoryPersonal},
	{Key: "credit-card", Name: "Credit Card", Category: CategoryPersonal},

	{Key: "dumbbell", Name: "Dumbbell", Category: CategoryHealth},
	{Key: "brain", Name: "Brain", Category: CategoryHealth},
	{Key: "utensils", Name: "Utensils", Category: CategoryHealth},

	{Key: "plane", Name: "Plane", Category: CategoryTravel},
	{Key: "car", Name: "Car", Category: CategoryTravel},
	{Key: "map-pin", Name: "Map Pin", Category: CategoryTravel},

	{Key: "code", Name: "Code", Category: CategoryCreative},
	{Key: "palette", Name: "Palette", Category: CategoryCreative},
	{Key: "camera", Name: "Camera", Category: CategoryCreative},
	{Key: "film", Name: "Film", Category: CategoryCreative},
	{Key: "headphones", Name: "Headphones", Category: CategoryCreative},
	{Key: "gamepad-2", Name: "Gamepad", Category: CategoryCreative},

	{Key: "graduation-cap", Name: "Graduation", Category: CategoryEducation},
	{Key: "book", Name: "Book", Category: CategoryEducation},
	{Key: "newspaper", Name: "Newspaper", Category: CategoryEducation},

	{Key: "calendar", Name: "Calendar", Category: CategoryOrganization},
	{Key: "clipboard-list", Name: "Clipboard", Category: CategoryOrganization},
	{Key: "check-square", Name: "Checklist", Category: CategoryOrganization},
	{Key: "settings", Name: "Settings", Category: CategoryOrganization},

	// interface glyphs
	{Key: "sparkles", Name: "Sparkles"},
	{Key: "bot", Name: "Bot"},
	{Key: "plus", Name: "Plus"},
	{Key: "search", Name: "Search"},
	{Key: "user", Name: "User"},
	{Key: "log-out", Name: "Log Out"},
	{Key: "chevron-down", Name: "Chevron Down"},
	{Key: "chevron-right", Name: "Chevron Right"},
	{Key: "more-horizontal", Name: "More"},
	{Key: "x", Name: "Close"},
	{Key: "grip-vertical", Name: "Grip"},
	{Key: "link", Name: "Link"},
	{Key: "external-link", Name: "External Link"},
	{Key: "download", Name: "Download"},
	{Key: "upload", Name: "Upload"},
	{Key: "eye", Name: "Eye"},
	{Key: "eye-off", Name: "Eye Off"},
	{Key: "lock", Name: "Lock"},
	{Key: "unlock", Name: "Unlock"},
	{Key: "bell", Name: "Bell"},
	{Key: "bell-off", Name: "Bell Off"},
	{Key: "sun", Name: "Sun"},
	{Key: "chrome", Name: "Chrome"},
	{Key: "hash", Name: "Hash"},
	{Key: "at-sign", Name: "At Sign"},
	{Key: "arrow-right", Name: "Arrow Right"},
	{Key: "layout", Name: "Layout"},
	{Key: "folder-open", Name: "Folder Open"},
	{Key: "user-plus", Name: "User Plus"},
}

var iconIndex = func() map[IconKey]Icon {
	m := make(map[IconKey]Icon, len(icons))
	for _, ic := range icons {
		m[ic.Key] = ic
	}
	return m
}()

// ResolveIcon looks up key in the catalog. Unknown keys return false.
func ResolveIcon(key string) (Icon, bool) {
	ic, ok := iconIndex[IconKey(key)]
	return ic, ok
}

// IconOrFallback resolves key, substituting the inbox glyph for unknown keys.
func IconOrFallback(key string) Icon {
	if ic, ok := ResolveIcon(key); ok {
		return ic
	}
	return iconIndex[FallbackIcon]
}

// IsKnownIcon reports whether key is in the catalog.
func IsKnownIcon(key string) bool {
	_, ok := iconIndex[IconKey(key)]
	return ok
}

// Icons returns every catalog entry in display order.
func Icons() []Icon {
	out := make([]Icon, len(icons))
	copy(out, icons)
	return out
}

var categoryOrder = []IconCategory{
	CategoryGeneral, CategoryWork, CategoryPersonal, CategoryHealth,
	CategoryTravel, CategoryCreative, CategoryEducation, CategoryOrganization,
}

// Categories returns the picker categories in display order.
func Categories() []IconCategory {
	out := make([]IconCategory, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// IsValid reports whether c is a picker category.
func (c IconCategory) IsValid() bool {
	for _, known := range categoryOrder {
		if c == known {
			return true
		}
	}
	return false
}

// SearchIcons filters the picker icons. A non-empty query matches the icon
// name or category as a case-insensitive substring; a non-empty category
// keeps only that category. Order follows PickerIcons.
func SearchIcons(query string, category IconCategory) []Icon {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]Icon, 0)
	for _, ic := range PickerIcons() {
		if category != "" && ic.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(ic.Name), q) &&
			!strings.Contains(strings.ToLower(string(ic.Category)), q) {
			continue
		}
		out = append(out, ic)
	}
	return out
}

// PickerIcons returns the icons offered to users, grouped by category in display order.
func PickerIcons() []Icon {
	out := make([]Icon, 0, len(icons))
	for _, cat := range categoryOrder {
		for _, ic := range icons {
			if ic.Category == cat {
				out = append(out, ic)
			}
		}
	}
	return out
}

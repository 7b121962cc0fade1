package domain

// QuickStatus is a pre-canned status option offered by the Captain's Log
// posting surface. The catalogue is fixed; custom messages go through the
// same override posting path with a free-text note instead.
type QuickStatus struct {
	Emoji      string `json:"emoji"`
	Label      string `json:"label"`
	StatusText string `json:"status_text"`
	KidsText   string `json:"kids_text"`
}

// QuickStatuses is the catalogue of one-tap status options, in display
// order.
var QuickStatuses = []QuickStatus{
	{Emoji: "✈️", Label: "Taking off", StatusText: "Taking off", KidsText: "Daddy's on the plane!"},
	{Emoji: "🛬", Label: "Just landed", StatusText: "Just landed", KidsText: "Daddy just landed!"},
	{Emoji: "🏨", Label: "At hotel", StatusText: "At the hotel", KidsText: "Daddy's at the hotel"},
	{Emoji: "📍", Label: "At conference", StatusText: "At the conference", KidsText: "Daddy's at the conference"},
	{Emoji: "🍽️", Label: "Getting food", StatusText: "Getting food", KidsText: "Daddy's having dinner"},
	{Emoji: "😴", Label: "Going to sleep", StatusText: "Going to sleep", KidsText: "Daddy's sleeping"},
	{Emoji: "☕", Label: "Awake now", StatusText: "Good morning!", KidsText: "Daddy's awake!"},
	{Emoji: "🏠", Label: "Heading home", StatusText: "Heading home!", KidsText: "Daddy's coming home!"},
}

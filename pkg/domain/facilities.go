package domain

import "strings"

// Facility describes a bookable condominium facility.
type Facility struct {
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	Hours          string   `json:"hours"`
	Specifications []string `json:"specifications"`
}

var facilityCatalog = []Facility{
	{
		Name:     "Badminton Court",
		Location: "Level 3",
		Hours:    "Monday to Sunday: 7:00 AM - 10:00 PM",
		Specifications: []string{
			"Professional-grade wooden flooring with anti-slip surface",
			"LED floodlights for even court illumination",
			"Standard-height net setup as per badminton regulations",
			"Rackets and shuttlecocks are not provided. Residents required to bring their own.",
		},
	},
	{
		Name:     "BBQ Pits",
		Location: "Level 2",
		Hours:    "Monday to Sunday: 10:00 AM - 10:00 PM",
		Specifications: []string{
			"Tables with benches",
			"Trash bins and recycling stations",
			"Nearby sink for washing up",
			"Electrical outlets for additional cooking equipment",
			"No loud music or disturbances to other residents",
			"No cooking of prohibited items as per condo regulations (e.g., large animals, non-food items).",
		},
	},
	{
		Name:     "Multipurpose Room",
		Location: "Level 2",
		Hours:    "Monday to Sunday: 9:00 AM - 10:00 PM",
		Specifications: []string{
			"Projector and screen",
			"Whiteboard and markers",
			"Sound system with microphones",
			"Wi-Fi access",
			"Air conditioning",
			"Decorations are allowed but must be removed after the event",
			"All electrical equipment and lights must be turned off after use",
		},
	},
	{
		Name:     "Mini Cinema",
		Location: "Level 3",
		Hours:    "Monday to Sunday: 12:00 PM - 10:00 PM",
		Specifications: []string{
			"9 luxurious recliner seats with cup holders",
			"100-inch HD projector screen",
			"Dolby Surround Sound with immersive audio experience",
			"Full HD 4K projector with HDMI, USB, and Blu-ray compatibility",
			"Access to streaming services like Netflix and YouTube (via personal accounts)",
		},
	},
	{
		Name:     "Tennis Court",
		Location: "Level 1",
		Hours:    "Monday to Sunday: 12:00 PM - 10:00 PM",
		Specifications: []string{
			"Hard court with professional-grade acrylic surface",
			"Only non-marking tennis shoes are allowed on the court",
			"Proper sports attire is required",
			"Players are responsible for bringing their own rackets and balls",
			"Residents are expected to leave the court clean and dispose of any waste",
		},
	},
	{
		Name:     "Yoga Room",
		Location: "Level 3",
		Hours:    "Monday to Sunday: 6:00 AM - 9:00 PM",
		Specifications: []string{
			"Cushioned wooden flooring with anti-slip mats",
			"Dimmable LED lights for a relaxing ambiance",
			"Air-conditioned",
			"Full-length mirrors on one wall",
			"Bluetooth sound system for personal playlists",
			"No loud music or disruptive behavior is allowed",
			"Proper yoga attire is required",
		},
	},
}

// FacilityCatalog returns every facility in picker order.
func FacilityCatalog() []Facility {
	out := make([]Facility, len(facilityCatalog))
	for i, f := range facilityCatalog {
		f.Specifications = append([]string(nil), f.Specifications...)
		out[i] = f
	}
	return out
}

// LookupFacility finds a facility by name, case-insensitively.
func LookupFacility(name string) (Facility, bool) {
	name = strings.TrimSpace(name)
	for _, f := range FacilityCatalog() {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Facility{}, false
}

package personality

// profile is the static user-facing copy for one archetype.
type profile struct {
	Description string
	Traits      []string
}

// profiles holds presentation copy for every archetype. Every category
// has an entry: filtering happens on score, never on identity.
var profiles = map[Category]profile{
	Performative: {
		Description: "You love music that makes a statement and gets attention",
		Traits: []string{
			"Enjoys popular hits",
			"Likes energetic music",
			"Values mainstream appeal",
			"Appreciates polished production",
		},
	},
	AvantGarde: {
		Description: "You seek out experimental and boundary-pushing sounds",
		Traits: []string{
			"Appreciates complexity",
			"Enjoys unusual sounds",
			"Values artistic innovation",
			"Open to challenging music",
		},
	},
	Pandering: {
		Description: "You enjoy feel-good, accessible music that hits the right spots",
		Traits: []string{
			"Prefers catchy melodies",
			"Likes danceable beats",
			"Values emotional appeal",
			"Enjoys familiar structures",
		},
	},
	Sophisticated: {
		Description: "You appreciate nuanced, intellectually engaging music",
		Traits: []string{
			"Values musical complexity",
			"Enjoys acoustic elements",
			"Appreciates craftsmanship",
			"Prefers depth over intensity",
		},
	},
	Explorer: {
		Description: "You love discovering diverse sounds from around the world",
		Traits: []string{
			"Seeks musical diversity",
			"Enjoys world music",
			"Values cultural exploration",
			"Open to new experiences",
		},
	},
	Trendsetter: {
		Description: "You stay ahead of the curve with emerging sounds and artists",
		Traits: []string{
			"Discovers new genres early",
			"Values innovation",
			"Enjoys cutting-edge production",
			"Influences others' taste",
		},
	},
}

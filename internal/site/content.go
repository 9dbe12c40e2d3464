package site

// Testimonial is a customer quote shown by the testimonials component.
type Testimonial struct {
	Quote    string
	Author   string
	Location string
	Savings  string
}

// Plan is one column of the pricing table.
type Plan struct {
	Name        string
	Price       string
	Cadence     string
	Description string
	Features    []string
	CTA         string
	CTAHref     string
	Featured    bool
}

// Banner is a dismissible announcement strip.
type Banner struct {
	Text     string
	LinkText string
	Href     string
}

// CTA is a call-to-action block.
type CTA struct {
	Heading string
	Body    string
	Button  string
	Href    string
	// Event is the label sent with the cta_click beacon.
	Event string
}

var testimonials = []Testimonial{
	{
		Quote:    "The design package showed exactly where every panel would go. Our installer said it was the cleanest plan set they had seen all year.",
		Author:   "Maria G.",
		Location: "Phoenix, AZ",
		Savings:  "$2,140 saved in year one",
	},
	{
		Quote:    "I got three quotes that disagreed on everything. SunVista's independent design told me which one was honest.",
		Author:   "Derek T.",
		Location: "Raleigh, NC",
		Savings:  "Paid back in 6.8 years",
	},
	{
		Quote:    "Battery sizing was the part I could not figure out. Their engineer walked us through our load profile hour by hour.",
		Author:   "Priya and Sam K.",
		Location: "San Diego, CA",
		Savings:  "100% of evening usage covered",
	},
}

var plans = []Plan{
	{
		Name:        "Solar Snapshot",
		Price:       "$0",
		Cadence:     "free",
		Description: "A satellite-based feasibility check for your roof.",
		Features:    []string{"Roof suitability score", "Estimated system size", "Savings and payback estimate"},
		CTA:         "Run the calculator",
		CTAHref:     "/calculator",
	},
	{
		Name:        "Custom Design",
		Price:       "$349",
		Cadence:     "one time",
		Description: "Permit-ready layout and production model from a licensed designer.",
		Features:    []string{"Panel layout and string plan", "Shade analysis", "Hourly production model", "Equipment recommendations", "Two revision rounds"},
		CTA:         "Request a design",
		CTAHref:     "/design-request",
		Featured:    true,
	},
	{
		Name:        "Design + Quote Review",
		Price:       "$549",
		Cadence:     "one time",
		Description: "Everything in Custom Design plus an independent review of installer quotes.",
		Features:    []string{"Everything in Custom Design", "Review of up to 3 quotes", "Negotiation checklist", "Battery sizing"},
		CTA:         "Talk to us",
		CTAHref:     "/contact",
	},
}

var defaultBanner = Banner{
	Text:     "The 30% federal solar tax credit still applies to systems installed this year.",
	LinkText: "See what it means for you",
	Href:     "/calculator",
}

// heroCTAs holds the hero call-to-action for each hero-cta variant.
var heroCTAs = map[string]CTA{
	"control": {
		Heading: "Solar designed around your roof, not a sales quota",
		Body:    "Independent solar design and quote reviews from licensed engineers.",
		Button:  "Get started",
		Href:    "/design-request",
		Event:   "hero_control",
	},
	"free-design": {
		Heading: "See your solar design before you talk to an installer",
		Body:    "Start with a free savings snapshot, then get a permit-ready design.",
		Button:  "Get my free estimate",
		Href:    "/calculator",
		Event:   "hero_free_design",
	},
}

var closingCTA = CTA{
	Heading: "Ready to see what solar can do for your home?",
	Body:    "It takes two minutes to request a custom design.",
	Button:  "Request a design",
	Href:    "/design-request",
	Event:   "closing",
}

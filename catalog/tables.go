package catalog

import "tradematch-seo/models"

// Services is the fixed service catalogue, in display order. Several link
// sections take a prefix of it, so the order is significant.
var Services = []models.Service{
    {Name: "Bathroom Fitting", Slug: "bathroom-fitting", Category: "Home Improvement"},
    {Name: "Kitchen Fitting", Slug: "kitchen-fitting", Category: "Home Improvement"},
    {Name: "Painting & Decorating", Slug: "painting-decorating", Category: "Home Improvement"},
    {Name: "Tiling", Slug: "tiling", Category: "Home Improvement"},
    {Name: "Windows & Doors", Slug: "windows-doors", Category: "Home Improvement"},
    {Name: "Flooring", Slug: "flooring", Category: "Home Improvement"},
    {Name: "Lighting Installation", Slug: "lighting-installation", Category: "Home Improvement"},
    {Name: "Insulation", Slug: "insulation", Category: "Home Improvement"},
    {Name: "Damp Proofing", Slug: "damp-proofing", Category: "Home Improvement"},
    {Name: "Soundproofing", Slug: "soundproofing", Category: "Home Improvement"},
    {Name: "Home Cinema Installation", Slug: "home-cinema", Category: "Home Improvement"},
    {Name: "Smart Home Installation", Slug: "smart-home", Category: "Home Improvement"},
    {Name: "Security Systems", Slug: "security-systems", Category: "Home Improvement"},
    {Name: "CCTV Installation", Slug: "cctv-installation", Category: "Home Improvement"},
    {Name: "Alarm Systems", Slug: "alarm-systems", Category: "Home Improvement"},
    {Name: "Extensions", Slug: "extensions", Category: "Construction"},
    {Name: "Loft Conversion", Slug: "loft-conversion", Category: "Construction"},
    {Name: "Bricklaying", Slug: "bricklaying", Category: "Construction"},
    {Name: "Carpentry", Slug: "carpentry", Category: "Construction"},
    {Name: "Plastering", Slug: "plastering", Category: "Construction"},
    {Name: "Rendering", Slug: "rendering", Category: "Construction"},
    {Name: "Groundwork", Slug: "groundwork", Category: "Construction"},
    {Name: "Demolition", Slug: "demolition", Category: "Construction"},
    {Name: "Scaffolding", Slug: "scaffolding", Category: "Construction"},
    {Name: "Basement Conversion", Slug: "basement-conversion", Category: "Construction"},
    {Name: "Garage Conversion", Slug: "garage-conversion", Category: "Construction"},
    {Name: "Conservatory", Slug: "conservatory", Category: "Construction"},
    {Name: "Orangery", Slug: "orangery", Category: "Construction"},
    {Name: "Porch", Slug: "porch", Category: "Construction"},
    {Name: "Structural Work", Slug: "structural-work", Category: "Construction"},
    {Name: "Landscaping", Slug: "landscaping", Category: "Outdoor"},
    {Name: "Garden Maintenance", Slug: "garden-maintenance", Category: "Outdoor"},
    {Name: "Decking", Slug: "decking", Category: "Outdoor"},
    {Name: "Fencing", Slug: "fencing", Category: "Outdoor"},
    {Name: "Driveways", Slug: "driveways", Category: "Outdoor"},
    {Name: "Patios", Slug: "patios", Category: "Outdoor"},
    {Name: "Tree Surgery", Slug: "tree-surgery", Category: "Outdoor"},
    {Name: "Artificial Grass", Slug: "artificial-grass", Category: "Outdoor"},
    {Name: "Garden Sheds", Slug: "garden-sheds", Category: "Outdoor"},
    {Name: "Outdoor Lighting", Slug: "outdoor-lighting", Category: "Outdoor"},
    {Name: "Electrical", Slug: "electrical", Category: "Specialist"},
    {Name: "Plumbing", Slug: "plumbing", Category: "Specialist"},
    {Name: "Roofing", Slug: "roofing", Category: "Specialist"},
    {Name: "Heating & Gas", Slug: "heating-gas", Category: "Specialist"},
    {Name: "Air Conditioning", Slug: "air-conditioning", Category: "Specialist"},
    {Name: "Solar Panels", Slug: "solar-panels", Category: "Specialist"},
    {Name: "Heat Pumps", Slug: "heat-pumps", Category: "Specialist"},
    {Name: "Boiler Repair", Slug: "boiler-repair", Category: "Specialist"},
    {Name: "Drain Cleaning", Slug: "drain-cleaning", Category: "Specialist"},
    {Name: "Septic Tank", Slug: "septic-tank", Category: "Specialist"},
    {Name: "Water Treatment", Slug: "water-treatment", Category: "Specialist"},
}

// MajorCities are the top UK cities. Their slugs form the major-city set and
// their order drives nav, footer and grid slices.
var MajorCities = []models.Location{
    {Name: "London", Slug: "london", City: "London", County: "Greater London", Population: 9000000},
    {Name: "Manchester", Slug: "manchester", City: "Manchester", County: "Greater Manchester", Population: 550000},
    {Name: "Birmingham", Slug: "birmingham", City: "Birmingham", County: "West Midlands", Population: 1100000},
    {Name: "Leeds", Slug: "leeds", City: "Leeds", County: "West Yorkshire", Population: 790000},
    {Name: "Glasgow", Slug: "glasgow", City: "Glasgow", County: "Scotland", Population: 635000},
    {Name: "Liverpool", Slug: "liverpool", City: "Liverpool", County: "Merseyside", Population: 500000},
    {Name: "Edinburgh", Slug: "edinburgh", City: "Edinburgh", County: "Scotland", Population: 525000},
    {Name: "Bristol", Slug: "bristol", City: "Bristol", County: "Bristol", Population: 465000},
    {Name: "Cardiff", Slug: "cardiff", City: "Cardiff", County: "Wales", Population: 365000},
    {Name: "Sheffield", Slug: "sheffield", City: "Sheffield", County: "South Yorkshire", Population: 585000},
    {Name: "Newcastle", Slug: "newcastle", City: "Newcastle", County: "Tyne and Wear", Population: 300000},
    {Name: "Nottingham", Slug: "nottingham", City: "Nottingham", County: "Nottinghamshire", Population: 330000},
    {Name: "Southampton", Slug: "southampton", City: "Southampton", County: "Hampshire", Population: 255000},
    {Name: "Leicester", Slug: "leicester", City: "Leicester", County: "Leicestershire", Population: 355000},
    {Name: "Coventry", Slug: "coventry", City: "Coventry", County: "West Midlands", Population: 370000},
    {Name: "Bradford", Slug: "bradford", City: "Bradford", County: "West Yorkshire", Population: 540000},
    {Name: "Belfast", Slug: "belfast", City: "Belfast", County: "Northern Ireland", Population: 345000},
    {Name: "Oxford", Slug: "oxford", City: "Oxford", County: "Oxfordshire", Population: 165000},
    {Name: "Cambridge", Slug: "cambridge", City: "Cambridge", County: "Cambridgeshire", Population: 145000},
    {Name: "Brighton", Slug: "brighton", City: "Brighton", County: "East Sussex", Population: 290000},
    {Name: "Plymouth", Slug: "plymouth", City: "Plymouth", County: "Devon", Population: 265000},
    {Name: "Reading", Slug: "reading", City: "Reading", County: "Berkshire", Population: 175000},
    {Name: "York", Slug: "york", City: "York", County: "North Yorkshire", Population: 210000},
    {Name: "Bath", Slug: "bath", City: "Bath", County: "Somerset", Population: 95000},
    {Name: "Exeter", Slug: "exeter", City: "Exeter", County: "Devon", Population: 130000},
    {Name: "Chester", Slug: "chester", City: "Chester", County: "Cheshire", Population: 90000},
    {Name: "Durham", Slug: "durham", City: "Durham", County: "County Durham", Population: 50000},
    {Name: "Canterbury", Slug: "canterbury", City: "Canterbury", County: "Kent", Population: 55000},
    {Name: "Winchester", Slug: "winchester", City: "Winchester", County: "Hampshire", Population: 45000},
    {Name: "Stirling", Slug: "stirling", City: "Stirling", County: "Scotland", Population: 37000},
}

// ServiceGridSlugs is the curated subset shown in the services grid.
var ServiceGridSlugs = []string{
    "electrical",
    "plumbing",
    "heating-gas",
    "carpentry",
    "landscaping",
    "roofing",
    "painting-decorating",
    "tiling",
}

// LondonBoroughSlugs seed the third sitemap phase.
var LondonBoroughSlugs = map[string]bool{
    "barking-and-dagenham":   true,
    "barnet":                 true,
    "bexley":                 true,
    "brent":                  true,
    "bromley":                true,
    "camden":                 true,
    "city-of-london":         true,
    "croydon":                true,
    "ealing":                 true,
    "enfield":                true,
    "greenwich":              true,
    "hackney":                true,
    "hammersmith-and-fulham": true,
    "haringey":               true,
    "harrow":                 true,
    "havering":               true,
    "hillingdon":             true,
    "hounslow":               true,
    "islington":              true,
    "kensington-and-chelsea": true,
    "kingston-upon-thames":   true,
    "lambeth":                true,
    "lewisham":               true,
    "merton":                 true,
    "newham":                 true,
    "redbridge":              true,
    "richmond-upon-thames":   true,
    "southwark":              true,
    "sutton":                 true,
    "tower-hamlets":          true,
    "waltham-forest":         true,
    "wandsworth":             true,
    "westminster":            true,
}

// MajorCitySlugs returns the major-city set.
func MajorCitySlugs() map[string]bool {
    set := make(map[string]bool, len(MajorCities))
    for _, city := range MajorCities {
        set[city.Slug] = true
    }
    return set
}

package domain

// Option is a value/label pair shown in a selector
type Option struct {
	Value string
	Label string
}

// EstablishmentTypes are the types offered by the home search filters
var EstablishmentTypes = []Option{
	{Value: "restaurante", Label: "Restaurante"},
	{Value: "loja", Label: "Loja"},
	{Value: "hotel", Label: "Hotel"},
	{Value: "cinema", Label: "Cinema"},
	{Value: "parque", Label: "Parque"},
}

// ListingTypes are the types offered by the explore page and the registration form
var ListingTypes = []string{
	"Restaurante", "Café", "Bar", "Hotel", "Pousada", "Shopping",
	"Supermercado", "Farmácia", "Hospital", "Clínica", "Escola",
	"Universidade", "Biblioteca", "Museu", "Teatro", "Cinema",
	"Parque", "Academia", "Banco", "Correios", "Outro",
}

// RatingOptions are the minimum-rating choices
var RatingOptions = []Option{
	{Value: "1", Label: "1 star or more"},
	{Value: "2", Label: "2 stars or more"},
	{Value: "3", Label: "3 stars or more"},
	{Value: "4", Label: "4 stars or more"},
	{Value: "5", Label: "5 stars"},
}

// States offered by the home search filters
var States = []Option{
	{Value: "SP", Label: "São Paulo"},
	{Value: "RJ", Label: "Rio de Janeiro"},
	{Value: "MG", Label: "Minas Gerais"},
}

// AllStates is the full list of Brazilian state codes used by the explore page
var AllStates = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA",
	"MT", "MS", "MG", "PA", "PB", "PR", "PE", "PI", "RJ", "RN",
	"RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

// CitiesByState lists the cities offered for each home-filter state
var CitiesByState = map[string][]Option{
	"SP": {
		{Value: "sao-paulo", Label: "São Paulo"},
		{Value: "campinas", Label: "Campinas"},
	},
	"RJ": {
		{Value: "rio-de-janeiro", Label: "Rio de Janeiro"},
	},
	"MG": {
		{Value: "belo-horizonte", Label: "Belo Horizonte"},
	},
}

// FeatureInfo describes one accessibility feature for display
type FeatureInfo struct {
	Key   string
	Label string
	Get   func(AccessibilityFeatures) bool
	Set   func(*AccessibilityFeatures, bool)
}

// Features lists every accessibility feature in display order
var Features = []FeatureInfo{
	{"hasRamp", "Access ramp",
		func(f AccessibilityFeatures) bool { return f.HasRamp },
		func(f *AccessibilityFeatures, v bool) { f.HasRamp = v }},
	{"hasAccessibleRestroom", "Accessible restroom",
		func(f AccessibilityFeatures) bool { return f.HasAccessibleRestroom },
		func(f *AccessibilityFeatures, v bool) { f.HasAccessibleRestroom = v }},
	{"hasAccessibleParking", "Accessible parking",
		func(f AccessibilityFeatures) bool { return f.HasAccessibleParking },
		func(f *AccessibilityFeatures, v bool) { f.HasAccessibleParking = v }},
	{"hasElevator", "Elevator",
		func(f AccessibilityFeatures) bool { return f.HasElevator },
		func(f *AccessibilityFeatures, v bool) { f.HasElevator = v }},
	{"hasAccessibleEntrance", "Accessible entrance",
		func(f AccessibilityFeatures) bool { return f.HasAccessibleEntrance },
		func(f *AccessibilityFeatures, v bool) { f.HasAccessibleEntrance = v }},
	{"hasTactileFloor", "Tactile floor",
		func(f AccessibilityFeatures) bool { return f.HasTactileFloor },
		func(f *AccessibilityFeatures, v bool) { f.HasTactileFloor = v }},
	{"hasSignLanguageService", "Sign language service",
		func(f AccessibilityFeatures) bool { return f.HasSignLanguageService },
		func(f *AccessibilityFeatures, v bool) { f.HasSignLanguageService = v }},
	{"hasAccessibleSeating", "Accessible seating",
		func(f AccessibilityFeatures) bool { return f.HasAccessibleSeating },
		func(f *AccessibilityFeatures, v bool) { f.HasAccessibleSeating = v }},
}

// CitiesFor returns the cities offered for a state, nil for unknown or blank states
func CitiesFor(state string) []Option {
	if state == "" {
		return nil
	}
	return CitiesByState[state]
}

package domain

// Fixed answer enumerations. These mirror the survey wizard's options exactly;
// the intake path rejects anything outside them.
var (
	AgeGroups = []string{"Below 18", "18-22", "23-30", "31-45", "45+"}

	Occupations = []string{"Student", "Working professional", "Homemaker", "Other"}

	NoiseLocations = []string{"Home", "Commute", "College/Work", "Metro/Bus Stop", "Construction"}

	CommonSounds = []string{
		"Traffic", "Construction", "Loudspeakers", "Neighbours", "Metro/Trains",
		"Others (listen at your own risk)",
	}

	CommunitySeriousnessOptions = []string{"Yes, definitely", "Somewhat", "Not really", "Not sure"}

	MapInterestOptions = []string{"Yes, very useful", "Maybe", "Not really useful", "No, not at all"}

	CitizenScientistOptions = []string{"Yes, definitely", "Maybe, occasionally", "Unlikely", "No, not interested"}

	FeatureNames = []string{"Noise Heatmaps", "Quieter Routes", "Noise Forecasts", "Report & Learn Tool"}
)

// UnknownRank is the sort rank for values outside an ordinal table; they sort
// after every recognized value.
const UnknownRank = 99

// NoiseExposureRanks orders exposure-frequency answers from rare to constant.
var NoiseExposureRanks = map[string]int{
	"Rarely":     1,
	"Sometimes":  2,
	"Often":      3,
	"Very Often": 4,
	"Constantly": 5,
}

// FocusDisturbanceRanks orders focus-disturbance answers.
var FocusDisturbanceRanks = map[string]int{
	"Rarely":        1,
	"Sometimes":     2,
	"Often":         3,
	"Almost Always": 4,
}

// BotherLevels maps each bother label to its decibel threshold.
var BotherLevels = map[string]int{
	"Library quiet (40dB)":  40,
	"Conversation (50dB)":   50,
	"Busy café (60dB)":      60,
	"Street traffic (70dB)": 70,
	"Honking (80dB)":        80,
	"Construction (90dB)":   90,
	"Loud music (100dB)":    100,
	"Jackhammer (110dB)":    110,
}

// NoiseExposureRank returns the ordinal rank of an exposure-frequency value,
// or UnknownRank if the value is not in the table.
func NoiseExposureRank(value string) int {
	if r, ok := NoiseExposureRanks[value]; ok {
		return r
	}
	return UnknownRank
}

// FocusDisturbanceRank returns the ordinal rank of a focus-disturbance value,
// or UnknownRank if the value is not in the table.
func FocusDisturbanceRank(value string) int {
	if r, ok := FocusDisturbanceRanks[value]; ok {
		return r
	}
	return UnknownRank
}

// oneOf reports whether value appears in options.
func oneOf(value string, options []string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

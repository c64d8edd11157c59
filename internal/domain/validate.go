package domain

import "fmt"

// maxNameLength caps the optional display name.
const maxNameLength = 100

// FieldError describes one invalid field in a submission.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a submission against the fixed answer enumerations and
// numeric bounds. It returns every violation, not just the first, so the
// client can surface all of them at once. A nil result means valid.
//
// The isDuplicate flag is deliberately not checked: it is client-reported and
// advisory (see the Submission doc comment).
func (s *Submission) Validate() []FieldError {
	var errs []FieldError

	if len(s.Name) > maxNameLength {
		errs = append(errs, FieldError{"name", fmt.Sprintf("must be at most %d characters", maxNameLength)})
	}

	errs = appendEnumError(errs, "ageGroup", s.AgeGroup, AgeGroups)
	errs = appendEnumError(errs, "occupation", s.Occupation, Occupations)
	errs = appendEnumError(errs, "communitySeriousness", s.CommunitySeriousness, CommunitySeriousnessOptions)
	errs = appendEnumError(errs, "mapInterest", s.MapInterest, MapInterestOptions)
	errs = appendEnumError(errs, "citizenScientist", s.CitizenScientist, CitizenScientistOptions)

	if _, ok := NoiseExposureRanks[s.NoiseExposureFreq]; !ok {
		errs = append(errs, FieldError{"noiseExposureFreq", "is not a recognized option"})
	}
	if _, ok := FocusDisturbanceRanks[s.FocusDisturbance]; !ok {
		errs = append(errs, FieldError{"focusDisturbance", "is not a recognized option"})
	}

	for _, loc := range s.NoiseSourceLocations {
		if !oneOf(loc, NoiseLocations) {
			errs = append(errs, FieldError{"noiseSourceLocations", fmt.Sprintf("%q is not a recognized option", loc)})
		}
	}
	for _, src := range s.CommonNoiseSources {
		if !oneOf(src, CommonSounds) {
			errs = append(errs, FieldError{"commonNoiseSources", fmt.Sprintf("%q is not a recognized option", src)})
		}
	}

	if s.HeadphoneFreq < HeadphoneFreqMin || s.HeadphoneFreq > HeadphoneFreqMax {
		errs = append(errs, FieldError{"headphoneFreq", fmt.Sprintf("must be between %d and %d", HeadphoneFreqMin, HeadphoneFreqMax)})
	}

	// The label/level pairing is the client's responsibility; each side is
	// checked against its own enumeration but they are not cross-validated.
	if _, ok := BotherLevels[s.BotherLabel]; !ok {
		errs = append(errs, FieldError{"botherLabel", "is not a recognized option"})
	}
	if !knownBotherLevel(s.BotherLevel) {
		errs = append(errs, FieldError{"botherLevel", "is not a recognized decibel threshold"})
	}

	errs = append(errs, validateFeaturePriorities(s.FeaturePriorities)...)

	return errs
}

// knownBotherLevel reports whether level is one of the label-mapped decibel
// thresholds.
func knownBotherLevel(level int) bool {
	for _, l := range BotherLevels {
		if l == level {
			return true
		}
	}
	return false
}

// validateFeaturePriorities checks for a full ranking: exactly four entries,
// all distinct, all drawn from the known feature set.
func validateFeaturePriorities(priorities []string) []FieldError {
	if len(priorities) != FeatureRankCount {
		return []FieldError{{"featurePriorities", fmt.Sprintf("must contain exactly %d features", FeatureRankCount)}}
	}

	var errs []FieldError
	seen := make(map[string]bool, FeatureRankCount)
	for _, name := range priorities {
		if !oneOf(name, FeatureNames) {
			errs = append(errs, FieldError{"featurePriorities", fmt.Sprintf("%q is not a recognized feature", name)})
			continue
		}
		if seen[name] {
			errs = append(errs, FieldError{"featurePriorities", "features must be unique"})
		}
		seen[name] = true
	}
	return errs
}

// appendEnumError appends a FieldError when value is outside options.
func appendEnumError(errs []FieldError, field, value string, options []string) []FieldError {
	if !oneOf(value, options) {
		return append(errs, FieldError{field, "is not a recognized option"})
	}
	return errs
}

package stats

import "github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/domain"

// noData is the average shown when no submissions match the filter.
const noData = "N/A"

// DashboardPayload is the full aggregate response the dashboard renders. One
// ordered bucket array per chart; a failed breakdown appears as an empty
// array rather than failing the payload.
type DashboardPayload struct {
	TotalSubmissions     int64  `json:"totalSubmissions"`
	AverageHeadphoneFreq string `json:"averageHeadphoneFreq"`
	TopOccupation        string `json:"topOccupation"`

	AgeGroupData              []domain.Bucket `json:"ageGroupData"`
	OccupationData            []domain.Bucket `json:"occupationData"`
	NoiseLocationData         []domain.Bucket `json:"noiseLocationData"`
	NoiseExposureFreqData     []domain.Bucket `json:"noiseExposureFreqData"`
	CommonSoundsData          []domain.Bucket `json:"commonSoundsData"`
	FocusData                 []domain.Bucket `json:"focusData"`
	HeadphoneFreqDistribution []domain.Bucket `json:"headphoneFreqDistribution"`
	BotherLevelData           []domain.Bucket `json:"botherLevelData"`
	SeriousnessData           []domain.Bucket `json:"seriousnessData"`
	MapInterestData           []domain.Bucket `json:"mapInterestData"`
	CitizenScientistData      []domain.Bucket `json:"citizenScientistData"`
	TopFeatureData            []domain.Bucket `json:"topFeatureData"`
}

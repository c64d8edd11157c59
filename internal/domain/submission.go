// Package domain defines the survey submission model, the fixed answer
// enumerations, and the chart bucket types shared by storage, stats, and handlers.
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeatureRankCount is the required length of a feature priority ranking.
const FeatureRankCount = 4

// HeadphoneFreq bounds (inclusive).
const (
	HeadphoneFreqMin = 1
	HeadphoneFreqMax = 10
)

// Submission is one completed survey. Records are created once by the intake
// path and read many times by aggregation and detail queries; there is no
// update or delete.
type Submission struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`

	// Name is display-only and never analyzed.
	Name string `bson:"name,omitempty" json:"name,omitempty"`

	AgeGroup             string `bson:"ageGroup"             json:"ageGroup"`
	Occupation           string `bson:"occupation"           json:"occupation"`
	NoiseExposureFreq    string `bson:"noiseExposureFreq"    json:"noiseExposureFreq"`
	FocusDisturbance     string `bson:"focusDisturbance"     json:"focusDisturbance"`
	CommunitySeriousness string `bson:"communitySeriousness" json:"communitySeriousness"`
	MapInterest          string `bson:"mapInterest"          json:"mapInterest"`
	CitizenScientist     string `bson:"citizenScientist"     json:"citizenScientist"`

	NoiseSourceLocations []string `bson:"noiseSourceLocations" json:"noiseSourceLocations"`
	CommonNoiseSources   []string `bson:"commonNoiseSources"   json:"commonNoiseSources"`

	// HeadphoneFreq is a 1-10 self-rating of headphone use.
	HeadphoneFreq int `bson:"headphoneFreq" json:"headphoneFreq"`

	// BotherLevel is a decibel threshold (40..110 in steps of 10) and
	// BotherLabel its human-readable co-attribute. The pairing is the
	// client's responsibility; each side is validated against its own
	// enumeration only.
	BotherLevel int    `bson:"botherLevel" json:"botherLevel"`
	BotherLabel string `bson:"botherLabel" json:"botherLabel"`

	// FeaturePriorities is a full ranking: exactly four distinct feature
	// names, index 0 most preferred.
	FeaturePriorities []string `bson:"featurePriorities" json:"featurePriorities"`

	// IsDuplicate is client-reported (local fingerprint on the device) and is
	// trusted as-is; the server never verifies it. It is an advisory filter
	// for the dashboard, nothing more.
	IsDuplicate bool `bson:"isDuplicate,omitempty" json:"isDuplicate"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// SubmissionSummary is the lightweight list-view projection of a submission.
type SubmissionSummary struct {
	ID          primitive.ObjectID `bson:"_id"                  json:"-"`
	Name        string             `bson:"name,omitempty"       json:"name,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"            json:"-"`
	IsDuplicate bool               `bson:"isDuplicate,omitempty" json:"isDuplicate"`
}

// Bucket is one (label, count) entry of a breakdown, ordered for charting.
type Bucket struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// LevelBucket is a bother-level group: the label plus the first observed
// decibel level for that label, used as the sort key and dropped from output.
type LevelBucket struct {
	Label string
	Level int
	Count int64
}

// ValueBucket is a numeric-valued group (headphone frequency distribution).
type ValueBucket struct {
	Value int
	Count int64
}

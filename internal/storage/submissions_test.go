package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/domain"
)

func TestMatchStage(t *testing.T) {
	assert.Equal(t, bson.M{}, matchStage(domain.NewFilter(true)))

	// $ne keeps records that never set the flag.
	assert.Equal(t,
		bson.M{"isDuplicate": bson.M{"$ne": true}},
		matchStage(domain.NewFilter(false)),
	)
}

func TestPrependMatch(t *testing.T) {
	group := bson.D{{Key: "$group", Value: bson.M{"_id": "$occupation"}}}

	unfiltered := prependMatch(domain.NewFilter(true), mongo.Pipeline{group})
	require.Len(t, unfiltered, 1)
	assert.Equal(t, "$group", unfiltered[0][0].Key)

	filtered := prependMatch(domain.NewFilter(false), mongo.Pipeline{group})
	require.Len(t, filtered, 2)
	assert.Equal(t, "$match", filtered[0][0].Key)
	assert.Equal(t, "$group", filtered[1][0].Key)
}

func TestPrependMatch_DoesNotMutateInput(t *testing.T) {
	rest := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{"_id": "$ageGroup"}}},
	}
	_ = prependMatch(domain.NewFilter(false), rest)

	require.Len(t, rest, 1)
	assert.Equal(t, "$group", rest[0][0].Key)
}

func TestNonEmptyGroupKeyShape(t *testing.T) {
	require.Len(t, nonEmptyGroupKey, 1)
	assert.Equal(t, "$match", nonEmptyGroupKey[0].Key)

	match, ok := nonEmptyGroupKey[0].Value.(bson.M)
	require.True(t, ok)
	assert.Equal(t, bson.M{"_id": bson.M{"$nin": bson.A{nil, ""}}}, match)
}

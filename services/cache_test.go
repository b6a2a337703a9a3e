package services

import (
	"context"
	"testing"
	"time"

	redis "ClinicSphere/config/redis"
	"ClinicSphere/models"
	"ClinicSphere/util"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRedis(t *testing.T) {
	s := miniredis.RunT(t)
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { redis.Rdb = nil })
}

/*
* A wallet write drops the id-keyed entity, the way incWallet does
* The username lookup must stop serving the stale balance from cache alone
 */
func TestWalletInvalidationEvictsUsernameLookup(t *testing.T) {
	newTestRedis(t)
	ctx := context.Background()

	id := primitive.NewObjectID()
	patient := models.Patient{ID: id, Name: "Amira", WalletMoney: 300}
	require.NoError(t, redis.SetCache(ctx, util.PatientKey+"amira", id.Hex()))
	require.NoError(t, redis.SetCache(ctx, util.PatientKey+id.Hex(), patient))

	cached, ok := cachedPatientByUsername(ctx, "amira")
	require.True(t, ok)
	assert.Equal(t, 300.0, cached.WalletMoney)

	require.NoError(t, redis.DeleteCache(ctx, util.PatientKey+id.Hex()))

	_, ok = cachedPatientByUsername(ctx, "amira")
	assert.False(t, ok)
}

/*
* An availability write drops the id-keyed doctor, the way
* SetDoctorAvailability does
* The username lookup must not resurrect the old slot list
 */
func TestAvailabilityInvalidationEvictsUsernameLookup(t *testing.T) {
	newTestRedis(t)
	ctx := context.Background()

	id := primitive.NewObjectID()
	slot := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	doctor := models.Doctor{ID: id, Name: "Omar", AvailableTimes: []time.Time{slot}}
	require.NoError(t, redis.SetCache(ctx, util.DoctorKey+"omar", id.Hex()))
	require.NoError(t, redis.SetCache(ctx, util.DoctorKey+id.Hex(), doctor))

	cached, ok := cachedDoctorByUsername(ctx, "omar")
	require.True(t, ok)
	require.Len(t, cached.AvailableTimes, 1)

	require.NoError(t, redis.DeleteCache(ctx, util.DoctorKey+id.Hex()))

	_, ok = cachedDoctorByUsername(ctx, "omar")
	assert.False(t, ok)
}

/*
* A username key pointing at a missing entity is a miss, never an error
 */
func TestCachedLookupMissesWithoutEntity(t *testing.T) {
	newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, redis.SetCache(ctx, util.PatientKey+"ghost", primitive.NewObjectID().Hex()))

	_, ok := cachedPatientByUsername(ctx, "ghost")
	assert.False(t, ok)
}

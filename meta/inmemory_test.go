package meta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryRateLimitRoundtrip(t *testing.T) {
	storage := NewInMemory()

	record, err := storage.GetRateLimit("10.0.0.1")
	require.NoError(t, err)
	require.Nil(t, record)

	require.NoError(t, storage.SaveRateLimit("10.0.0.1", &RateLimitRecord{Count: 3, Timestamp: 1000}, 60))

	record, err = storage.GetRateLimit("10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, 3, record.Count)
	require.Equal(t, int64(1000), record.Timestamp)

	//different ip is an independent counter
	record, err = storage.GetRateLimit("10.0.0.2")
	require.NoError(t, err)
	require.Nil(t, record)
}

func TestInMemoryTTLExpiration(t *testing.T) {
	storage := NewInMemory()

	require.NoError(t, storage.SaveRateLimit("10.0.0.1", &RateLimitRecord{Count: 100, Timestamp: 1000}, 1))
	require.NoError(t, storage.SaveVisit("visit:1000:id1", []byte(`{"sessionId":"abc"}`), 1))

	require.Equal(t, []string{"visit:1000:id1"}, storage.VisitKeys())

	time.Sleep(1100 * time.Millisecond)

	record, err := storage.GetRateLimit("10.0.0.1")
	require.NoError(t, err)
	require.Nil(t, record)
	require.Empty(t, storage.VisitKeys())
}

func TestInMemoryVisitsAreWriteOnce(t *testing.T) {
	storage := NewInMemory()

	require.NoError(t, storage.SaveVisit("visit:1:a", []byte("one"), 60))
	require.NoError(t, storage.SaveVisit("visit:2:b", []byte("two"), 60))

	require.ElementsMatch(t, []string{"visit:1:a", "visit:2:b"}, storage.VisitKeys())
	require.Equal(t, []byte("one"), storage.GetVisit("visit:1:a"))
	require.Equal(t, []byte("two"), storage.GetVisit("visit:2:b"))
}

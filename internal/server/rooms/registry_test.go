package rooms

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateThenJoin(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	id := r.Create("alice")

	require.True(t, strings.HasPrefix(id, "room-"))
	require.Equal(t, 1, r.PendingLen())

	require.Equal(t, JoinSuccess, r.Join(id, "bob"))
	require.Equal(t, 0, r.PendingLen())
	require.Equal(t, 1, r.ActiveLen())

	room, ok := r.Active(id)
	require.True(t, ok)
	require.Equal(t, "alice", room.OccupantA)
	require.Equal(t, "bob", room.OccupantB)
}

func TestJoin_ThirdOccupantGetsFull(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	id := r.Create("alice")

	require.Equal(t, JoinSuccess, r.Join(id, "bob"))
	require.Equal(t, JoinFull, r.Join(id, "carol"))
}

func TestJoin_UnknownRoom(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.Equal(t, JoinNotFound, r.Join("room-nonexistent", "bob"))
}

func TestCreate_IDsAreUnique(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := r.Create("alice")
		require.False(t, seen[id], "duplicate room id %s", id)
		seen[id] = true
	}
}

func TestCancelPending(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	id := r.Create("alice")

	require.False(t, r.CancelPending(id, "mallory"), "only the creator may cancel")
	require.True(t, r.CancelPending(id, "alice"))
	require.False(t, r.CancelPending(id, "alice"), "cancel is not idempotent-true")

	require.Equal(t, JoinNotFound, r.Join(id, "bob"))
}

func TestCancelPending_PromotedRoomUntouched(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	id := r.Create("alice")
	require.Equal(t, JoinSuccess, r.Join(id, "bob"))

	require.False(t, r.CancelPending(id, "alice"))
	_, ok := r.Active(id)
	require.True(t, ok)
}

func TestJoin_ConcurrentJoinersExactlyOneWinner(t *testing.T) {
	t.Parallel()

	const n = 64

	r := NewRegistry()
	id := r.Create("creator")

	results := make([]JoinResult, n)
	var start sync.WaitGroup
	var done sync.WaitGroup
	start.Add(1)

	for i := 0; i < n; i++ {
		done.Add(1)
		go func(i int) {
			defer done.Done()
			start.Wait()
			results[i] = r.Join(id, fmt.Sprintf("joiner-%d", i))
		}(i)
	}

	start.Done()
	done.Wait()

	var success, full, notFound int
	for _, res := range results {
		switch res {
		case JoinSuccess:
			success++
		case JoinFull:
			full++
		case JoinNotFound:
			notFound++
		}
	}

	require.Equal(t, 1, success, "exactly one joiner must win")
	require.Equal(t, n-1, full, "all losers must observe Full, never NotFound")
	require.Zero(t, notFound)
	require.Equal(t, 0, r.PendingLen())
	require.Equal(t, 1, r.ActiveLen())
}

func TestJoinResult_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Success", JoinSuccess.String())
	require.Equal(t, "NotFound", JoinNotFound.String())
	require.Equal(t, "Full", JoinFull.String())
	require.Equal(t, "Unknown", JoinResult(42).String())
}

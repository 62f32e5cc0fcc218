// Package projection keeps a display copy of each schedule's seat map in
// Redis. It is refreshed after the fact and never consulted when deciding
// whether a seat can be held or booked.
package projection

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/metinatakli/seat-reservation-engine/internal/availability"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL = 30 * time.Second

	versionField    = "_version"
	resolvedAtField = "_resolvedAt"
	validUntilField = "_validUntil"
)

var ErrMiss = errors.New("seat map is not cached")

type seatEntry struct {
	Index  int                `json:"i"`
	Row    string             `json:"row"`
	Number int                `json:"number"`
	Tier   domain.SeatTier    `json:"tier"`
	State  availability.State `json:"state"`
}

type SeatMap struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewSeatMap(client redis.UniversalClient, ttl time.Duration) *SeatMap {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &SeatMap{
		client: client,
		ttl:    ttl,
	}
}

func seatMapKey(scheduleID int) string {
	return fmt.Sprintf("seat_map:%d", scheduleID)
}

// storeScript replaces the hash unless it already holds a snapshot resolved
// later than the one being written, so concurrent refreshes that finish out
// of order cannot put an older map back in place.
var storeScript = redis.NewScript(`
    -- KEYS[1] = seat map key
    -- ARGV = [version, ttl in ms, field, value, field, value, ...]

    local current = redis.call("HGET", KEYS[1], "_version")
    if current and tonumber(current) > tonumber(ARGV[1]) then
        return 0
    end

    redis.call("DEL", KEYS[1])
    redis.call("HSET", KEYS[1], "_version", ARGV[1], unpack(ARGV, 3))
    redis.call("PEXPIRE", KEYS[1], ARGV[2])

    return 1
`)

// Store replaces the cached seat map of the schedule. The entry expires no
// later than the first hold in the snapshot does, since the map is stale from
// that point on. A snapshot older than the cached one is dropped.
func (s *SeatMap) Store(ctx context.Context, scheduleID int, snapshot availability.Snapshot) error {
	ttl := s.ttl
	if !snapshot.ValidUntil.IsZero() {
		untilExpiry := snapshot.ValidUntil.Sub(snapshot.At)
		if untilExpiry <= 0 {
			return s.Invalidate(ctx, scheduleID)
		}

		ttl = min(ttl, untilExpiry)
	}

	// microseconds keep the version within the integer range of Lua numbers
	args := make([]any, 0, 2*len(snapshot.Seats)+6)
	args = append(args, snapshot.At.UnixMicro(), ttl.Milliseconds())

	for i, seat := range snapshot.Seats {
		data, err := json.Marshal(seatEntry{
			Index:  i,
			Row:    seat.Row,
			Number: seat.Number,
			Tier:   seat.Tier,
			State:  seat.State,
		})
		if err != nil {
			return err
		}

		args = append(args, seat.ID, string(data))
	}

	args = append(args, resolvedAtField, snapshot.At.Format(time.RFC3339Nano))
	if !snapshot.ValidUntil.IsZero() {
		args = append(args, validUntilField, snapshot.ValidUntil.Format(time.RFC3339Nano))
	}

	return storeScript.Run(ctx, s.client, []string{seatMapKey(scheduleID)}, args...).Err()
}

// Load returns the cached seat map, or ErrMiss when there is none.
func (s *SeatMap) Load(ctx context.Context, scheduleID int) (*availability.Snapshot, error) {
	fields, err := s.client.HGetAll(ctx, seatMapKey(scheduleID)).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, ErrMiss
	}

	var snapshot availability.Snapshot
	entries := make(map[string]seatEntry, len(fields))

	for field, value := range fields {
		switch field {
		case versionField:
		case resolvedAtField:
			snapshot.At, err = time.Parse(time.RFC3339Nano, value)
		case validUntilField:
			snapshot.ValidUntil, err = time.Parse(time.RFC3339Nano, value)
		default:
			var entry seatEntry
			err = json.Unmarshal([]byte(value), &entry)
			entries[field] = entry
		}

		if err != nil {
			return nil, fmt.Errorf("corrupt seat map field %q: %w", field, err)
		}
	}

	snapshot.Seats = make([]availability.SeatState, 0, len(entries))
	for id, entry := range entries {
		snapshot.Seats = append(snapshot.Seats, availability.SeatState{
			Seat: domain.Seat{
				ID:     id,
				Row:    entry.Row,
				Number: entry.Number,
				Tier:   entry.Tier,
			},
			State: entry.State,
		})
	}

	slices.SortFunc(snapshot.Seats, func(a, b availability.SeatState) int {
		return cmp.Compare(entries[a.ID].Index, entries[b.ID].Index)
	})

	return &snapshot, nil
}

func (s *SeatMap) Invalidate(ctx context.Context, scheduleID int) error {
	return s.client.Del(ctx, seatMapKey(scheduleID)).Err()
}

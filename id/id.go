package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	// Seed a PRNG from crypto/rand so ULID entropy is unpredictable.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// ErrTimeRange is returned for timestamps a ULID cannot carry: anything
// before the Unix epoch or past ulid.MaxTime.
var ErrTimeRange = errors.New("time outside id range")

// CheckTime reports whether t can be stamped into an ID.
func CheckTime(t time.Time) error {
	if t.Before(time.Unix(0, 0)) || t.After(ulid.Time(ulid.MaxTime())) {
		return fmt.Errorf("%w: %s", ErrTimeRange, t.UTC().Format(time.RFC3339))
	}
	return nil
}

// New returns a ULID string stamped with t, so trade IDs sort by trade time
// rather than by the moment they were recorded. A zero t uses the clock.
func New(t time.Time) (string, error) {
	if t.IsZero() {
		t = time.Now()
	}
	if err := CheckTime(t); err != nil {
		return "", err
	}

	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), mono)
	if err != nil {
		// Monotonic entropy overflows only after 2^80 IDs in one millisecond.
		id, err = ulid.New(ulid.Timestamp(t.UTC()), cryptoRand.Reader)
		if err != nil {
			return "", fmt.Errorf("new id: %w", err)
		}
	}
	return id.String(), nil
}

// Time extracts the timestamp a ULID was stamped with.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}

package wagachain

import (
	"encoding/json"
	"time"

	"github.com/wagatoken/wagachain/errors"
)

// UnixTime is a point in time represented as seconds since the epoch. It is
// the only time representation persisted by the application: it keeps the
// serialized form free of timezone and monotonic clock information, so that
// all nodes agree on it byte for byte.
type UnixTime int64

// Time converts into the stdlib representation. The zero UnixTime still
// converts into a non-zero time.Time, use IsZero on UnixTime to test for
// the missing value.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

// AsUnixTime converts, dropping the sub-second precision.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// Add shifts the time by given duration. Sub-second precision of the
// duration is ignored. The result saturates on int64 overflow.
func (t UnixTime) Add(d time.Duration) UnixTime {
	shifted := t + UnixTime(d/time.Second)
	if d > 0 && shifted < t {
		return maxUnixTime
	}
	if d < 0 && shifted > t {
		return minUnixTime
	}
	return shifted
}

const (
	maxUnixTime UnixTime = 1<<63 - 1
	minUnixTime UnixTime = -1 << 63
)

// UnmarshalJSON supports both a number of seconds and any time string that
// time.Parse understands in RFC 3339 format.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		*t = UnixTime(n)
		return nil
	}
	var stamp string
	if err := json.Unmarshal(raw, &stamp); err != nil {
		return errors.Wrap(errors.ErrInput, "invalid time format")
	}
	val, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*t = AsUnixTime(val)
	return nil
}

func (t UnixTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(t))
}

func (t UnixTime) IsZero() bool {
	return t == 0
}

// Validate rejects times that cannot come from a correct clock.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative time")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().UTC().String()
}

package cache

import (
	"encoding/json"
	"time"
)

// cachedValue carries a JSON encoded value along with the moment it stops being
// fresh, so instances sharing the remote cache agree on the expiration.
type cachedValue struct {
	FreshUntil time.Time       `json:"freshUntil"`
	Value      json.RawMessage `json:"value"`
}

func newCachedValue(value interface{}, duration time.Duration) (cachedValue, error) {
	bytes, err := json.Marshal(value)
	if err != nil {
		return cachedValue{}, err
	}

	return cachedValue{
		FreshUntil: time.Now().Add(duration),
		Value:      json.RawMessage(bytes),
	}, nil
}

func (c cachedValue) TTL() time.Duration {
	return time.Until(c.FreshUntil)
}

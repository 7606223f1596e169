package testUtils

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/pkg/errors"
	"github.com/vtex/go-resconfig/reflext"
)

const (
	opGet      = "Get"
	opSet      = "Set"
	opGetOrSet = "GetOrSet"
)

// Any matches every recorded argument.
var Any Matcher = anyArg{}

type Matcher interface {
	Matches(value interface{}) bool
}

type anyArg struct{}

func (anyArg) Matches(interface{}) bool { return true }

// FakeCache keeps values as JSON, like a remote store would, and records every
// call. Assertions consume the calls they match, so a later assertion only sees
// what happened after it.
type FakeCache struct {
	entries  map[string]fakeEntry
	failures map[string]error
	calls    []recordedCall
}

type fakeEntry struct {
	data      json.RawMessage
	expiresAt time.Time
}

type recordedCall struct {
	op   string
	key  string
	args []interface{}
}

func NewFakeCache() *FakeCache {
	return (&FakeCache{}).Reset()
}

// Reset drops stored values, planned failures and recorded calls.
func (c *FakeCache) Reset() *FakeCache {
	c.entries = map[string]fakeEntry{}
	c.failures = map[string]error{}
	c.calls = nil
	return c
}

func (c *FakeCache) Get(key string, result interface{}) (bool, error) {
	c.record(opGet, key)
	if err := c.failure(opGet, key); err != nil {
		return false, err
	}
	return c.load(key, result)
}

func (c *FakeCache) Set(key string, value interface{}, duration time.Duration) error {
	c.record(opSet, key, value, duration)
	if err := c.failure(opSet, key); err != nil {
		return err
	}
	return c.store(key, value, duration)
}

func (c *FakeCache) GetOrSet(key string, result interface{}, duration time.Duration, fetch func() (interface{}, error)) error {
	c.record(opGetOrSet, key, duration)
	if err := c.failure(opGetOrSet, key); err != nil {
		return err
	}

	hit, err := c.load(key, result)
	if err != nil {
		return err
	}
	if hit {
		return nil
	}

	value, err := fetch()
	if err != nil {
		return errors.Wrap(err, "Fetch failed")
	}
	if err := c.store(key, value, duration); err != nil {
		return err
	}
	return reflext.SetPointer(result, value)
}

// DeleteKey removes a stored value without recording a call.
func (c *FakeCache) DeleteKey(key string) bool {
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

func (c *FakeCache) FailGetFor(key string, err error)      { c.failures[opGet+" "+key] = err }
func (c *FakeCache) FailSetFor(key string, err error)      { c.failures[opSet+" "+key] = err }
func (c *FakeCache) FailGetOrSetFor(key string, err error) { c.failures[opGetOrSet+" "+key] = err }

// GetMustHaveBeenCalledWith checks key was read exactly times times.
func (c *FakeCache) GetMustHaveBeenCalledWith(key string, times int) error {
	return c.expect(opGet, key, times)
}

// SetMustHaveBeenCalledWith checks key was written at least once with matching
// arguments. Value and duration may be Any.
func (c *FakeCache) SetMustHaveBeenCalledWith(key string, value, duration interface{}) error {
	return c.expect(opSet, key, -1, value, duration)
}

func (c *FakeCache) GetOrSetMustHaveBeenCalledWith(key string, times int, duration interface{}) error {
	return c.expect(opGetOrSet, key, times, duration)
}

func (c *FakeCache) GetMustNotHaveBeenCalledWith(key string) error {
	if n := c.count(opGet, key); n > 0 {
		return errors.Errorf("Expected Get(%s) not to have been called, it was called %d times", key, n)
	}
	return nil
}

func (c *FakeCache) load(key string, result interface{}) (bool, error) {
	entry, ok := c.entries[key]
	if !ok || !time.Now().Before(entry.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, result); err != nil {
		return false, errors.Wrapf(err, "Failed to decode fake cache entry %s", key)
	}
	return true, nil
}

func (c *FakeCache) store(key string, value interface{}, duration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "Failed to encode fake cache entry %s", key)
	}
	c.entries[key] = fakeEntry{data: data, expiresAt: time.Now().Add(duration)}
	return nil
}

func (c *FakeCache) record(op, key string, args ...interface{}) {
	c.calls = append(c.calls, recordedCall{op: op, key: key, args: args})
}

func (c *FakeCache) failure(op, key string) error {
	return c.failures[op+" "+key]
}

func (c *FakeCache) count(op, key string, args ...interface{}) int {
	n := 0
	for _, call := range c.calls {
		if call.matches(op, key, args) {
			n++
		}
	}
	return n
}

// expect checks the matching calls, then forgets them. A negative times only
// requires one call.
func (c *FakeCache) expect(op, key string, times int, args ...interface{}) error {
	n := c.count(op, key, args...)
	if n == 0 {
		return errors.Errorf("Expected %s(%s) to have been called, it was not", op, key)
	}
	if times >= 0 && n != times {
		return errors.Errorf("Expected %s(%s) to have been called %d times, it was called %d times", op, key, times, n)
	}

	kept := c.calls[:0]
	for _, call := range c.calls {
		if !call.matches(op, key, args) {
			kept = append(kept, call)
		}
	}
	c.calls = kept
	return nil
}

func (call recordedCall) matches(op, key string, args []interface{}) bool {
	if call.op != op || call.key != key {
		return false
	}
	if len(args) == 0 {
		return true
	}
	if len(args) != len(call.args) {
		return false
	}
	for i, want := range args {
		if m, ok := want.(Matcher); ok {
			if !m.Matches(call.args[i]) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(call.args[i], want) {
			return false
		}
	}
	return true
}

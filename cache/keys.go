package cache

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	folderKeyPrefix  = "folder:"
	resolveKeyPrefix = "resolve:"
)

// FolderKey is the key of the parsed configuration of a resource folder name.
func FolderKey(folderName string) string {
	return folderKeyPrefix + folderName
}

// ResolveKey is the key of a resolution of reference against an ordered list of
// candidate qualifier strings. Order matters since ties go to the first candidate.
func ResolveKey(reference string, candidates []string) string {
	var b strings.Builder
	b.WriteString(reference)
	for _, c := range candidates {
		b.WriteByte(0)
		b.WriteString(c)
	}
	sum := xxhash.Sum64String(b.String())
	return resolveKeyPrefix + strconv.Itoa(len(candidates)) + ":" + strconv.FormatUint(sum, 16)
}

func ensureValidCacheKey(key string) error {
	if key == "" {
		return errors.New("Cache key must not be empty")
	}
	return nil
}

func logger(category, code, key string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"category": category,
		"code":     code,
		"key":      key,
	})
}

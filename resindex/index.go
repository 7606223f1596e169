package resindex

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gregjones/httpcache"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vtex/go-resconfig/cache"
	"github.com/vtex/go-resconfig/event"
	"github.com/vtex/go-resconfig/folderconfig"
	"github.com/vtex/go-resconfig/prometheus"
	"github.com/vtex/go-resconfig/sharedflight"
)

const (
	indexLogCategory = "resconfig_index"

	// Source of folders added one by one with AddFolder.
	manualSource = ""

	defaultConfigTTL   = 24 * time.Hour
	defaultHTTPTimeout = 30 * time.Second
	eventBufferSize    = 64
)

// Types of the events published by an index.
const (
	EventFolderAdded    = "folder_added"
	EventSourceReplaced = "source_replaced"
)

// SourceUpdate is the payload of index events.
type SourceUpdate struct {
	Source  string `json:"source"`
	Folder  string `json:"folder,omitempty"`
	Folders int    `json:"folders"`
}

// Index holds the resource folders of one or more sources (a directory, an
// archive, a remote listing) and resolves the best folder for a device
// configuration. It is safe for concurrent use.
type Index struct {
	mu      sync.RWMutex
	sources map[string][]*Folder

	configs    cache.Cache
	configTTL  time.Duration
	httpClient *http.Client
	scans      sharedflight.Group
	events     chan event.Event
	broker     event.Broker
	closed     bool
	ignore     []string
}

type Option func(*Index)

// WithConfigCache memoizes parsed folder configurations in c instead of the
// default in-memory cache.
func WithConfigCache(c cache.Cache, ttl time.Duration) Option {
	return func(i *Index) {
		i.configs = c
		i.configTTL = ttl
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(i *Index) {
		i.httpClient = client
	}
}

// WithIgnore skips resource paths ("<folder>/<file>") matching any of the
// given glob patterns, such as "**/.DS_Store" or "raw*/*.tmp".
func WithIgnore(patterns ...string) Option {
	return func(i *Index) {
		i.ignore = append(i.ignore, patterns...)
	}
}

// ValidateIgnore returns an error for the first malformed ignore pattern.
func ValidateIgnore(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("Invalid ignore pattern %q", pattern)
		}
	}
	return nil
}

func New(opts ...Option) *Index {
	index := &Index{
		sources:   map[string][]*Folder{},
		configs:   cache.NewMemory(),
		configTTL: defaultConfigTTL,
		events:    make(chan event.Event, eventBufferSize),
	}
	for _, opt := range opts {
		opt(index)
	}
	if index.httpClient == nil {
		index.httpClient = &http.Client{
			Transport: httpcache.NewTransport(cache.HTTP(0, 0)),
			Timeout:   defaultHTTPTimeout,
		}
	}
	index.broker = event.NewBroker(context.Background(), index.events)
	return index
}

// Close ends every event subscription. The index still resolves folders and
// accepts changes afterwards, but publishes no more events.
func (i *Index) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.closed {
		i.closed = true
		close(i.events)
	}
}

// AddFolder adds a folder by name, merging files into an existing folder of
// the same name. Names that are not valid resource folders are logged and
// skipped.
func (i *Index) AddFolder(name string, files ...string) bool {
	folder, ok := i.parseFolder(manualSource, name)
	if !ok {
		return false
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	folders := i.sources[manualSource]
	for n, existing := range folders {
		if existing.Name == name {
			folders[n] = existing.withFiles(files...)
			return true
		}
	}
	folder.addFiles(files...)
	i.sources[manualSource] = append(i.sources[manualSource], folder)
	prometheus.SetIndexedFolders(i.lenLocked())
	i.publish(event.NewTypedEvent(EventFolderAdded, SourceUpdate{
		Source:  manualSource,
		Folder:  name,
		Folders: len(i.sources[manualSource]),
	}))
	return true
}

// Subscribe streams the changes made to the index, restricted to the given
// event types when any. Events are dropped while subscribers lag behind and the
// buffer is full. It fails with event.ErrBrokerStopped once the index is closed.
func (i *Index) Subscribe(ctx context.Context, types ...string) (event.EventSource, error) {
	return i.broker.Subscribe(ctx, types...)
}

func (i *Index) Unsubscribe(src event.EventSource) (bool, error) {
	return i.broker.Unsubscribe(src)
}

// publish must be called with mu held.
func (i *Index) publish(ev event.Event) {
	if i.closed {
		return
	}
	select {
	case i.events <- ev:
	default:
		logrus.WithFields(logrus.Fields{
			"category": indexLogCategory,
			"code":     "event_dropped",
			"type":     ev.Type,
		}).Debug("Dropped index event")
	}
}

// Len returns the number of folders across all sources.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.lenLocked()
}

func (i *Index) lenLocked() int {
	n := 0
	for _, folders := range i.sources {
		n += len(folders)
	}
	return n
}

// Sources returns the loaded sources, sorted.
func (i *Index) Sources() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sources := make([]string, 0, len(i.sources))
	for source := range i.sources {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	return sources
}

// Folders returns the folders of a type, ordered by configuration.
func (i *Index) Folders(typ FolderType) []*Folder {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var folders []*Folder
	for _, source := range i.sources {
		for _, f := range source {
			if f.Type == typ {
				folders = append(folders, f)
			}
		}
	}
	sort.SliceStable(folders, func(a, b int) bool { return lessFolder(folders[a], folders[b]) })
	return folders
}

// FindMatchingFolder returns the folder of the given type that best matches
// the reference configuration, or nil.
func (i *Index) FindMatchingFolder(typ FolderType, reference *folderconfig.Configuration) *Folder {
	return i.findMatching(i.Folders(typ), reference)
}

// FindMatchingFile returns the best matching folder of the given type among
// those holding file.
func (i *Index) FindMatchingFile(typ FolderType, file string, reference *folderconfig.Configuration) *Folder {
	var holding []*Folder
	for _, f := range i.Folders(typ) {
		if f.HasFile(file) {
			holding = append(holding, f)
		}
	}
	return i.findMatching(holding, reference)
}

func (i *Index) findMatching(folders []*Folder, reference *folderconfig.Configuration) *Folder {
	candidates := make([]folderconfig.Configurable, len(folders))
	for n, f := range folders {
		candidates[n] = f
	}

	match := reference.FindMatchingConfigurable(candidates)
	if match == nil {
		prometheus.ObserveResolution(prometheus.ResultNoMatch, len(candidates))
		return nil
	}
	prometheus.ObserveResolution(prometheus.ResultMatched, len(candidates))
	return match.(*Folder)
}

// replaceSource swaps every folder of source for the given ones.
func (i *Index) replaceSource(source string, folders []*Folder) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if len(folders) == 0 {
		delete(i.sources, source)
	} else {
		i.sources[source] = folders
	}
	prometheus.SetIndexedFolders(i.lenLocked())
	i.publish(event.NewTypedEvent(EventSourceReplaced, SourceUpdate{Source: source, Folders: len(folders)}))
}

// parseFolder builds a folder from its name. The configuration is memoized,
// and the folder gets its own copy since cached values are shared.
func (i *Index) parseFolder(source, name string) (*Folder, bool) {
	typeName := strings.SplitN(name, folderconfig.Separator, 2)[0]
	typ, ok := ParseFolderType(typeName)
	if !ok {
		logInvalidFolder(source, name, errors.Errorf("Unknown resource type %q", typeName))
		return nil, false
	}

	var config *folderconfig.Configuration
	err := i.configs.GetOrSet(cache.FolderKey(name), &config, i.configTTL, func() (interface{}, error) {
		parsed, ok := folderconfig.FromFolderName(name)
		if !ok {
			return nil, errors.Errorf("Invalid qualifiers in folder name %q", name)
		}
		return parsed, nil
	})
	if err != nil || config == nil {
		logInvalidFolder(source, name, err)
		return nil, false
	}
	return newFolder(source, name, typ, config.Clone()), true
}

// collect groups resource paths into folders of one source. Paths whose folder
// is not a valid resource folder are skipped.
func (i *Index) collect(source string, paths []string) []*Folder {
	byName := map[string]*Folder{}
	var folders []*Folder
	for _, path := range paths {
		if i.ignored(path) {
			continue
		}
		name, file, ok := splitResourcePath(path)
		if !ok {
			continue
		}
		folder, exists := byName[name]
		if !exists {
			if folder, ok = i.parseFolder(source, name); !ok {
				// Remember the failure so the name is logged once.
				byName[name] = nil
				continue
			}
			byName[name] = folder
			folders = append(folders, folder)
		}
		if folder != nil {
			folder.addFiles(file)
		}
	}
	return folders
}

func (i *Index) ignored(path string) bool {
	for _, pattern := range i.ignore {
		// Patterns are validated up front, a bad one simply never matches.
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

func logInvalidFolder(source, name string, err error) {
	prometheus.ObserveParseFailure("folder")
	entry := logrus.WithFields(logrus.Fields{
		"category": indexLogCategory,
		"code":     "invalid_folder",
		"source":   source,
		"folder":   name,
	})
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn("Skipping invalid resource folder")
}

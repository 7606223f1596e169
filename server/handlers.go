package server

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vtex/go-resconfig/cache"
	"github.com/vtex/go-resconfig/folderconfig"
	"github.com/vtex/go-resconfig/prometheus"
	"github.com/vtex/go-resconfig/resindex"
)

type resolveRequest struct {
	// Reference is the qualifier list of the device, such as "en-rUS-hdpi-v21".
	Reference string `json:"reference"`
	// Candidates are resource folder names, such as "values-en".
	Candidates []string `json:"candidates" binding:"required"`
}

type resolveResult struct {
	Match *string `json:"match"`
	Index int     `json:"index"`
}

type qualifierView struct {
	Axis    string `json:"axis"`
	Segment string `json:"segment"`
	Display string `json:"display"`
}

type folderView struct {
	Folder      string          `json:"folder"`
	Type        string          `json:"type"`
	Key         string          `json:"key"`
	Description string          `json:"description"`
	Qualifiers  []qualifierView `json:"qualifiers"`
}

func errorBody(err error) gin.H {
	return gin.H{"error": err.Error()}
}

func (s *Server) resolve(g *gin.Context) {
	var req resolveRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, errorBody(err))
		return
	}

	reference, err := folderconfig.Parse(req.Reference)
	if err != nil {
		prometheus.ObserveResolution(prometheus.ResultInvalid, len(req.Candidates))
		g.JSON(http.StatusBadRequest, errorBody(err))
		return
	}

	var result resolveResult
	key := cache.ResolveKey(reference.UniqueKey(), req.Candidates)
	err = s.results.GetOrSet(key, &result, s.config.Cache.TTL, func() (interface{}, error) {
		return resolveCandidates(reference, req.Candidates), nil
	})
	if err != nil {
		logger("resolve_error", key).WithError(err).Error("Failed to resolve configuration")
		g.JSON(http.StatusInternalServerError, errorBody(err))
		return
	}

	if result.Match == nil {
		prometheus.ObserveResolution(prometheus.ResultNoMatch, len(req.Candidates))
	} else {
		prometheus.ObserveResolution(prometheus.ResultMatched, len(req.Candidates))
	}
	g.JSON(http.StatusOK, result)
}

// candidate is a folder name offered to a resolution, remembering its position
// in the request.
type candidate struct {
	name   string
	index  int
	config *folderconfig.Configuration
}

func (c *candidate) Configuration() *folderconfig.Configuration {
	return c.config
}

// resolveCandidates matches folder names against reference. Names that do not
// parse are kept with no configuration, so the matcher skips them.
func resolveCandidates(reference *folderconfig.Configuration, names []string) resolveResult {
	candidates := make([]folderconfig.Configurable, len(names))
	for i, name := range names {
		config, ok := folderconfig.FromFolderName(name)
		if !ok {
			prometheus.ObserveParseFailure("candidate")
		}
		candidates[i] = &candidate{name: name, index: i, config: config}
	}

	match := reference.FindMatchingConfigurable(candidates)
	if match == nil {
		return resolveResult{Index: -1}
	}
	c := match.(*candidate)
	return resolveResult{Match: &c.name, Index: c.index}
}

func (s *Server) parse(g *gin.Context) {
	name := g.Param("folder")
	config, ok := folderconfig.FromFolderName(name)
	if !ok {
		prometheus.ObserveParseFailure("folder")
		g.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource folder name", "folder": name})
		return
	}

	view := folderView{
		Folder:      name,
		Type:        strings.SplitN(name, folderconfig.Separator, 2)[0],
		Key:         config.UniqueKey(),
		Description: config.String(),
		Qualifiers:  []qualifierView{},
	}
	for _, q := range config.Qualifiers() {
		view.Qualifiers = append(view.Qualifiers, qualifierView{
			Axis:    q.Axis().String(),
			Segment: q.FolderSegment(),
			Display: q.LongDisplayValue(),
		})
	}
	g.JSON(http.StatusOK, view)
}

func (s *Server) matchFolder(g *gin.Context) {
	typ, ok := resindex.ParseFolderType(g.Param("type"))
	if !ok {
		g.JSON(http.StatusBadRequest, gin.H{"error": "Unknown resource type", "type": g.Param("type")})
		return
	}
	reference, err := folderconfig.Parse(g.Query("reference"))
	if err != nil {
		g.JSON(http.StatusBadRequest, errorBody(err))
		return
	}

	var folder *resindex.Folder
	if file := g.Query("file"); file != "" {
		folder = s.index.FindMatchingFile(typ, file, reference)
	} else {
		folder = s.index.FindMatchingFolder(typ, reference)
	}
	if folder == nil {
		g.JSON(http.StatusNotFound, gin.H{"error": "No matching folder", "reference": reference.UniqueKey()})
		return
	}
	g.JSON(http.StatusOK, gin.H{
		"folder": folder.Name,
		"source": folder.Source,
		"files":  folder.Files(),
	})
}

func (s *Server) refresh(g *gin.Context) {
	scheduled := []string{}
	for _, dir := range s.config.Index.Dirs {
		if s.refresher.Schedule(dir) {
			scheduled = append(scheduled, dir)
		}
	}
	g.JSON(http.StatusAccepted, gin.H{"scheduled": scheduled, "pending": s.refresher.Pending()})
}

// indexEvents streams index changes as server-sent events until the client
// goes away. Repeated "type" query parameters restrict the event types.
func (s *Server) indexEvents(g *gin.Context) {
	ctx, cancel := context.WithCancel(g.Request.Context())
	sub, err := s.index.Subscribe(ctx, g.QueryArray("type")...)
	if err != nil {
		cancel()
		g.JSON(http.StatusServiceUnavailable, errorBody(err))
		return
	}
	defer s.index.Unsubscribe(sub)
	// Cancel before unsubscribing so a delivery blocked on us gives up.
	defer cancel()

	g.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub:
			if !ok {
				return false
			}
			g.SSEvent(ev.Type, ev.Data)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

func (s *Server) health(g *gin.Context) {
	if s.remote != nil {
		if err := s.remote.Ping(); err != nil {
			g.JSON(http.StatusServiceUnavailable, errorBody(err))
			return
		}
	}
	g.JSON(http.StatusOK, gin.H{"status": "ok", "folders": s.index.Len()})
}

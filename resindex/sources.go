package resindex

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vtex/go-resconfig/ioext"
)

const zipContentType = "application/zip"

// ScanDir indexes the resource folders under root, a "res" directory, and
// returns how many were found. Folders previously loaded from root are
// replaced. Concurrent scans of the same root share a single walk.
func (i *Index) ScanDir(ctx context.Context, root string) (int, error) {
	root = filepath.Clean(root)
	v, err, _ := i.scans.Do(ctx, root, func(ctx context.Context) (interface{}, error) {
		folders, err := i.scanDir(ctx, root)
		if err != nil {
			return 0, err
		}
		i.replaceSource(root, folders)
		return len(folders), nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (i *Index) scanDir(ctx context.Context, root string) ([]*Folder, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read resource directory %s", root)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "Scan of %s interrupted", root)
		}

		files, err := os.ReadDir(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to read resource folder %s", entry.Name())
		}
		if len(files) == 0 {
			// Keep empty folders: they still take part in matching.
			paths = append(paths, entry.Name()+"/")
		}
		for _, file := range files {
			if !file.IsDir() {
				paths = append(paths, entry.Name()+"/"+file.Name())
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"category": indexLogCategory,
		"code":     "scan_dir",
		"root":     root,
		"paths":    len(paths),
	}).Debug("Scanned resource directory")
	return i.collectWithEmpty(root, paths), nil
}

// collectWithEmpty is collect, plus folders given as "<folder>/" with no file.
func (i *Index) collectWithEmpty(source string, paths []string) []*Folder {
	var files, empty []string
	for _, p := range paths {
		if strings.HasSuffix(p, "/") {
			empty = append(empty, strings.TrimSuffix(p, "/"))
		} else {
			files = append(files, p)
		}
	}

	folders := i.collect(source, files)
	seen := map[string]bool{}
	for _, f := range folders {
		seen[f.Name] = true
	}
	for _, name := range empty {
		name = strings.Trim(name, "/")
		if seen[name] {
			continue
		}
		seen[name] = true
		if folder, ok := i.parseFolder(source, name); ok {
			folders = append(folders, folder)
		}
	}
	return folders
}

// LoadZip indexes the "<folder>/<file>" entries of a zip archive under the
// given source name, replacing what was loaded from it before.
func (i *Index) LoadZip(source string, zipped []byte) (int, error) {
	names, err := ioext.ZipList(zipped)
	if err != nil {
		return 0, errors.Wrapf(err, "Failed to read resource archive %s", source)
	}
	folders := i.collect(source, names)
	i.replaceSource(source, folders)
	return len(folders), nil
}

// LoadRemote indexes a remote source. A zip archive is read like LoadZip;
// anything else is taken as a listing of one "<folder>/<file>" path per line.
// Responses go through an HTTP cache, so unchanged sources are cheap to reload.
func (i *Index) LoadRemote(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "Invalid remote resource source %s", url)
	}

	res, err := i.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return 0, errors.Wrapf(err, "Failed to fetch remote resources from %s", url)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, errors.Errorf("Failed to fetch remote resources from %s: status %d", url, res.StatusCode)
	}

	body, release, err := ioext.ReadAll(res.Body)
	if err != nil {
		return 0, errors.Wrapf(err, "Failed to read remote resources from %s", url)
	}
	defer release()

	if isZip(res, url) {
		return i.LoadZip(url, body)
	}

	var paths []string
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, errors.Wrapf(err, "Failed to parse resource listing from %s", url)
	}

	folders := i.collectWithEmpty(url, paths)
	i.replaceSource(url, folders)
	return len(folders), nil
}

func isZip(res *http.Response, url string) bool {
	return strings.HasPrefix(res.Header.Get("Content-Type"), zipContentType) ||
		strings.HasSuffix(strings.ToLower(url), ".zip")
}

package ioext

import (
	"archive/zip"
	"bytes"
	"io"
	"sort"
	"strings"
)

// ZipList returns the names of the regular files in a zip archive, sorted.
// Directory entries are skipped since resource folders are derived from the
// file paths themselves.
func ZipList(zippedBytes []byte) ([]string, error) {
	if len(zippedBytes) == 0 {
		return nil, nil
	}

	reader, err := zip.NewReader(bytes.NewReader(zippedBytes), int64(len(zippedBytes)))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(reader.File))
	for _, file := range reader.File {
		if file.FileInfo().IsDir() || strings.HasSuffix(file.Name, "/") {
			continue
		}
		names = append(names, file.Name)
	}
	sort.Strings(names)
	return names, nil
}

// ReadAll drains r into a pooled buffer. The returned release function hands the
// buffer back and must be called once the bytes are no longer used.
func ReadAll(r io.Reader) (data []byte, release func(), err error) {
	buf := getBuffer()
	if _, err := buf.ReadFrom(r); err != nil {
		putBuffer(buf)
		return nil, nil, err
	}
	return buf.Bytes(), func() { putBuffer(buf) }, nil
}

func ZipCompressTo(w io.Writer, files map[string][]byte) error {
	writer := zip.NewWriter(w)
	for path, content := range files {
		if err := writeFile(writer, path, content); err != nil {
			return err
		}
	}
	return writer.Close()
}

func writeFile(w *zip.Writer, name string, content []byte) error {
	fileWriter, err := w.Create(name)
	if err != nil {
		return err
	}
	_, err = fileWriter.Write(content)
	return err
}

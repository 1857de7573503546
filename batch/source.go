package batch

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// source is one class file to process, named by where it was found. Entries
// of archives are named "archive!entry".
type source struct {
	name string
	read func() ([]byte, error)
}

type collection struct {
	sources []source
	errors  []Result
	closers []io.Closer
}

func (c *collection) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (c *collection) fail(name string, err error) {
	c.errors = append(c.errors, Result{Name: name, Status: StatusFailed, Err: err})
}

func isClassFile(name string) bool {
	return filepath.Ext(name) == ".class"
}

func isArchive(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".jar" || ext == ".zip"
}

// collect gathers the class files under path: a single .class file, a jar or
// zip archive, or a directory holding any of those.
func collect(path string) (*collection, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	c := &collection{}
	switch {
	case info.IsDir():
		c.addDirectory(path)
	case isArchive(path):
		c.addZipFile(path)
	case isClassFile(path):
		c.addFile(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s (expected .class, .jar or .zip)", filepath.Ext(path))
	}
	return c, nil
}

func (c *collection) addFile(path string) {
	c.sources = append(c.sources, source{
		name: path,
		read: func() ([]byte, error) { return os.ReadFile(path) },
	})
}

func (c *collection) addDirectory(root string) {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			c.fail(p, fmt.Errorf("walk %s: %w", p, err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case isClassFile(p):
			c.addFile(p)
		case isArchive(p):
			c.addZipFile(p)
		}
		return nil
	})
	if err != nil {
		c.fail(root, fmt.Errorf("walk %s: %w", root, err))
	}
}

func (c *collection) addZipFile(path string) {
	r, err := zip.OpenReader(path)
	if err != nil {
		c.fail(path, fmt.Errorf("open zip: %w", err))
		return
	}
	c.closers = append(c.closers, r)
	c.addZipEntries(path, &r.Reader)
}

func (c *collection) addZipEntries(archive string, r *zip.Reader) {
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := archive + "!" + f.Name
		switch {
		case isClassFile(f.Name):
			c.sources = append(c.sources, source{
				name: name,
				read: func() ([]byte, error) { return readZipEntry(f) },
			})
		case isArchive(f.Name):
			c.addNestedJar(name, f)
		}
	}
}

// addNestedJar reads a jar stored inside another archive into memory and
// collects its entries.
func (c *collection) addNestedJar(name string, f *zip.File) {
	data, err := readZipEntry(f)
	if err != nil {
		c.fail(name, fmt.Errorf("read jar: %w", err))
		return
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		c.fail(name, fmt.Errorf("open jar as zip: %w", err))
		return
	}
	c.addZipEntries(name, r)
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

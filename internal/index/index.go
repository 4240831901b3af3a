package index

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/marte-community/scorer-dev-tools/internal/logger"
	"github.com/marte-community/scorer-dev-tools/internal/parser"
)

// Extension of declaration files picked up by ScanDirectory.
const Extension = ".unit"

// Entry is a unit together with the file that declared it.
type Entry struct {
	Unit *parser.Unit
	File string
}

// Catalog collects the units of every declaration file of a project.
// Files keep the order they were added in; units keep their order inside
// each file.
type Catalog struct {
	Files      []*parser.File
	byName     map[string]Entry
	duplicates map[string][]Entry
}

func NewCatalog() *Catalog {
	return &Catalog{
		byName:     make(map[string]Entry),
		duplicates: make(map[string][]Entry),
	}
}

// ScanDirectory parses every declaration file below rootPath, in lexical
// path order, and adds it to the catalog. Parse errors of all files are
// returned together.
func (c *Catalog) ScanDirectory(rootPath string) error {
	var files []string
	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), Extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Strings(files)
	return c.LoadFiles(files...)
}

// Load adds files and directories in argument order.
func (c *Catalog) Load(paths ...string) error {
	var errs []error
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			err = c.ScanDirectory(path)
		} else {
			err = c.LoadFiles(path)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadFiles parses and adds the given declaration files.
func (c *Catalog) LoadFiles(paths ...string) error {
	var errs []error
	for _, path := range paths {
		logger.Debug("indexing declarations", "file", filepath.Base(path), "path", path)
		file, err := parser.ParseFile(path)
		if err != nil {
			errs = append(errs, err)
		}
		if file != nil {
			c.AddFile(path, file)
		}
	}
	return errors.Join(errs...)
}

// AddFile registers the units of an already parsed file.
func (c *Catalog) AddFile(path string, file *parser.File) {
	file.Name = path
	c.Files = append(c.Files, file)
	for i := range file.Units {
		u := &file.Units[i]
		u.File = path
		entry := Entry{Unit: u, File: path}
		if first, ok := c.byName[u.Name]; ok {
			if len(c.duplicates[u.Name]) == 0 {
				c.duplicates[u.Name] = []Entry{first}
			}
			c.duplicates[u.Name] = append(c.duplicates[u.Name], entry)
			continue
		}
		c.byName[u.Name] = entry
	}
}

// Units returns every declared unit in file order, including duplicates.
func (c *Catalog) Units() []parser.Unit {
	var units []parser.Unit
	for _, f := range c.Files {
		units = append(units, f.Units...)
	}
	return units
}

func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// Duplicates returns, per repeated name, every declaration of that name.
func (c *Catalog) Duplicates() map[string][]Entry {
	return c.duplicates
}

func (c *Catalog) Len() int { return len(c.byName) }

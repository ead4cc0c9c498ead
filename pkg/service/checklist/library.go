package checklist

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
)

type libraryFile struct {
	Vulnerabilities []vulnerabilityEntry `toml:"vulnerability"`
}

type vulnerabilityEntry struct {
	ID                int64  `toml:"id"`
	Name              string `toml:"name"`
	Category          string `toml:"category"`
	DefaultLikelihood int    `toml:"default_likelihood"`
	MappedThreat      string `toml:"mapped_threat"`
	MappedImpact      string `toml:"mapped_impact"`
	RequiredControl   string `toml:"required_control"`
}

// Library is the vulnerability reference data the cascade draws from. It is
// immutable after construction and safe for concurrent use.
type Library struct {
	ordered []*model.Vulnerability
	byID    map[int64]*model.Vulnerability
}

// NewLibrary returns the built-in vulnerability library.
func NewLibrary() (*Library, error) {
	return ParseLibrary(defaultLibraryTOML)
}

// LoadLibrary reads a vulnerability library from a TOML file.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read library file", goerr.V("path", path))
	}
	lib, err := ParseLibrary(data)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid library file", goerr.V("path", path))
	}
	return lib, nil
}

// ParseLibrary parses and validates library TOML.
func ParseLibrary(data []byte) (*Library, error) {
	var file libraryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse library TOML")
	}
	if len(file.Vulnerabilities) == 0 {
		return nil, goerr.New("library has no vulnerability entries")
	}

	lib := &Library{
		ordered: make([]*model.Vulnerability, 0, len(file.Vulnerabilities)),
		byID:    make(map[int64]*model.Vulnerability, len(file.Vulnerabilities)),
	}

	for _, entry := range file.Vulnerabilities {
		if entry.ID <= 0 {
			return nil, goerr.New("vulnerability id must be positive", goerr.V("id", entry.ID))
		}
		if _, exists := lib.byID[entry.ID]; exists {
			return nil, goerr.New("duplicate vulnerability id", goerr.V("id", entry.ID))
		}
		if entry.Name == "" {
			return nil, goerr.New("vulnerability name is required", goerr.V("id", entry.ID))
		}
		if entry.RequiredControl == "" {
			return nil, goerr.New("required control is required", goerr.V("id", entry.ID))
		}
		if entry.DefaultLikelihood < 1 || entry.DefaultLikelihood > 3 {
			return nil, goerr.New("default likelihood must be within [1,3]",
				goerr.V("id", entry.ID), goerr.V("likelihood", entry.DefaultLikelihood))
		}

		vuln := &model.Vulnerability{
			ID:                entry.ID,
			Name:              entry.Name,
			Category:          entry.Category,
			DefaultLikelihood: entry.DefaultLikelihood,
			MappedThreat:      entry.MappedThreat,
			MappedImpact:      entry.MappedImpact,
			RequiredControl:   entry.RequiredControl,
		}
		lib.ordered = append(lib.ordered, vuln)
		lib.byID[entry.ID] = vuln
	}

	return lib, nil
}

// Get looks up a vulnerability by id.
func (l *Library) Get(id int64) (*model.Vulnerability, bool) {
	vuln, ok := l.byID[id]
	return vuln, ok
}

// All returns the entries in file order.
func (l *Library) All() []*model.Vulnerability {
	return l.ordered
}

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EntityPaths names one file per entity type.
type EntityPaths struct {
	Org       string `yaml:"org"`
	User      string `yaml:"user"`
	Location  string `yaml:"location"`
	UserGroup string `yaml:"usergroup"`
}

// Paths is the batch run's file map. Input fields may be glob patterns; the
// newest match wins. Relative paths resolve against the yaml file's
// directory.
type Paths struct {
	Organization   string      `yaml:"organization"`
	Mapping        string      `yaml:"mapping"`
	Location       string      `yaml:"location"`
	UserInfo       string      `yaml:"user_info"`
	ConfigWorkbook string      `yaml:"config_workbook"`
	Download       EntityPaths `yaml:"download"`
	Output         EntityPaths `yaml:"output"`
}

// LoadPaths reads and validates the paths yaml.
func LoadPaths(path string) (Paths, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Paths{}, errors.Wrapf(err, "read %s", path)
	}

	var p Paths
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Paths{}, errors.Wrapf(err, "parse %s", path)
	}

	required := map[string]string{
		"organization":       p.Organization,
		"mapping":            p.Mapping,
		"location":           p.Location,
		"user_info":          p.UserInfo,
		"config_workbook":    p.ConfigWorkbook,
		"download.org":       p.Download.Org,
		"download.user":      p.Download.User,
		"download.location":  p.Download.Location,
		"download.usergroup": p.Download.UserGroup,
		"output.org":         p.Output.Org,
		"output.user":        p.Output.User,
		"output.location":    p.Output.Location,
		"output.usergroup":   p.Output.UserGroup,
	}
	for name, v := range required {
		if v == "" {
			return Paths{}, fmt.Errorf("%s: missing %s", path, name)
		}
	}

	base := filepath.Dir(path)
	resolve := func(v *string) {
		if !filepath.IsAbs(*v) {
			*v = filepath.Join(base, *v)
		}
	}
	for _, v := range []*string{
		&p.Organization, &p.Mapping, &p.Location, &p.UserInfo, &p.ConfigWorkbook,
		&p.Download.Org, &p.Download.User, &p.Download.Location, &p.Download.UserGroup,
		&p.Output.Org, &p.Output.User, &p.Output.Location, &p.Output.UserGroup,
	} {
		resolve(v)
	}
	return p, nil
}

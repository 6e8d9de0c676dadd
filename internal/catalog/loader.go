package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"careercompass/internal/model"
)

type questionsFile struct {
	Questions []model.Question `yaml:"questions"`
}

type normsFile struct {
	Norms model.Norms `yaml:"norms"`
}

type careersFile struct {
	Careers []model.Career `yaml:"careers"`
}

// Load reads questions.yaml, norms.yaml and careers.yaml from dir and
// builds a validated catalog.
func Load(dir string) (*Catalog, error) {
	var qf questionsFile
	if err := readYAML(filepath.Join(dir, "questions.yaml"), &qf); err != nil {
		return nil, err
	}

	var nf normsFile
	if err := readYAML(filepath.Join(dir, "norms.yaml"), &nf); err != nil {
		return nil, err
	}

	var cf careersFile
	if err := readYAML(filepath.Join(dir, "careers.yaml"), &cf); err != nil {
		return nil, err
	}

	return New(qf.Questions, nf.Norms, cf.Careers)
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrConfiguration, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrConfiguration, path, err)
	}
	return nil
}

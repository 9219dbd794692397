package permission

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/adli-inc/adli/internal/domain/agency"
)

// PolicySet is the YAML form of the role grants:
//
//	roles:
//	  chancellery:
//	    request: [read, register, send_for_resolution]
//	inherits:
//	  directors: [chancellery]
type PolicySet struct {
	Roles    map[string]map[string][]string `yaml:"roles"`
	Inherits map[string][]string            `yaml:"inherits"`
}

func LoadPolicyFile(path string) (*PolicySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return ParsePolicy(data)
}

func ParsePolicy(data []byte) (*PolicySet, error) {
	var set PolicySet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}
	for role := range set.Roles {
		if !agency.Role(role).IsValid() {
			return nil, fmt.Errorf("unknown role %q in policy", role)
		}
	}
	for role, parents := range set.Inherits {
		for _, p := range append([]string{role}, parents...) {
			if !agency.Role(p).IsValid() {
				return nil, fmt.Errorf("unknown role %q in inherits", p)
			}
		}
	}
	return &set, nil
}

// rules flattens the set into sorted (role, resource, action) triples.
func (s *PolicySet) rules() [][]string {
	var out [][]string
	for role, resources := range s.Roles {
		for resource, actions := range resources {
			for _, action := range actions {
				out = append(out, []string{role, resource, action})
			}
		}
	}
	sortTriples(out)
	return out
}

func (s *PolicySet) inheritance() [][]string {
	var out [][]string
	for role, parents := range s.Inherits {
		for _, p := range parents {
			out = append(out, []string{role, p})
		}
	}
	sortTriples(out)
	return out
}

func sortTriples(rows [][]string) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
}

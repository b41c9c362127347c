// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// defaultKeywords is the curated bilingual phrase list used for relevance
// scoring. Matching is case-insensitive substring containment.
var defaultKeywords = []string{
	// Rare diseases, genetics, clinical/biomedical.
	"rare", "rare disease", "orphan", "maladies rares", "maladie rare",
	"genetic", "genetics", "genomic", "genome", "proteomic", "transcriptomic",
	"biobank", "biomedical", "clinical", "clinique", "health", "healthcare",
	"medical", "radiology", "radiomics", "ehrs", "precision medicine",
	"disease", "pathogenicity", "patient", "trial", "therapeutic", "drug",
	"drug discovery", "repurposing", "molecular", "protein", "variant",
	"asthma", "sickle cell", "cystic fibrosis", "muscular dystrophy",

	// HPC / supercomputing.
	"hpc", "supercomputer", "supercomputing", "superordinateur", "gpu",
	"cuda", "nvidia", "cluster", "accelerated computing", "distributed training",

	// Quantum computing.
	"quantum", "quantique", "qubit", "qaoa", "vqe", "annealing",

	// AI methods.
	"graph neural network", "gnn", "transformer", "large language model",
	"llm", "foundation model", "multimodal", "self-supervised", "few-shot",
	"federated learning", "differential privacy", "interpretability",
}

// Scorer counts which keyword phrases occur in a record's searchable text.
type Scorer struct {
	phrases []string
}

// NewScorer builds a Scorer over the built-in phrase list plus any extra
// phrases. Phrases are lowercased and deduplicated; empties are dropped.
func NewScorer(extra ...string) *Scorer {
	seen := make(map[string]bool)
	var phrases []string
	for _, kw := range append(append([]string{}, defaultKeywords...), extra...) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		phrases = append(phrases, kw)
	}
	return &Scorer{phrases: phrases}
}

// Score scans the whole phrase list against text (case-insensitive) and
// returns the sorted set of matched phrases. The relevance score is the
// length of that set; callers store both for transparency.
func (s *Scorer) Score(text string) []string {
	t := strings.ToLower(text)
	var matched []string
	for _, kw := range s.phrases {
		if strings.Contains(t, kw) {
			matched = append(matched, kw)
		}
	}
	sort.Strings(matched)
	return matched
}

// keywordsFile is the on-disk shape of a keyword override file.
type keywordsFile struct {
	Keywords []string `yaml:"keywords"`
}

// LoadKeywordsFile reads extra keyword phrases from a YAML file with a
// top-level "keywords" list.
func LoadKeywordsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keywords file: %w", err)
	}
	var kf keywordsFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parsing keywords file %s: %w", path, err)
	}
	return kf.Keywords, nil
}

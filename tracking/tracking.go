// Package tracking maintains the local ledger of previously imported content
// identifiers and labels. The ledger is advisory only: it feeds exclusion
// hints into generation prompts so the model is not asked to repeat itself.
// It is not a correctness mechanism and is never pruned.
package tracking

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// Ledger is the persisted tracking document.
type Ledger struct {
	IDs    []string `json:"ids"`
	Labels []string `json:"labels"`
}

// Load reads the ledger from path. A missing file yields an empty ledger,
// not an error.
func Load(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("INFO: [Tracking] No ledger at %s, starting empty.", path)
			return &Ledger{IDs: []string{}, Labels: []string{}}, nil
		}
		return nil, fmt.Errorf("failed to read tracking ledger %s: %w", path, err)
	}

	var ledger Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("failed to parse tracking ledger %s: %w", path, err)
	}
	if ledger.IDs == nil {
		ledger.IDs = []string{}
	}
	if ledger.Labels == nil {
		ledger.Labels = []string{}
	}
	return &ledger, nil
}

// Merge appends the given IDs and labels that the ledger has not seen yet.
// Existing entries are never removed or reordered, so the ledger only grows.
func (l *Ledger) Merge(ids, labels []string) {
	seenIDs := make(map[string]struct{}, len(l.IDs))
	for _, id := range l.IDs {
		seenIDs[id] = struct{}{}
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seenIDs[id]; !ok {
			l.IDs = append(l.IDs, id)
			seenIDs[id] = struct{}{}
		}
	}

	seenLabels := make(map[string]struct{}, len(l.Labels))
	for _, label := range l.Labels {
		seenLabels[label] = struct{}{}
	}
	for _, label := range labels {
		if label == "" {
			continue
		}
		if _, ok := seenLabels[label]; !ok {
			l.Labels = append(l.Labels, label)
			seenLabels[label] = struct{}{}
		}
	}
}

// Save rewrites the ledger file in full.
func (l *Ledger) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tracking ledger: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write tracking ledger %s: %w", path, err)
	}
	log.Printf("INFO: [Tracking] Ledger saved to %s (%d IDs, %d labels).", path, len(l.IDs), len(l.Labels))
	return nil
}

// RecentIDs returns up to the n most recently added IDs, for use as an
// exclusion hint in the next generation request.
func (l *Ledger) RecentIDs(n int) []string {
	return tail(l.IDs, n)
}

// RecentLabels returns up to the n most recently added labels.
func (l *Ledger) RecentLabels(n int) []string {
	return tail(l.Labels, n)
}

func tail(list []string, n int) []string {
	if n <= 0 || len(list) == 0 {
		return []string{}
	}
	if len(list) <= n {
		return append([]string{}, list...)
	}
	return append([]string{}, list[len(list)-n:]...)
}

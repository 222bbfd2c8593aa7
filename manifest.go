package chestconv

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Manifest lists the jobs of a batch.
type Manifest struct {
	Jobs []Job `json:"jobs"`
}

// LoadManifest reads a JSON manifest of jobs from path.
func LoadManifest(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("chestconv: failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("chestconv: failed to parse manifest: %w", err)
	}

	seen := make(map[string]bool)
	for i, job := range manifest.Jobs {
		if job.Name == "" {
			return nil, fmt.Errorf("chestconv: manifest job %d: name is required", i)
		}
		if seen[job.Name] {
			return nil, fmt.Errorf("chestconv: manifest job %d: duplicate name %q", i, job.Name)
		}
		seen[job.Name] = true
	}

	return manifest.Jobs, nil
}

// Output suffixes skipped by DiscoverJobs.
var outputSuffixes = []string{"_left", "_right", "_preview"}

// DiscoverJobs scans folder for chest textures. name.png yields a single job,
// name_double.png a double job, and both together a KindBoth job. Files that
// look like converter outputs are ignored. Jobs are sorted by name.
func DiscoverJobs(folder string) ([]Job, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("chestconv: failed to scan %q: %w", folder, err)
	}

	single := make(map[string]bool)
	double := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name, ok := strings.CutSuffix(entry.Name(), ".png")
		if !ok || name == "" {
			continue
		}

		if base, ok := strings.CutSuffix(name, "_double"); ok {
			if base != "" {
				double[base] = true
			}
			continue
		}

		if isOutput(name) {
			continue
		}
		single[name] = true
	}

	var jobs []Job
	for name := range single {
		kind := KindSingle
		if double[name] {
			kind = KindBoth
		}
		jobs = append(jobs, Job{Name: name, Kind: kind})
	}
	for name := range double {
		if !single[name] {
			jobs = append(jobs, Job{Name: name, Kind: KindDouble})
		}
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].Name < jobs[j].Name
	})

	return jobs, nil
}

func isOutput(name string) bool {
	for _, suffix := range outputSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// UniqueJobs drops every job whose name was already seen, keeping the first.
// Two jobs with the same name would write the same outputs concurrently.
func UniqueJobs(jobs []Job) []Job {
	seen := make(map[string]bool)
	unique := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		if seen[job.Name] {
			continue
		}
		seen[job.Name] = true
		unique = append(unique, job)
	}
	return unique
}

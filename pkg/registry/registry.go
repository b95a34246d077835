// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse activity registry %s: %w", path, err)
	}
	return &reg, nil
}

// Find returns the activity bound to taskType.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// TimeoutDuration parses Timeout ("30s", "2m"). An empty timeout is zero.
func (a *Activity) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0, fmt.Errorf("activity %s: invalid timeout %q: %w", a.ID, a.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("activity %s: negative timeout %q", a.ID, a.Timeout)
	}
	return d, nil
}

// Validate checks the registry is internally consistent and that every task
// type in served has an activity entry.
func (r *ActivityRegistry) Validate(served ...string) error {
	var problems []string
	seen := make(map[string]bool, len(r.Activities))

	for i := range r.Activities {
		a := &r.Activities[i]
		if a.TaskType == "" {
			problems = append(problems, fmt.Sprintf("activity %q has no taskType", a.ID))
			continue
		}
		if seen[a.TaskType] {
			problems = append(problems, fmt.Sprintf("taskType %q registered twice", a.TaskType))
		}
		seen[a.TaskType] = true

		if _, err := a.TimeoutDuration(); err != nil {
			problems = append(problems, err.Error())
		}
		if a.Retries < 0 {
			problems = append(problems, fmt.Sprintf("activity %s: negative retries", a.ID))
		}
	}

	for _, taskType := range served {
		if !seen[taskType] {
			problems = append(problems, fmt.Sprintf("taskType %q is not registered", taskType))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("activity registry invalid: %s", strings.Join(problems, "; "))
	}
	return nil
}

// SaveRegistry writes reg as indented JSON, creating the parent directory.
func SaveRegistry(reg *ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Add appends a, rejecting duplicate ids and task types.
func (r *ActivityRegistry) Add(a Activity) error {
	for _, existing := range r.Activities {
		if existing.ID == a.ID {
			return fmt.Errorf("activity with ID %s already exists", a.ID)
		}
		if existing.TaskType == a.TaskType {
			return fmt.Errorf("taskType %s already bound to activity %s", a.TaskType, existing.ID)
		}
	}
	r.Activities = append(r.Activities, a)
	return nil
}

// Update sets one named field of the activity with the given id.
func (r *ActivityRegistry) Update(id, field, value string) error {
	for i := range r.Activities {
		a := &r.Activities[i]
		if a.ID != id {
			continue
		}
		switch field {
		case "version":
			a.Version = value
		case "displayName":
			a.DisplayName = value
		case "description":
			a.Description = value
		case "category":
			a.Category = value
		case "taskType":
			a.TaskType = value
		case "timeout":
			if _, err := time.ParseDuration(value); err != nil {
				return fmt.Errorf("invalid timeout value: %w", err)
			}
			a.Timeout = value
		case "retries":
			retries, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid retries value: %w", err)
			}
			a.Retries = retries
		default:
			return fmt.Errorf("unknown field: %s", field)
		}
		return nil
	}
	return fmt.Errorf("activity with ID %s not found", id)
}

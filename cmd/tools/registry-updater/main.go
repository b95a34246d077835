// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"tour-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activities.json"

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "add":
		err = runAdd(os.Args[2:])
	case "update":
		err = runUpdate(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "help":
		help()
	default:
		help()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	id := fs.String("id", "", "Activity ID (e.g., recommend-tour-packages)")
	displayName := fs.String("displayName", "", "Display Name (e.g., Recommend Tour Packages)")
	description := fs.String("description", "", "Description")
	category := fs.String("category", "tour", "Category")
	taskType := fs.String("taskType", "", "Zeebe task type; defaults to the id")
	version := fs.String("version", "1.0.0", "Version")
	timeout := fs.String("timeout", "30s", "Job timeout")
	retries := fs.Int("retries", 3, "Retries")
	fs.Parse(args)

	if *id == "" || *displayName == "" || *description == "" {
		fs.Usage()
		return fmt.Errorf("id, displayName and description are required for add")
	}
	if *taskType == "" {
		*taskType = *id
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.ActivityRegistry{Version: "1.0.0"}
	}

	activity := registry.Activity{
		ID:           *id,
		DisplayName:  *displayName,
		Description:  *description,
		Category:     *category,
		Version:      *version,
		TaskType:     *taskType,
		InputSchema:  map[string]interface{}{},
		OutputSchema: map[string]interface{}{},
		ErrorCodes:   []string{},
		Timeout:      *timeout,
		Retries:      *retries,
		Workflows:    []string{},
		Tags:         []string{},
	}
	if err := reg.Add(activity); err != nil {
		return err
	}
	if err := save(reg, *path); err != nil {
		return err
	}
	fmt.Printf("Added activity: %s\n", *id)
	return nil
}

func runUpdate(args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	id := fs.String("id", "", "Activity ID to update")
	field := fs.String("field", "", "Field to update (version, timeout, retries, ...)")
	value := fs.String("value", "", "New value for the field")
	fs.Parse(args)

	if *id == "" || *field == "" || *value == "" {
		fs.Usage()
		return fmt.Errorf("id, field and value are required for update")
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Update(*id, *field, *value); err != nil {
		return err
	}
	if err := save(reg, *path); err != nil {
		return err
	}
	fmt.Printf("Updated activity %s, field %s to %s\n", *id, *field, *value)
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	require := fs.String("require", "", "Comma-separated task types that must be registered")
	fs.Parse(args)

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	var served []string
	for _, t := range strings.Split(*require, ",") {
		if t = strings.TrimSpace(t); t != "" {
			served = append(served, t)
		}
	}
	if err := reg.Validate(served...); err != nil {
		return err
	}

	fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	fs.Parse(args)

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	for _, a := range reg.Activities {
		fmt.Printf("%-30s %-8s timeout=%-6s retries=%d\n", a.TaskType, a.Version, a.Timeout, a.Retries)
	}
	return nil
}

func save(reg *registry.ActivityRegistry, path string) error {
	reg.LastUpdated = time.Now().Format("2006-01-02")
	return registry.SaveRegistry(reg, path)
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  add       Add a new activity to the registry
  update    Update an existing activity's field
  validate  Validate the registry file
  list      Print the registered task types
  help      Show this help message

Examples:
  registry-updater add -id filter-tour-packages -displayName "Filter Tour Packages" -description "Filters and sorts the catalog"
  registry-updater update -id filter-tour-packages -field timeout -value 45s
  registry-updater validate -require normalize-trip-preferences,filter-tour-packages,recommend-tour-packages

Use 'registry-updater <command> -h' for more information about a command.
`)
}

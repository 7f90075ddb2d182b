package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File names searched by LoadDir, in order of preference
var (
	moduleFileNames = []string{"modules.yaml", "modules.yml"}
	bundleFileNames = []string{"bundles.yaml", "bundles.yml"}
)

// ParseModuleConfig decodes a module catalog document
func ParseModuleConfig(data []byte) (ModuleConfig, error) {
	var cfg ModuleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ModuleConfig{}, fmt.Errorf("failed to parse module config: %w", err)
	}
	return cfg, nil
}

// ParseBundleConfig decodes a bundle catalog document
func ParseBundleConfig(data []byte) (BundleConfig, error) {
	var cfg BundleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BundleConfig{}, fmt.Errorf("failed to parse bundle config: %w", err)
	}
	return cfg, nil
}

// LoadModuleConfig reads a module catalog document from a file
func LoadModuleConfig(path string) (ModuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ModuleConfig{}, fmt.Errorf("failed to read module config: %w", err)
	}
	return ParseModuleConfig(data)
}

// LoadBundleConfig reads a bundle catalog document from a file
func LoadBundleConfig(path string) (BundleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BundleConfig{}, fmt.Errorf("failed to read bundle config: %w", err)
	}
	return ParseBundleConfig(data)
}

// LoadFiles reads both documents and builds a catalog from them
func LoadFiles(modulesPath, bundlesPath string) (*Catalog, error) {
	modules, err := LoadModuleConfig(modulesPath)
	if err != nil {
		return nil, err
	}
	bundles, err := LoadBundleConfig(bundlesPath)
	if err != nil {
		return nil, err
	}
	return New(modules, bundles)
}

// FindFiles locates the module and bundle documents inside dir
func FindFiles(dir string) (modulesPath, bundlesPath string, err error) {
	modulesPath = findFirst(dir, moduleFileNames)
	if modulesPath == "" {
		return "", "", fmt.Errorf("no module catalog (%v) found in %s", moduleFileNames, dir)
	}
	bundlesPath = findFirst(dir, bundleFileNames)
	if bundlesPath == "" {
		return "", "", fmt.Errorf("no bundle catalog (%v) found in %s", bundleFileNames, dir)
	}
	return modulesPath, bundlesPath, nil
}

// LoadDir builds a catalog from the modules/bundles documents in dir
func LoadDir(dir string) (*Catalog, error) {
	modulesPath, bundlesPath, err := FindFiles(dir)
	if err != nil {
		return nil, err
	}
	return LoadFiles(modulesPath, bundlesPath)
}

// SaveConfig writes both documents into dir as modules.yaml and bundles.yaml
func SaveConfig(dir string, modules ModuleConfig, bundles BundleConfig) error {
	data, err := yaml.Marshal(modules)
	if err != nil {
		return fmt.Errorf("failed to marshal module config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, moduleFileNames[0]), data, 0644); err != nil {
		return err
	}

	data, err = yaml.Marshal(bundles)
	if err != nil {
		return fmt.Errorf("failed to marshal bundle config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, bundleFileNames[0]), data, 0644)
}

func findFirst(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

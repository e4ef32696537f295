// Package config loads zlayout's tuning parameters from a YAML file or
// environment variables, the same layered approach the teacher's
// internal/config package uses, scaled down to the knobs a spatial index
// actually needs.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable parameter exposed to callers building an
// index via internal/factory.
type Config struct {
	Quadtree    QuadtreeConfig    `yaml:"quadtree"`
	RTree       RTreeConfig       `yaml:"rtree"`
	Hierarchy   HierarchyConfig   `yaml:"hierarchy"`
	WorkerPool  WorkerPoolConfig  `yaml:"worker_pool"`
	Geometry    GeometryConfig    `yaml:"geometry"`
}

// QuadtreeConfig controls default quadtree shape.
type QuadtreeConfig struct {
	Capacity int `yaml:"capacity"`
	MaxDepth int `yaml:"max_depth"`
}

// RTreeConfig is reserved for future tuning; MaxEntries/MinEntries are
// fixed constants per spec (internal/rtree.MaxEntries/MinEntries) but are
// surfaced here so a future milestone can make them configurable without
// changing the Config shape.
type RTreeConfig struct {
	MaxEntries int `yaml:"max_entries"`
	MinEntries int `yaml:"min_entries"`
}

// HierarchyConfig controls internal/hierarchical's block-splitting policy.
type HierarchyConfig struct {
	MaxObjectsPerBlock int `yaml:"max_objects_per_block"`
	MaxHierarchyLevels int `yaml:"max_hierarchy_levels"`
	QueryCacheSize     int64 `yaml:"query_cache_size"`
}

// WorkerPoolConfig controls internal/workerpool sizing.
type WorkerPoolConfig struct {
	Size            int  `yaml:"size"`
	ParallelEnabled bool `yaml:"parallel_enabled"`
}

// GeometryConfig controls numeric tolerances used by internal/geometry.
type GeometryConfig struct {
	Epsilon float64 `yaml:"epsilon"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Quadtree: QuadtreeConfig{
			Capacity: 10,
			MaxDepth: 8,
		},
		RTree: RTreeConfig{
			MaxEntries: 16,
			MinEntries: 4,
		},
		Hierarchy: HierarchyConfig{
			MaxObjectsPerBlock: 100,
			MaxHierarchyLevels: 8,
			QueryCacheSize:     1 << 20, // ristretto counter budget, not bytes
		},
		WorkerPool: WorkerPoolConfig{
			Size:            0, // 0 => runtime.NumCPU()
			ParallelEnabled: true,
		},
		Geometry: GeometryConfig{
			Epsilon: 1e-10,
		},
	}
}

// Load builds a Config starting from Default, layering a YAML file (if
// path is non-empty and exists) and then environment variables on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cfg.loadFromFile(path); err != nil {
				return nil, fmt.Errorf("zlayout: loading config file: %w", err)
			}
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("zlayout: invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing YAML config file: %w", err)
	}
	return nil
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("ZLAYOUT_QUADTREE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Quadtree.Capacity = n
		}
	}
	if v := os.Getenv("ZLAYOUT_QUADTREE_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Quadtree.MaxDepth = n
		}
	}
	if v := os.Getenv("ZLAYOUT_MAX_OBJECTS_PER_BLOCK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Hierarchy.MaxObjectsPerBlock = n
		}
	}
	if v := os.Getenv("ZLAYOUT_MAX_HIERARCHY_LEVELS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Hierarchy.MaxHierarchyLevels = n
		}
	}
	if v := os.Getenv("ZLAYOUT_WORKER_POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.WorkerPool.Size = n
		}
	}
	if v := os.Getenv("ZLAYOUT_PARALLEL_ENABLED"); v != "" {
		c.WorkerPool.ParallelEnabled = v == "true"
	}
	if v := os.Getenv("ZLAYOUT_GEOMETRY_EPSILON"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Geometry.Epsilon = f
		}
	}
}

// Validate rejects configurations that would make the index structurally
// unusable.
func (c *Config) Validate() error {
	if c.Quadtree.Capacity <= 0 {
		return fmt.Errorf("quadtree.capacity must be positive, got %d", c.Quadtree.Capacity)
	}
	if c.Quadtree.MaxDepth <= 0 {
		return fmt.Errorf("quadtree.max_depth must be positive, got %d", c.Quadtree.MaxDepth)
	}
	if c.Hierarchy.MaxObjectsPerBlock <= 0 {
		return fmt.Errorf("hierarchy.max_objects_per_block must be positive, got %d", c.Hierarchy.MaxObjectsPerBlock)
	}
	if c.Hierarchy.MaxHierarchyLevels <= 0 {
		return fmt.Errorf("hierarchy.max_hierarchy_levels must be positive, got %d", c.Hierarchy.MaxHierarchyLevels)
	}
	if c.WorkerPool.Size < 0 {
		return fmt.Errorf("worker_pool.size must not be negative, got %d", c.WorkerPool.Size)
	}
	if c.Geometry.Epsilon <= 0 {
		return fmt.Errorf("geometry.epsilon must be positive, got %g", c.Geometry.Epsilon)
	}
	return nil
}

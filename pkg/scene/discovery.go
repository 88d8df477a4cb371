package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

var logger = log.New("scene")

// Scene sources
const (
	TypeBuiltin = "builtin"
	TypeYAML    = "yaml"
)

// DefaultScenesDir is searched for scene files when no directory is given
const DefaultScenesDir = "scenes"

// DefaultGridSeed seeds the material draw of the built-in grid scene
const DefaultGridSeed = 1

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Name used to select the scene
	DisplayName string // Human readable name
	Description string // Optional description
	Type        string // "builtin" or "yaml"
	FilePath    string // Path to the scene file (yaml type only)
}

type builtinScene struct {
	info  SceneInfo
	build func() *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "still-life",
			DisplayName: "Still Life",
			Description: "Four diffuse spheres on a sandy ground sphere",
			Type:        TypeBuiltin,
		},
		build: NewStillLifeScene,
	},
	{
		info: SceneInfo{
			ID:          "grid",
			DisplayName: "Grid",
			Description: "4x4x4 grid of metal, diffuse, emissive and glass spheres",
			Type:        TypeBuiltin,
		},
		build: func() *Scene { return NewGridScene(DefaultGridSeed) },
	},
}

// ListBuiltinScenes returns the scenes compiled into the binary
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		scenes = append(scenes, b.info)
	}
	return scenes
}

// ListFileScenes scans dir for *.yaml and *.yml scene files. A missing
// directory yields an empty list; unreadable files are logged and skipped.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := []SceneInfo{}
	for _, path := range files {
		info, err := ReadSceneInfo(path)
		if err != nil {
			logger.Warningf("skipping scene file: %v", err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ReadSceneInfo extracts the name and description of a scene file without
// building it
func ReadSceneInfo(path string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:          path,
		DisplayName: titleCase(base),
		Type:        TypeYAML,
		FilePath:    path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return info, fmt.Errorf("failed to read scene file: %w", err)
	}

	var header struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("%s: failed to parse scene header: %w", path, err)
	}
	if header.Name != "" {
		info.DisplayName = header.Name
	}
	info.Description = header.Description
	return info, nil
}

// ListAllScenes returns built-in scenes followed by the scene files found in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	files, err := ListFileScenes(dir)
	if err != nil {
		return nil, err
	}
	return append(ListBuiltinScenes(), files...), nil
}

// Lookup resolves a built-in scene name or a path to a scene file
func Lookup(nameOrPath string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == nameOrPath {
			return b.build(), nil
		}
	}

	if _, err := os.Stat(nameOrPath); err == nil {
		return Load(nameOrPath)
	}

	ids := make([]string, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		ids = append(ids, b.info.ID)
	}
	return nil, fmt.Errorf("unknown scene %q: not a built-in scene (%s) or a readable file", nameOrPath, strings.Join(ids, ", "))
}

// titleCase converts a filename-style string to title case
// e.g., "still-life" -> "Still Life"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}

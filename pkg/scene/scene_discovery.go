package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier used on the command line
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Lights      bool   `json:"lights"`      // Whether emitters are importance sampled
}

// BuildFunc constructs a scene. sampler drives any randomised placement or
// noise so that scenes are reproducible for a given seed.
type BuildFunc func(sampler core.Sampler, logger core.Logger) *Scene

type registeredScene struct {
	info  SceneInfo
	build BuildFunc
}

var registry = map[string]registeredScene{
	"cornell": {
		info: SceneInfo{ID: "cornell", DisplayName: "Cornell Box", Group: "Cornell",
			Description: "Cornell box with a rotated box and a glass sphere", Lights: true},
		build: func(core.Sampler, core.Logger) *Scene { return NewCornellScene() },
	},
	"cornell-smoke": {
		info: SceneInfo{ID: "cornell-smoke", DisplayName: "Cornell Smoke", Group: "Cornell",
			Description: "Cornell box with black and white smoke blocks", Lights: true},
		build: func(core.Sampler, core.Logger) *Scene { return NewCornellSmokeScene() },
	},
	"spheres": {
		info: SceneInfo{ID: "spheres", DisplayName: "Bouncing Spheres", Group: "Spheres",
			Description: "Random sphere field with motion blur and depth of field"},
		build: func(s core.Sampler, _ core.Logger) *Scene { return NewBouncingSpheresScene(s) },
	},
	"checkered-spheres": {
		info: SceneInfo{ID: "checkered-spheres", DisplayName: "Checkered Spheres", Group: "Spheres",
			Description: "Two spheres sharing a solid checker texture"},
		build: func(core.Sampler, core.Logger) *Scene { return NewCheckeredSpheresScene() },
	},
	"perlin": {
		info: SceneInfo{ID: "perlin", DisplayName: "Perlin Spheres", Group: "Spheres",
			Description: "Marble texture from Perlin turbulence"},
		build: func(s core.Sampler, _ core.Logger) *Scene { return NewPerlinSpheresScene(s) },
	},
	"earth": {
		info: SceneInfo{ID: "earth", DisplayName: "Earth", Group: "Spheres",
			Description: "Globe with an image texture (earthmap.jpg)"},
		build: func(_ core.Sampler, l core.Logger) *Scene { return NewEarthScene(l) },
	},
	"quads": {
		info: SceneInfo{ID: "quads", DisplayName: "Quads", Group: "Primitives",
			Description: "Five colored quads around the camera axis"},
		build: func(core.Sampler, core.Logger) *Scene { return NewQuadsScene() },
	},
	"simple-light": {
		info: SceneInfo{ID: "simple-light", DisplayName: "Simple Light", Group: "Lights",
			Description: "Marble spheres lit by an emissive quad and sphere", Lights: true},
		build: func(s core.Sampler, _ core.Logger) *Scene { return NewSimpleLightScene(s) },
	},
	"final": {
		info: SceneInfo{ID: "final", DisplayName: "Final Scene", Group: "Showcase",
			Description: "Boxes, media, textures, motion blur and nested BVHs", Lights: true},
		build: NewFinalScene,
	},
}

// Names returns the sorted identifiers of all built-in scenes
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenes returns metadata for all built-in scenes, sorted by group then ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, entry := range registry {
		scenes = append(scenes, entry.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		if scenes[i].Group != scenes[j].Group {
			return scenes[i].Group < scenes[j].Group
		}
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Lookup returns the metadata for a scene identifier
func Lookup(name string) (SceneInfo, error) {
	entry, ok := registry[name]
	if !ok {
		return SceneInfo{}, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return entry.info, nil
}

// Build constructs the named scene with a sampler seeded from seed
func Build(name string, seed int64, logger core.Logger) (*Scene, error) {
	entry, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return entry.build(core.NewSeededSampler(seed), logger), nil
}

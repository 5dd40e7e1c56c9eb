package codegen

import (
	"github.com/kvlift/kvlift/frontend"
	"github.com/kvlift/kvlift/registry"
)

var manifestKinds = map[string]registry.PropertyKind{
	"numeric": registry.Numeric,
	"string":  registry.String,
	"boolean": registry.Boolean,
	"list":    registry.List,
	"dict":    registry.Dict,
	"color":   registry.Color,
	"object":  registry.Object,
}

// OptionsFromManifest builds generation options from a project manifest.
// Unrecognized property kinds fall back to object.
func OptionsFromManifest(kt frontend.KvliftToml) Options {
	opts := Options{UUIDNames: kt.UUIDNames}
	if len(kt.Classes) == 0 {
		return opts
	}
	opts.ClassInfo = make(map[string]ClassInfo, len(kt.Classes))
	for name, tc := range kt.Classes {
		info := ClassInfo{Bases: tc.Bases}
		if len(tc.Properties) > 0 {
			info.Properties = make(map[string]registry.PropertyKind, len(tc.Properties))
			for prop, kind := range tc.Properties {
				info.Properties[prop] = manifestKinds[kind]
			}
		}
		opts.ClassInfo[name] = info
	}
	return opts
}

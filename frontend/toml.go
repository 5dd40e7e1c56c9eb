package frontend

import (
	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// KvliftToml is the optional project manifest. It supplements the widget
// registry with project-defined classes and fixes generation options that
// would otherwise come from flags.
type KvliftToml struct {
	Name    string `toml:"name" validate:"required"`
	Version string `toml:"version"`

	// UUIDNames switches generated variable names to random suffixes.
	UUIDNames bool `toml:"uuid_names"`

	// Classes declares project classes unknown to the registry.
	Classes map[string]TomlClass `toml:"classes" validate:"dive"`
}

// TomlClass describes one project-defined class: its Python bases and any
// extra properties with their kinds (numeric, string, boolean, list, dict,
// color, object).
type TomlClass struct {
	Bases      []string          `toml:"bases"`
	Properties map[string]string `toml:"properties" validate:"dive,oneof=numeric string boolean list dict color object"`
}

func HandleKvliftToml(tomlContent string) (KvliftToml, error) {
	var kt KvliftToml
	_, err := toml.Decode(tomlContent, &kt)
	if err != nil {
		return kt, err
	}
	validate := validator.New()
	if err := validate.Struct(kt); err != nil {
		return kt, err
	}
	return kt, nil
}

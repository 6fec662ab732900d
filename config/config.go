// Copyright (C) 2024 Vyra Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config loads the optional vyra.yaml file that overrides the
// AI-rewrite front end's environment variables, the way the teacher
// reads its own structured YAML config with sigs.k8s.io/yaml rather
// than hand-rolling a parser.
package config

import (
	"os"

	"sigs.k8s.io/yaml"
)

// AI holds the five settings spec.md §4.6 names for the optional
// rewrite front end.
type AI struct {
	Endpoint       string `json:"endpoint"`
	Model          string `json:"model"`
	APIKey         string `json:"apiKey"`
	Provider       string `json:"provider"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// Config is the shape of vyra.yaml. Its only defined section today is
// AI; unknown keys are ignored rather than rejected, matching yaml's
// default unmarshal behavior.
type Config struct {
	AI AI `json:"ai"`
}

// Load reads path (typically "vyra.yaml") and returns its parsed
// contents. A missing file is not an error: it returns a zero Config,
// so the AI-rewrite front end falls back entirely to environment
// variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

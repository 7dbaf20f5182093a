/*
 * config.go, part of molkit.
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosdotutadotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the engine locations and defaults. Every field has a
// sane zero-configuration default, so the file is optional.
type Config struct {
	XTB         string `yaml:"xtb"`
	Gulp        string `yaml:"gulp"`
	GulpLibrary string `yaml:"gulp_library"`
	Obabel      string `yaml:"obabel"`
	Obenergy    string `yaml:"obenergy"`
	Schrodinger string `yaml:"schrodinger"`
	NCPU        int    `yaml:"ncpu"`
}

// LoadConfig reads a YAML configuration file. An empty path returns
// the defaults.
func LoadConfig(path string) (*Config, error) {
	errid := "LoadConfig"
	c := &Config{
		XTB:         "xtb",
		Gulp:        "gulp",
		GulpLibrary: "uff4mof",
		Obabel:      "obabel",
		Obenergy:    "obenergy",
		Schrodinger: os.Getenv("SCHRODINGER"),
	}
	if path == "" {
		return c, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if err := yaml.Unmarshal(content, c); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errid, path, err)
	}
	return c, nil
}

/*
 * config_test.go, part of molkit.
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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "xtb", c.XTB)
	assert.Equal(t, "gulp", c.Gulp)
	assert.Equal(t, "uff4mof", c.GulpLibrary)
	assert.Equal(t, "obenergy", c.Obenergy)
}

func TestLoadConfigFile(t *testing.T) {
	path := t.TempDir() + "/molkit.yaml"
	content := "xtb: /opt/xtb/bin/xtb\nncpu: 4\ngulp_library: uff\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/xtb/bin/xtb", c.XTB)
	assert.Equal(t, 4, c.NCPU)
	assert.Equal(t, "uff", c.GulpLibrary)
	//unset keys keep their defaults
	assert.Equal(t, "obabel", c.Obabel)

	_, err = LoadConfig(t.TempDir() + "/absent.yaml")
	assert.Error(t, err)
}

func TestJobName(t *testing.T) {
	assert.Equal(t, "methanol", jobName("/tmp/run/methanol.xyz"))
	assert.Equal(t, "methanol", jobName("methanol.mae"))
	assert.Equal(t, "methanol", jobName("methanol"))
}

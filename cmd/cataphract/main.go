package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/cataphract-engine/cataphract/uci"
)

/*
Cataphract Copyright (C) 2026
This program is free software: you can redistribute it and/or modify it under the terms of the GNU General Public License as published by the Free Software Foundation, either version 3 of the License, or (at your option) any later version.
This program is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License for more details.
You should have received a copy of the GNU General Public License along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

const (
	name   = "Cataphract"
	author = "cataphract contributors"
)

var versionName = "dev"

func main() {
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	logger.Info().
		Str("version", versionName).
		Str("go", runtime.Version()).
		Int("numCPU", runtime.NumCPU()).
		Msg("starting engine")

	protocol := uci.New(name, author, versionName, logger)
	uci.RunCli(logger, protocol)
}

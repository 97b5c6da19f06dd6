// Package config loads the settings of the variant tool from the environment, and from an
// optional .env file in the data directory.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pkg/profile"
	"go-simpler.org/env"

	"variant.mleku.dev/chk"
	"variant.mleku.dev/config/keyvalue"
	envfile "variant.mleku.dev/env"
	"variant.mleku.dev/log"
)

// C is the configuration for the variant tool.
type C struct {
	AppName    string `env:"APP_NAME" default:"variant"`
	DataDir    string `env:"DATA_DIR" usage:"storage location for the value store and profiles, defaults to $XDG_DATA_HOME/<APP_NAME>"`
	LogLevel   string `env:"LOG_LEVEL" default:"info" usage:"log level: fatal error warn info debug trace"`
	DBLogLevel string `env:"DB_LOG_LEVEL" default:"warn" usage:"log level of the value store"`
	Indent     string `env:"INDENT" usage:"indentation for JSON output, empty renders compact JSON"`
	MaxDepth   int    `env:"MAX_DEPTH" default:"1000" usage:"deepest nesting of arrays and objects accepted when parsing"`
	Pprof      bool   `env:"PPROF" default:"false" usage:"write a CPU profile into the data directory"`
}

// New loads the configuration from the process environment, then reloads it with the .env
// file in the data directory, if there is one, layered over the process environment.
func New() (c *C, err error) {
	c = &C{}
	if err = env.Load(c, &env.Options{SliceSep: ","}); chk.T(err) {
		return
	}
	c.setDefaults()
	envPath := filepath.Join(c.DataDir, ".env")
	if _, err = os.Stat(envPath); err != nil {
		// no file is not an error
		err = nil
		return
	}
	var e envfile.Env
	if e, err = envfile.GetEnv(envPath); chk.E(err) {
		return
	}
	log.D.F("loading config from %s", envPath)
	return Load(envfile.Layer{Env: e, Under: envfile.Process{}})
}

// Load reads the configuration from src only, applying defaults for missing keys.
func Load(src env.Source) (c *C, err error) {
	c = &C{}
	if err = env.Load(c, &env.Options{SliceSep: ",", Source: src}); chk.E(err) {
		return
	}
	c.setDefaults()
	return
}

func (c *C) setDefaults() {
	if c.DataDir == "" {
		c.DataDir = filepath.Join(xdg.DataHome, c.AppName)
	}
	if c.MaxDepth < 1 {
		c.MaxDepth = 1000
	}
}

// StorePath is the directory of the value store.
func (c *C) StorePath() string { return filepath.Join(c.DataDir, "store") }

// StartProfile begins CPU profiling into the data directory when Pprof is set. The
// returned function stops it and is safe to call either way.
func (c *C) StartProfile() (stop func()) {
	if !c.Pprof {
		return func() {}
	}
	p := profile.Start(profile.CPUProfile, profile.ProfilePath(c.DataDir),
		profile.NoShutdownHook, profile.Quiet)
	log.I.F("writing CPU profile to %s", c.DataDir)
	return p.Stop
}

// PrintEnv writes the configuration as a shell script that can be edited and saved as the
// .env file.
func (c *C) PrintEnv(w io.Writer) { keyvalue.PrintEnv(*c, w) }

// PrintHelp writes the environment variables that configure the tool.
func (c *C) PrintHelp(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\nenvironment variables that configure %s\n\n", c.AppName)
	env.Usage(c, w, nil)
	_, _ = fmt.Fprintf(w, "\nvariables are also read from %s\n\n",
		filepath.Join(c.DataDir, ".env"))
}

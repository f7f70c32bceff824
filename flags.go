package main

import (
	"lyrical-api/config"

	"github.com/spf13/pflag"
)

// cliFlags holds the command-line overrides; zero values mean "not given"
type cliFlags struct {
	port     int
	debug    bool
	portSet  bool
	debugSet bool
}

func parseFlags(args []string) (cliFlags, error) {
	fs := pflag.NewFlagSet("lyrical-api", pflag.ContinueOnError)

	var f cliFlags
	fs.IntVarP(&f.port, "port", "p", 8000, "port to listen on")
	fs.BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return f, err
	}

	f.portSet = fs.Changed("port")
	f.debugSet = fs.Changed("debug")
	return f, nil
}

// apply overrides conf with the flags that were given explicitly
func (f cliFlags) apply(conf *config.Config) {
	if f.portSet {
		conf.Server.Port = f.port
	}
	if f.debugSet {
		conf.Server.Debug = f.debug
	}
}

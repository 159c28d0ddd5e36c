// Package flagx lets several configuration stages read only the command-line
// flags they own, so the JSON loader, the .env loader and the main flag set do
// not reject each other's flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps the flags listed in owned (and their values) and drops
// everything else. Both "-f value" and "-f=value" forms are understood; a
// following argument is taken as the value only when it does not start with '-'.
func FilterArgs(args []string, owned []string) []string {
	known := make(map[string]struct{}, len(owned))
	for _, f := range owned {
		known[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if _, ok := known[name]; ok {
				out = append(out, arg)
			}
			continue
		}

		if _, ok := known[arg]; !ok {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// lookupString parses a single string flag (with an optional short alias)
// out of os.Args and returns its value or def.
func lookupString(long, short, def, usage string) string {
	names := []string{"-" + long, "--" + long}
	if short != "" {
		names = append(names, "-"+short, "--"+short)
	}
	args := FilterArgs(os.Args[1:], names)

	value := def
	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&value, long, def, usage)
	if short != "" {
		fs.StringVar(&value, short, def, usage)
	}
	_ = fs.Parse(args)
	return value
}

// ConfigFileFlag returns the JSON config path given with -c or -config,
// or an empty string.
func ConfigFileFlag() string {
	return lookupString("config", "c", "", "path to JSON config file")
}

// EnvFileFlag returns the dotenv path given with -env, defaulting to ".env".
func EnvFileFlag() string {
	return lookupString("env", "", ".env", "path to .env file")
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

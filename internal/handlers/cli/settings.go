package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every setting read from the environment,
// e.g. EXTENSION_SCRIPTS_LOG_LEVEL.
const EnvPrefix = "EXTENSION_SCRIPTS"

// Setting keys. Each is also the name of a root flag.
const (
	keyLogLevel = "log-level"
	keyCwd      = "cwd"
	keyTag      = "tag"
	keyList     = "list"
)

// settings is the flag and environment view the root command runs with.
type settings struct {
	LogLevel string
	Cwd      string
	Tag      string
	List     bool
}

// loadSettings overlays environment values on every flag the operator did
// not set on the command line, then reads the result.
func loadSettings(cmd *cobra.Command) (settings, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	fs := cmd.Flags()
	if err := v.BindPFlags(fs); err != nil {
		return settings{}, err
	}

	var setErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || setErr != nil || !v.IsSet(f.Name) {
			return
		}
		if val := v.GetString(f.Name); val != f.Value.String() {
			setErr = fs.Set(f.Name, val)
		}
	})
	if setErr != nil {
		return settings{}, setErr
	}

	return settings{
		LogLevel: v.GetString(keyLogLevel),
		Cwd:      v.GetString(keyCwd),
		Tag:      v.GetString(keyTag),
		List:     v.GetBool(keyList),
	}, nil
}

package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultEnvFile is read when ENV_FILE is not set.
const DefaultEnvFile = ".env"

// LoadEnvFile exports the keys of a dotenv file into the process environment
// so the env-backed flags see them. Variables that are already set win. A
// missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	// viper lower-cases keys; environment variables here are upper case.
	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, ok := os.LookupEnv(name); ok {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return fmt.Errorf("exporting %s: %w", name, err)
		}
	}

	return nil
}

package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"team-tracker-go/pkg/logger"
)

const dotenvFilename = ".env"

// loadDotEnv merges the nearest .env file into v. Real environment variables keep precedence
// because v reads them through AutomaticEnv.
func loadDotEnv(v *viper.Viper, log logger.Logger) error {
	path, err := findDotEnv(dotenvFilename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	log.Info("dotenv: loaded variables", "count", len(v.AllKeys()), "path", path)
	return nil
}

func findDotEnv(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

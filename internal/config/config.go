// Reads optional server tuning data from a JSON file (by default cxls.json,
// resolved against the working directory). Absence of the file is not an error: every
// field has the default the rest of the engine is built against.
package config

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"os"

	"github.com/pkg/errors"
)

// Config holds the tunables the rest of the core engine treats as
// constants unless overridden: the per-scan USR-scan emission cap,
// the project registry's slot count, and the overlay store's initial
// buffer capacity.
type Config struct {
	MaxUSRMatches    int `json:"maxUsrMatches"`
	MaxProjects      int `json:"maxProjects"`
	InitialBufferCap int `json:"initialBufferCap"`
}

// Default matches the values every resolution strategy and the project
// registry are otherwise hard-wired against.
func Default() Config {
	return Config{
		MaxUSRMatches:    255,
		MaxProjects:      64,
		InitialBufferCap: 4096,
	}
}

// Load reads path if it exists, overlaying any fields it sets onto the
// defaults. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config file %s", path)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config file %s", path)
	}

	log.Printf("loaded configuration from %s", path)
	return cfg, nil
}

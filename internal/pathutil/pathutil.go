// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

// Paths holds all application path configurations.
type Paths struct {
	configDir      string
	configFileName string
	dbFileName     string
	statusFileName string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	dbFilePath     string
	statusFilePath string
	logFilePath    string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		paths = &Paths{
			configDir:      "tomate",
			configFileName: "config.yml",
			dbFileName:     "tomate.db",
			statusFileName: "status.json",
			logFileName:    "tomate.log",
		}

		paths.applyEnvironmentOverrides()
		initErr = paths.computePaths()
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func Dir() string {
	return Must().configDir
}

func ConfigFilePath() string {
	return Must().configFilePath
}

func DBFilePath() string {
	return Must().dbFilePath
}

func StatusFilePath() string {
	return Must().statusFilePath
}

func LogFilePath() string {
	return Must().logFilePath
}

func (p *Paths) applyEnvironmentOverrides() {
	tomateEnv := strings.TrimSpace(os.Getenv("TOMATE_ENV"))
	if tomateEnv != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", tomateEnv)
		p.dbFileName = fmt.Sprintf("tomate_%s.db", tomateEnv)
		p.statusFileName = fmt.Sprintf("status_%s.json", tomateEnv)
		p.logFileName = fmt.Sprintf("tomate_%s.log", tomateEnv)
	}
}

func (p *Paths) computePaths() error {
	relPath := filepath.Join(p.configDir, p.configFileName)

	configFilePath, err := xdg.ConfigFile(relPath)
	if err != nil {
		return err
	}

	p.configFilePath = configFilePath

	dbFilePath, err := xdg.DataFile(
		filepath.Join(p.configDir, p.dbFileName),
	)
	if err != nil {
		return err
	}

	p.dbFilePath = dbFilePath

	p.statusFilePath = filepath.Join(filepath.Dir(dbFilePath), p.statusFileName)

	logFilePath, err := xdg.DataFile(
		filepath.Join(p.configDir, "log", p.logFileName),
	)
	if err != nil {
		return err
	}

	p.logFilePath = logFilePath

	return nil
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}

// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/seekscript/seekscript/constant"
	"github.com/seekscript/seekscript/filesystem"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "SEEKSCRIPT_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The SEEKSCRIPT_CONFIG_PATH environment variable overrides the platform default.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Seekscript))
}

// Logs resolves the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Temp resolves a volatile directory for transient artifacts such as IPC sockets.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Seekscript))
}

// Sidecars lists subtitle files stored next to a media file that share its stem,
// e.g. talk.mp4 -> talk.en-GB-x-transcript.vtt, talk.en.srt.
func Sidecars(media string) []string {
	dir := filepath.Dir(media)
	stem := strings.TrimSuffix(filepath.Base(media), filepath.Ext(media))

	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil
	}

	var found []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, stem+".") {
			continue
		}

		switch strings.ToLower(filepath.Ext(name)) {
		case ".vtt", ".srt":
			found = append(found, filepath.Join(dir, name))
		}
	}

	return found
}

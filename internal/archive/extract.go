// Package archive extracts named entries from a ZIP file into memory and
// persists each one to a working folder.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ExtractEntries pulls the wanted entries out of the ZIP at zipPath. Every
// entry found is also written to destDir under its own name. Entries missing
// from the archive are logged and omitted from the result, not an error.
func ExtractEntries(zipPath string, wanted []string, destDir string) (map[string]string, error) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", zipPath, err)
	}
	defer reader.Close()

	files := make(map[string]*zip.File, len(reader.File))
	for _, f := range reader.File {
		files[f.Name] = f
	}
	log.Debug().Str("archive", zipPath).Int("entries", len(reader.File)).Msg("Opened archive")

	contents := make(map[string]string, len(wanted))
	for _, name := range wanted {
		f, ok := files[name]
		if !ok {
			log.Warn().Str("entry", name).Msg("Entry missing from archive")
			continue
		}

		data, err := readEntry(f)
		if err != nil {
			return nil, fmt.Errorf("read archive entry %s: %w", name, err)
		}
		contents[name] = string(data)

		outPath := filepath.Join(destDir, name)
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return nil, fmt.Errorf("persist archive entry %s: %w", name, err)
		}
		log.Debug().Str("entry", name).Int("bytes", len(data)).Msg("Extracted archive entry")
	}

	return contents, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

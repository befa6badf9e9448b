package excel

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindWorkbooks returns every workbook under dir, sorted by path. Office
// lock files ("~$name.xlsx") are skipped.
func FindWorkbooks(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || strings.HasPrefix(info.Name(), "~$") {
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx", ".xlsm":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

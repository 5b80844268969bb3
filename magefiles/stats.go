//go:build mage

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// packageStats counts Go lines in one directory.
type packageStats struct {
	Package string `json:"package"`
	Prod    int    `json:"go_loc_prod"`
	Test    int    `json:"go_loc_test"`
}

// Stats prints Go lines of code per package, one JSON record per line,
// followed by a totals record.
func Stats() error {
	byDir := map[string]*packageStats{}

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			switch path {
			case "vendor", ".git", "magefiles", "_examples", binaryDir:
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		count, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		dir := filepath.Dir(path)
		ps, ok := byDir[dir]
		if !ok {
			ps = &packageStats{Package: dir}
			byDir[dir] = ps
		}
		if strings.HasSuffix(path, "_test.go") {
			ps.Test += count
		} else {
			ps.Prod += count
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	total := packageStats{Package: "total"}
	enc := json.NewEncoder(os.Stdout)
	for _, dir := range dirs {
		ps := byDir[dir]
		total.Prod += ps.Prod
		total.Test += ps.Test
		if err := enc.Encode(ps); err != nil {
			return err
		}
	}
	if err := enc.Encode(total); err != nil {
		return fmt.Errorf("encode totals: %w", err)
	}
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}

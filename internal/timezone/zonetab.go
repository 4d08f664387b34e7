package timezone

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// zoneTabPaths are the locations checked for the IANA zone table, in
// order.
var zoneTabPaths = []string{
	"/usr/share/zoneinfo/zone1970.tab",
	"/usr/share/zoneinfo/zone.tab",
	"/usr/share/lib/zoneinfo/zone1970.tab",
	"/etc/zoneinfo/zone1970.tab",
}

// zoneEntry is one row of zone1970.tab: a zone name and the ISO 3166
// alpha-2 codes of the countries it covers.
type zoneEntry struct {
	Name      string
	Countries []string
}

// loadZoneTab parses the zone table at path, or the first readable
// default location when path is empty.
func loadZoneTab(path string) ([]zoneEntry, error) {
	candidates := zoneTabPaths
	if path != "" {
		candidates = []string{path}
	}

	var lastErr error
	for _, p := range candidates {
		f, err := os.Open(p)
		if err != nil {
			lastErr = err
			continue
		}
		defer f.Close()
		return parseZoneTab(f)
	}
	return nil, fmt.Errorf("no zone table found: %w", lastErr)
}

func parseZoneTab(f *os.File) ([]zoneEntry, error) {
	var entries []zoneEntry

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// codes <TAB> coordinates <TAB> zone name [<TAB> comments]
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}

		entries = append(entries, zoneEntry{
			Name:      fields[2],
			Countries: strings.Split(fields[0], ","),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read zone table: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("zone table %s contains no entries", f.Name())
	}

	return entries, nil
}

// countriesFor returns the country codes covering zone, or nil when the
// zone is not in the table (links and legacy aliases typically are not).
func countriesFor(entries []zoneEntry, zone string) []string {
	for _, e := range entries {
		if e.Name == zone {
			return e.Countries
		}
	}
	return nil
}

// Command validate checks a station-regions lookup file produced by
// genregions: every data line must be a valid station identifier and a valid
// region code separated by a single tab, with no station mapped twice. It
// prints per-region counts and exits non-zero if any line fails.
//
// Usage:
//
//	validate station_regions.txt
//	genregions < isd-history.csv | validate -
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/wxarchive/ncdc-regions/internal/domain"
	"github.com/wxarchive/ncdc-regions/internal/regionmap"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s <mapping-file|->\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	in := os.Stdin
	name := flag.Arg(0)
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	if code := run(in, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(in io.Reader, out io.Writer) int {
	counts := make(map[string]int)
	seen := make(map[string]bool)
	var problems []string
	records := 0

	scanner := bufio.NewScanner(in)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		station, region, ok := strings.Cut(line, "\t")
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("line %d: not tab-delimited: %q", lineNum, line))
			continue
		case !domain.ValidStationID(station):
			problems = append(problems, fmt.Sprintf("line %d: invalid station %q", lineNum, station))
			continue
		// The recompressor's pseudo-region E is legal in a mapping file:
		// hand-maintained mappings use it to pin stations absent from the
		// history CSV.
		case !domain.ValidRegion(region) && region != regionmap.RegionUnmapped:
			problems = append(problems, fmt.Sprintf("line %d: invalid region %q", lineNum, region))
			continue
		case seen[station]:
			problems = append(problems, fmt.Sprintf("line %d: duplicate station %q", lineNum, station))
			continue
		}
		seen[station] = true
		counts[region]++
		records++
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read input: %v\n", err)
		return 1
	}

	fmt.Fprintf(out, "Records: %d\n", records)
	regions := make([]string, 0, len(counts))
	for region := range counts {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	for _, region := range regions {
		fmt.Fprintf(out, "  %-2s %8d\n", region, counts[region])
	}

	if len(problems) > 0 {
		fmt.Fprintf(out, "\n%d problem(s):\n", len(problems))
		for _, p := range problems {
			fmt.Fprintln(out, "  "+p)
		}
		fmt.Fprintln(out, "\nValidation FAILED.")
		return 1
	}
	fmt.Fprintln(out, "\nAll records valid.")
	return 0
}

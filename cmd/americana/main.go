// Command americana prints a composite demographic profile of the average
// American (gender, age, most popular birth-cohort name) from locally
// cached Census and SSA datasets, or serves the same over HTTP/MCP.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hazyhaar/americana/pkg/demo"
	"github.com/hazyhaar/americana/pkg/store"
)

const defaultDataDir = "data"

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "serve":
			cmdServe(args[1:])
			return
		case "fetch":
			cmdFetch(args[1:])
			return
		case "mcp":
			cmdMCP(args[1:])
			return
		case "help", "-h", "--help":
			usage(os.Stdout)
			return
		}
	}
	cmdProfile(args)
}

func usage(w *os.File) {
	fmt.Fprint(w, `Usage: americana [flags]
       americana <command> [flags]

Prints the composite profile of the average American for a year.

Flags:
  --year=YYYY      profile a specific year (default: latest in the store)
  --gender=male|female
                   fix the gender instead of deriving it by mode
  --table          one table row per covered year instead of a profile
  --fetch          download/refresh the datasets, then exit
  --data-dir=DIR   dataset directory (default "data")

Commands:
  fetch   Download and rebuild the datasets from their sources
  serve   Start the HTTP API server
  mcp     Serve the profile tools over MCP stdio
`)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdProfile(args []string) {
	fs := flag.NewFlagSet("americana", flag.ExitOnError)
	fs.Usage = func() { usage(os.Stderr) }
	year := fs.Int("year", 0, "profile a specific year")
	gender := fs.String("gender", "", "fix the gender (male or female)")
	table := fs.Bool("table", false, "render a multi-year table")
	fetch := fs.Bool("fetch", false, "refresh the datasets, then exit")
	dataDir := fs.String("data-dir", defaultDataDir, "dataset directory")
	fs.Parse(args)

	if *fetch {
		// Bypasses the store entirely.
		if err := fetchAll(*dataDir); err != nil {
			fatal(err)
		}
		return
	}

	var fixed *demo.Gender
	if *gender != "" {
		g, err := demo.ParseGender(*gender)
		if err != nil {
			fatal(err)
		}
		fixed = &g
	}

	s, err := store.Open(*dataDir)
	if err != nil {
		fatal(err)
	}

	if *table {
		if err := printTable(s); err != nil {
			fatal(err)
		}
		return
	}

	refYear := *year
	if refYear == 0 {
		refYear = s.LatestYear()
	}
	rec, err := s.Record(refYear)
	if err != nil {
		fatal(err)
	}

	if fixed != nil {
		fmt.Println(demo.Compose(rec, refYear, s.Names(), fixed).Text())
		return
	}

	// No gender constraint: the unconditional profile plus both
	// gender-conditioned ones.
	male, female := demo.Male, demo.Female
	fmt.Println(demo.Compose(rec, refYear, s.Names(), nil).Text())
	fmt.Println()
	fmt.Println(demo.Compose(rec, refYear, s.Names(), &male).Text())
	fmt.Println()
	fmt.Println(demo.Compose(rec, refYear, s.Names(), &female).Text())
}

func printTable(s *store.Store) error {
	rows, err := demo.BuildTable(s.Years(), s.Records(), s.Names())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(w, "YEAR\tNAME\tGENDER\tAGE\tBORN\tMAN\tAGE\tBORN\tWOMAN\tAGE\tBORN")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Year,
			row.Overall.Name, row.Overall.Gender, fmtAge(row.Overall.Age), fmtYear(row.Overall.BirthYear),
			row.Male.Name, fmtAge(row.Male.Age), fmtYear(row.Male.BirthYear),
			row.Female.Name, fmtAge(row.Female.Age), fmtYear(row.Female.BirthYear),
		)
	}
	return w.Flush()
}

func fmtAge(age *float64) string {
	if age == nil {
		return demo.NamePlaceholder
	}
	return fmt.Sprintf("%.1f", *age)
}

func fmtYear(year *int) string {
	if year == nil {
		return demo.NamePlaceholder
	}
	return fmt.Sprintf("%d", *year)
}

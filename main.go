package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/etnz/deb-archive-tools/deb"
	"github.com/etnz/deb-archive-tools/index"
	"github.com/etnz/deb-archive-tools/policy"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "latest":
		latestCmd(os.Args[2:])
	case "scan":
		scanCmd(os.Args[2:])
	case "check":
		checkCmd(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: deb-archive-tools <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  latest [files...]              Print the newest archive per package name")
	fmt.Println("  scan -dir DIR | -index FILE    Harvest archives and print the newest per package name")
	fmt.Println("  check -policy FILE [files...]  Evaluate archives against a version policy")
}

func latestCmd(args []string) {
	fs := flag.NewFlagSet("latest", flag.ExitOnError)
	fs.Parse(args)
	printLatest(deb.Sources(fs.Args()...))
}

func scanCmd(args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	dir := fs.String("dir", "", "Directory containing .deb/.udeb files")
	indexPath := fs.String("index", "", "Path to a Packages index (optionally .gz)")
	verbose := fs.Bool("v", false, "Print scan events")
	fs.Parse(args)

	var listen index.Listener
	if *verbose {
		listen = func(e fmt.Stringer) { fmt.Println(e) }
	}

	var archives []deb.Archive
	var err error
	switch {
	case *dir != "":
		archives, err = index.ScanDir(*dir, listen)
	case *indexPath != "":
		archives, err = index.Load(*indexPath)
	default:
		fmt.Println("Fatal: one of -dir or -index is required")
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("Fatal: %v\n", err)
		os.Exit(1)
	}

	sources := make([]deb.Source, len(archives))
	for i, a := range archives {
		sources[i] = a
	}
	printLatest(sources)
}

func printLatest(sources []deb.Source) {
	latests, err := deb.LatestPerName(sources)
	if err != nil {
		fmt.Printf("Fatal: %v\n", err)
		os.Exit(1)
	}

	names := make([]string, 0, len(latests))
	for name := range latests {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a := latests[name]
		fmt.Printf("%s\t%s\t%s\t%s\n", a.Name, a.Version.String(), a.Architecture, a.OriginalFilename)
	}
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	policyPath := fs.String("policy", "", "Path to a policy file (.yaml, .yml or .json)")
	fs.Parse(args)

	if *policyPath == "" {
		fmt.Println("Fatal: -policy is required")
		os.Exit(1)
	}
	p, err := policy.Load(*policyPath)
	if err != nil {
		fmt.Printf("Fatal: %v\n", err)
		os.Exit(1)
	}
	sets, err := p.Sets()
	if err != nil {
		fmt.Printf("Fatal: %v\n", err)
		os.Exit(1)
	}

	conflicted := false
	for _, arg := range fs.Args() {
		archive, err := deb.ParseFilename(arg)
		if err != nil {
			fmt.Printf("Fatal: %v\n", err)
			os.Exit(1)
		}
		verdict, err := deb.Matches(archive, sets)
		if err != nil {
			fmt.Printf("Fatal: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s\t%s\n", arg, verdict)
		if verdict == deb.Conflicted {
			conflicted = true
		}
	}
	if conflicted {
		os.Exit(1)
	}
}

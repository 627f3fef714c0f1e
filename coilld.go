package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LowLevelTeam/libcoil-dev-sub001/pkg/coil"
	"github.com/LowLevelTeam/libcoil-dev-sub001/pkg/linker"
	"github.com/LowLevelTeam/libcoil-dev-sub001/pkg/utils"
)

var version = "dev"

func main() {
	opts := linker.DefaultOptions()
	output := "a.out"
	dump := false
	remaining := parseArgs(&opts, &output, &dump)

	if dump {
		for _, path := range remaining {
			obj, err := coil.LoadFromFile(path)
			utils.MustNo(err)
			fmt.Printf("%s:\n", path)
			utils.MustNo(obj.Dump(os.Stdout))
		}
		return
	}

	if len(remaining) == 0 {
		utils.Fatal("no input files")
	}

	res, err := linker.LinkFiles(remaining, output, opts)
	utils.MustNo(err)
	fmt.Printf("%s: %d inputs, %d sections, %d symbols, %d relocations applied, %d retained\n",
		output, res.Inputs, res.MergedSections, res.ResolvedSymbols,
		res.AppliedRelocations, res.RetainedRelocations)
}

func parseArgs(opts *linker.Options, output *string, dump *bool) []string {
	args := os.Args[1:]

	dashes := func(name string) []string {
		if len(name) == 1 {
			return []string{"-" + name}
		}
		return []string{"-" + name, "--" + name}
	}

	arg := ""
	readArg := func(name string) bool {
		for _, opt := range dashes(name) {
			if args[0] == opt {
				if len(args) == 1 {
					utils.Fatal(fmt.Sprintf("option %s: argument missing", opt))
				}
				arg = args[1]
				args = args[2:]
				return true
			}
			prefix := opt
			if len(name) > 1 {
				prefix += "="
			}
			if strings.HasPrefix(args[0], prefix) {
				arg = args[0][len(prefix):]
				args = args[1:]
				return true
			}
		}
		return false
	}

	readFlag := func(name string) bool {
		for _, opt := range dashes(name) {
			if args[0] == opt {
				args = args[1:]
				return true
			}
		}
		return false
	}

	remaining := make([]string, 0)
	for len(args) > 0 {
		if readFlag("help") {
			fmt.Printf("usage: %s [options] file...\n", os.Args[0])
			os.Exit(0)
		}

		if readArg("o") || readArg("output") {
			*output = arg
		} else if readFlag("v") || readFlag("version") {
			fmt.Printf("coil-ld %s\n", version)
			os.Exit(0)
		} else if readArg("e") || readArg("entry") {
			opts.EntrySymbol = arg
			opts.CreateExecutable = true
		} else if readFlag("shared") {
			opts.CreateExecutable = false
		} else if readFlag("r") || readFlag("relocatable") {
			opts.KeepRelocations = true
			opts.ResolveAllSymbols = false
		} else if readFlag("strip-debug") {
			opts.StripDebug = true
		} else if readFlag("allow-mismatched-arch") {
			opts.AllowMismatchedArch = true
		} else if readFlag("take-first") {
			opts.ConflictPolicy = linker.ConflictTakeFirst
		} else if readArg("L") {
			opts.SearchDirs = append(opts.SearchDirs, arg)
		} else if readFlag("dump") {
			*dump = true
		} else {
			if args[0][0] == '-' {
				utils.Fatal(fmt.Sprintf("unknown command line option: %s", args[0]))
			}
			remaining = append(remaining, args[0])
			args = args[1:]
		}
	}

	for i, dir := range opts.SearchDirs {
		opts.SearchDirs[i] = filepath.Clean(dir)
	}

	return remaining
}

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"

	"github.com/forgeforum/forgeforum/bbcode"
	"github.com/forgeforum/forgeforum/util"
)

func parseOptions(args []string) (string, bool, string) {
	var opts struct {
		File   string `long:"file" short:"f" description:"Read BBCode source from the file, rather than stdin" value-name:"bbcode_file" default:"-"`
		Config string `long:"config" description:"YAML file describing smilies, spoiler mode, and embed toggles"`
		Debug  bool   `long:"debug" description:"Pretty-print the parsed tree before rendering"`
		Help   bool   `long:"help" description:"Show this help"`
	}

	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[options]"
	_, err := parser.ParseArgs(args)
	if err != nil {
		log.Fatal(err)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}

	return opts.File, opts.Debug, opts.Config
}

func main() {
	util.InitSlog()

	file, debug, configPath := parseOptions(os.Args[1:])

	var input []byte
	var err error
	if file == "-" || file == "" {
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(file)
	}
	if err != nil {
		log.Fatal(err)
	}

	cfg := bbcode.DefaultConfig()
	if configPath != "" {
		cfg, err = bbcode.LoadConfig(configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	tokens := bbcode.Tokenize(string(input))
	tree := bbcode.Parse(tokens)

	if debug {
		pp.Fprintln(os.Stderr, tree)
	}

	fmt.Println(bbcode.Render(tree, cfg))
}

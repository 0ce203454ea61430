// Package main implements the corelc front-end driver: parse a source
// file and print (or dump) the resulting AST.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/corelang/corelang"
	"github.com/corelang/corelang/debug"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

const version = "0.1.0"

var (
	showVersion = flag.Bool("version", false, "Show version")
	output      = flag.String("o", "", "Output file (default: stdout)")
	verbose     = flag.Bool("v", false, "Verbose output")
	dump        = flag.Bool("dump", false, "Dump full AST struct shape instead of re-rendering source")
	demo        = flag.Bool("demo", false, "Run demo mode")
)

func main() {
	flag.Parse()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *showVersion {
		fmt.Printf("corelc version %s\n", version)
		return
	}

	if *demo {
		runDemo()
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file.core>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -demo (run demo mode)\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	filename := args[0]
	if filepath.Ext(filename) != ".core" {
		fmt.Fprintf(os.Stderr, "Error: file must have .core extension\n")
		os.Exit(1)
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		log.WithError(err).Error("reading file")
		os.Exit(1)
	}

	log.WithField("file", filename).Debug("parsing")

	tree, errs := corelang.Parse(string(content))
	if len(errs) > 0 {
		for _, e := range errs {
			log.WithField("file", filename).Error(e.String())
		}
		os.Exit(1)
	}

	var result string
	if *dump {
		result = debug.Sdump(tree)
	} else {
		result = tree.String()
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(result), 0644); err != nil {
			log.WithError(err).Error("writing output")
			os.Exit(1)
		}
		log.WithField("file", *output).Debug("output written")
	} else {
		fmt.Println(result)
	}
}

func runDemo() {
	input := `
val x = 5
val y = 10.5
val name = "Hello World"

def add(a: Int, b: Int) = a + b

if (x < y) {
  println("x is less than y")
}

val numbers = List(1, 2, 3)
val doubled = numbers.map(_ * 2)

for (n <- numbers if n > 1) yield n * n
`

	fmt.Println("=== PARSER OUTPUT ===")
	stats, errs := corelang.ParseStats(input)
	if len(errs) > 0 {
		fmt.Println("Parser errors:")
		for _, e := range errs {
			fmt.Println("\t" + e.String())
		}
		return
	}

	for _, s := range stats {
		fmt.Println(s.String())
	}

	fmt.Printf("\ncorelang version %s\n", version)
}

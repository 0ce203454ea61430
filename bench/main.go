// Command bench drives the parser over a representative source
// sample under CPU profiling, then prints a top-functions summary
// using the same profile.proto format `go tool pprof` reads.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"

	"github.com/corelang/corelang/parser"
	"github.com/google/pprof/profile"
)

var (
	cpuprofile = flag.String("cpuprofile", "corelang.prof", "write CPU profile to file")
	iterations = flag.Int("n", 20000, "number of parse iterations")
)

const sample = `
package bench

class Tree[A](value: A, children: List[Tree[A]]) {
  def map[B](f: A => B): Tree[B] =
    Tree(f(value), children.map(_.map(f)))

  def sum(implicit num: Numeric[A]): A =
    children.foldLeft(value) { (acc, child) => num.plus(acc, child.sum) }
}

object Tree {
  def leaf[A](value: A): Tree[A] = Tree(value, Nil)

  def fibs(n: Int): List[Int] = {
    def go(a: Int, b: Int, left: Int): List[Int] =
      if (left == 0) Nil else a :: go(b, a + b, left - 1)
    go(0, 1, n)
  }
}

val t = Tree.leaf(1)
val doubled = t.map(_ * 2)
for (x <- Tree.fibs(10) if x % 2 == 0) yield x * x
`

func main() {
	flag.Parse()

	f, err := os.Create(*cpuprofile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bench: could not create profile:", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		fmt.Fprintln(os.Stderr, "bench: could not start profile:", err)
		os.Exit(1)
	}

	for i := 0; i < *iterations; i++ {
		p := parser.New(sample)
		p.ParseStatsOrPackages()
	}

	pprof.StopCPUProfile()

	if err := summarize(*cpuprofile); err != nil {
		fmt.Fprintln(os.Stderr, "bench: could not summarize profile:", err)
		os.Exit(1)
	}
}

// summarize reopens the just-written profile with the pprof library
// proper (rather than the runtime/pprof writer) and prints the ten
// functions with the highest cumulative sample value — a quick sanity
// check that parsing time is going where we expect, without needing
// `go tool pprof` installed.
func summarize(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	prof, err := profile.Parse(f)
	if err != nil {
		return err
	}

	type entry struct {
		name string
		cum  int64
	}
	totals := map[string]int64{}
	for _, s := range prof.Sample {
		for _, loc := range s.Location {
			for _, line := range loc.Line {
				if line.Function == nil {
					continue
				}
				for _, v := range s.Value {
					totals[line.Function.Name] += v
				}
			}
		}
	}

	entries := make([]entry, 0, len(totals))
	for name, cum := range totals {
		entries = append(entries, entry{name, cum})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].cum > entries[j].cum })

	fmt.Printf("top functions in %s (%d samples):\n", path, len(prof.Sample))
	for i, e := range entries {
		if i >= 10 {
			break
		}
		fmt.Printf("  %8d  %s\n", e.cum, e.name)
	}
	return nil
}

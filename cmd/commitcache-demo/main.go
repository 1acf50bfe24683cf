// Command commitcache-demo exercises the cache facade against a small
// canned history, the way cli/go-git exercises go-git's plumbing
// against a real repository. It never touches git or the network: the
// commit walk and diff text below stand in for what a real caller
// would decode from `git log` and `git diff-index` output.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/vcsviewer/commitcache"
	"github.com/vcsviewer/commitcache/plumbing"
)

const usage = `Please specify one command of: rows, search, refs
Usage:
	commitcache-demo [OPTIONS] <rows | search | refs>

Help Options:
	-h, --help  Show this help message

Available commands:
	rows    print the rendered commit graph
	search  find the first row whose sha, author, committer or log message contains TEXT
	refs    print every known branch and local tag
`

var commands = map[string]func([]string) error{
	"rows":   rowsRun,
	"search": searchRun,
	"refs":   refsRun,
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	var args []string
	if len(os.Args) > 2 {
		args = os.Args[2:]
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		showUsage()
		os.Exit(1)
	}

	if err := cmd(args); err != nil {
		fmt.Fprintln(os.Stderr, "ERR:", err)
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Print(usage)
}

func demoCache() *commitcache.Cache {
	c := commitcache.New()
	c.Setup(demoSeeds(), "", "", nil)
	c.AddReference("c3", plumbing.Ref{Name: "main", Type: plumbing.RefBranch})
	c.AddReference("c1", plumbing.Ref{Name: "v0.1", Type: plumbing.RefTag})
	return c
}

func demoSeeds() []commitcache.CommitSeed {
	now := time.Unix(1_700_000_000, 0).UTC()
	return []commitcache.CommitSeed{
		{Sha: "c3", Parents: []plumbing.Sha{"c2"}, Author: "ada", CommittedAt: now, Log: "add lane engine"},
		{Sha: "c2", Parents: []plumbing.Sha{"c1"}, Author: "ada", CommittedAt: now.Add(-time.Hour), Log: "parse diff headers"},
		{Sha: "c1", Author: "ada", CommittedAt: now.Add(-2 * time.Hour), Log: "initial commit"},
	}
}

func rowsRun(args []string) error {
	c := demoCache()
	for row := 0; row < c.Count(); row++ {
		info := c.ByRow(row)
		sha := "WIP"
		if !info.Sha.IsZero() {
			sha = string(info.Sha)
		}
		fmt.Printf("%d\t%s\t%s\n", row, sha, info.Log)
	}
	return nil
}

func searchRun(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: commitcache-demo search TEXT")
	}
	c := demoCache()
	row, ok := c.Search(args[0], 0, false)
	if !ok {
		fmt.Println("no match")
		return nil
	}
	fmt.Printf("row %d: %s\n", row, c.ByRow(row).Log)
	return nil
}

func refsRun(args []string) error {
	c := demoCache()
	for _, ref := range c.GetBranches() {
		fmt.Printf("branch\t%s\n", ref.Name)
	}
	for _, ref := range c.GetTags(commitcache.TagKindLocal) {
		fmt.Printf("tag\t%s\n", ref.Name)
	}
	return nil
}

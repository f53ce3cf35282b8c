package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/forgeforum/forgeforum/permission"
	"github.com/forgeforum/forgeforum/permission/store"
	"github.com/forgeforum/forgeforum/util"
)

type options struct {
	Dialect        string `long:"dialect" description:"Database dialect" value-name:"mysql|postgres|mssql|sqlite3" default:"sqlite3"`
	DSN            string `long:"dsn" description:"Data source name for the chosen dialect" value-name:"dsn" default:"file::memory:"`
	PasswordPrompt bool   `long:"password-prompt" description:"Prompt for a password and append it to the DSN as a query parameter"`
	User           int    `long:"user" description:"User id to evaluate as" value-name:"user_id"`
	Groups         string `long:"groups" description:"Comma-separated group ids the user belongs to" value-name:"g1,g2,..."`
	Forum          int    `long:"forum" description:"Forum id to evaluate can_in_forum against; omitted means a global can() check"`
	Permission     string `long:"permission" description:"Dotted permission name to evaluate" value-name:"category.item"`
	Debug          bool   `long:"debug" description:"Print the loaded catalog's permission labels and indices before evaluating"`
	Help           bool   `long:"help" description:"Show this help"`
}

func parseOptions(args []string) options {
	var opts options
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
	if opts.Permission == "" {
		fmt.Print("No --permission given!\n\n")
		parser.WriteHelp(os.Stdout)
		os.Exit(1)
	}
	return opts
}

func parseGroups(s string) []int32 {
	if s == "" {
		return nil
	}
	fields := strings.Split(s, ",")
	groups := util.TransformSlice(fields, func(f string) int32 {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			log.Fatalf("invalid group id %q: %v", f, err)
		}
		return int32(n)
	})
	return groups
}

func main() {
	util.InitSlog()
	opts := parseOptions(os.Args[1:])

	dsn := opts.DSN
	if opts.PasswordPrompt {
		fmt.Print("Enter Password: ")
		pass, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println()
		dsn = dsn + "&password=" + string(pass)
	}

	loader, db, err := store.NewLoader(store.Config{DbType: opts.Dialect, DSN: dsn})
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	snap, err := permission.BuildSnapshot(ctx, loader)
	if err != nil {
		log.Fatal(err)
	}
	permStore := permission.NewStore(snap)

	if opts.Debug {
		pp.Fprintln(os.Stderr, "categories loaded:")
		for label, idx := range util.CanonicalMapIter(catalogLabels(snap.Catalog)) {
			pp.Fprintf(os.Stderr, "  %s -> %+v\n", label, idx)
		}
	}

	client := permission.Client{UserID: int32(opts.User), GroupIDs: parseGroups(opts.Groups)}

	var allowed bool
	if opts.Forum != 0 {
		allowed = permStore.CanInForum(client, int32(opts.Forum), opts.Permission)
	} else {
		allowed = permStore.Can(client, opts.Permission)
	}

	fmt.Println(allowed)
	if !allowed {
		os.Exit(1)
	}
}

// catalogLabels exposes a Catalog's label->indices dictionary so its
// entries can be walked in deterministic order for --debug output.
func catalogLabels(cat *permission.Catalog) map[string]permission.Indices {
	out := make(map[string]permission.Indices)
	for _, category := range cat.Categories {
		for _, item := range category.Items {
			out[item.Label] = permission.Indices{Category: category.Position, Item: item.Position}
		}
	}
	return out
}

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/devmarvs/pagegate/config"
	"github.com/devmarvs/pagegate/credential"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "hash":
		hashCmd(os.Args[2:])
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("pagegate CLI")
	fmt.Println("\nCommands:")
	fmt.Println("  pagegate hash                     read a password from stdin and print its bcrypt hash")
	fmt.Println("  pagegate check -config <file> [-secrets <file>] [-env-prefix PAGEGATE_]")
}

func hashCmd(args []string) {
	fs := flag.NewFlagSet("hash", flag.ExitOnError)
	_ = fs.Parse(args)

	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil && password == "" {
		fatal(err)
	}
	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		fatal(fmt.Errorf("empty password"))
	}

	hash, err := credential.Hash(password)
	if err != nil {
		fatal(err)
	}
	fmt.Println(hash)
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	path := fs.String("config", "", "Config file (required)")
	secrets := fs.String("secrets", "", "Secrets overlay file (users tree, DSNs)")
	envPrefix := fs.String("env-prefix", "PAGEGATE_", "Environment override prefix")
	_ = fs.Parse(args)

	if *path == "" {
		fmt.Println("usage: pagegate check -config <file> [-secrets <file>] [-env-prefix PAGEGATE_]")
		return
	}

	cfg, err := config.LoadProfile(config.Profile{
		BasePath:    *path,
		SecretsPath: *secrets,
		EnvPrefix:   *envPrefix,
	})
	if err != nil {
		fatal(err)
	}

	fmt.Printf("base url: %s\n", cfg.BaseURL)
	fmt.Printf("users: %d\n", countUsers(cfg.Users, 0))
	fmt.Printf("rights rules: %d\n", len(cfg.Rights))
	fmt.Printf("session backend: %s\n", cfg.Session.Backend)
	fmt.Println("ok")
}

func countUsers(group credential.Group, depth int) int {
	if depth >= credential.MaxDepth {
		return 0
	}
	count := 0
	for _, node := range group {
		switch child := node.(type) {
		case credential.Group:
			count += countUsers(child, depth+1)
		case credential.User:
			count++
		}
	}
	return count
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

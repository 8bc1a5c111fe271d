// Command credentials creates or replaces the operator credentials file
// read by the server's login gate.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"os"

	"maintrack/internal/cli"
	"maintrack/internal/server/auth"
)

func main() {
	path := flag.String("f", "credentials.json", "credentials file path")
	flag.Parse()

	reader := bufio.NewReader(os.Stdin)

	username, err := cli.GetSimpleText(reader, "Username", os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if username == "" {
		fmt.Fprintln(os.Stderr, "username must not be empty")
		os.Exit(1)
	}

	password, err := cli.GetPassword("Enter password: ", os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer cli.WipeByteArray(password)

	confirm, err := cli.GetPassword("Repeat password: ", os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer cli.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		fmt.Fprintln(os.Stderr, "passwords do not match")
		os.Exit(1)
	}
	if len(password) == 0 {
		fmt.Fprintln(os.Stderr, "password must not be empty")
		os.Exit(1)
	}

	if err := auth.SaveCredentials(*path, username, password); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("credentials written to %s\n", *path)
}

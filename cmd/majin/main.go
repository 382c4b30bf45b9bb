// Package main provides the majin CLI.
package main

import "github.com/majin-ml/majin/cmd/majin/cmd"

func main() {
	cmd.Execute()
}

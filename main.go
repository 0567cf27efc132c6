// Package main is the entry point for the brtiers CLI tool, which computes
// matchmaking tier rates and weighted BR scores from vehicle play counts.
package main

import "github.com/pable/brtiers/cmd"

func main() {
	cmd.Execute()
}

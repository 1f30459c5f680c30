// Package main is the entry point for the repo report bot CLI.
package main

import (
	"github.com/YoWuwuuuw/github-repo-report-bot/cmd/reportbot/commands"
)

func main() {
	commands.Execute()
}

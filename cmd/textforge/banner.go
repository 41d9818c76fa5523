package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BC34A")).
			Border(lipgloss.NormalBorder()).
			Padding(0, 2)

	notesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d6dae0")).
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			Width(70)

	stepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2196F3"))
)

const notesText = `Notes
-----

This tool generates random text which can come either from a remote
generative service or from a local random text generator. After
generating the text, it writes it to a target file (either appending
to the previous content or replacing it), computes the SHA-256 hash
of that file for verification, and records the event in a JSONL
logbook.

Tip: to reproduce a specific hash, keep the file's content stable.
If you randomize it again, the hash will change.`

func printWelcome() {
	fmt.Println()
	fmt.Println(bannerStyle.Render("Welcome to textforge :)"))
	fmt.Println()
	fmt.Println(notesStyle.Render(notesText))
}

func printStep(title string) {
	fmt.Println()
	fmt.Println(stepStyle.Render("[Step] " + title))
	fmt.Println()
}

func printGoodbye() {
	fmt.Println()
	fmt.Println(bannerStyle.Render("Thanks for using textforge ^_^"))
}

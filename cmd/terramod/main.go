// Package main is the entry point for the terramod registry CLI.
package main

func main() {
	Execute()
}

// Package main is the entry point for ambience.
package main

import "github.com/llehouerou/ambience/cmd"

func main() {
	cmd.Execute()
}

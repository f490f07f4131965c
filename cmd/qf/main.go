package main

import "questforge/cmd/qf/root"

func main() {
	root.Execute()
}

package main

import "github.com/arangokit/modelgen/cmd"

func main() {
	cmd.Execute()
}

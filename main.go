package main

import "github.com/openmatchlabs/proforma/cmd"

func main() {
	cmd.Execute()
}

package main

import "invoice-reconciler/cmd"

func main() {
	cmd.Execute()
}

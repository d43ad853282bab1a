package main

import "github.com/frahmantamala/tenant-ledger/cmd"

func main() {
	cmd.Execute()
}

package main

import "wisp/src/host"

func main() {
	host.Execute()
}

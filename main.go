package main

import "github.com/scriptsnoop/scriptsnoop/cmd/scriptsnoop"

func main() {
	scriptsnoop.Execute()
}

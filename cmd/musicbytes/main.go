package main

import "github.com/cbegin/musicbytes-go/internal/cli"

func main() {
	cli.Execute()
}

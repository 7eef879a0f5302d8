package main

import "github.com/mvp-joe/ivr-audit/internal/cli"

func main() {
	cli.Execute()
}

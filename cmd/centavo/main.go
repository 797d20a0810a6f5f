package main

import "github.com/centavo-app/centavo/internal/cli"

func main() {
	cli.Execute()
}

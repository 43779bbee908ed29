package main

import "github.com/annotatorB/schubert-dances/cmd"

func main() {
	cmd.Execute()
}

package main

import "cookiecycle/cmd/cookiecycle"

func main() {
	cookiecycle.Execute()
}

package main

import "fmt"

func errUnknownCommand(name string) error {
	return fmt.Errorf("laurn: unknown command %q (expected run, shell, or hook)", name)
}

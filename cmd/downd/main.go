// Command downd is the download supervisor daemon and its CLI
// companions (run/stop/status/watch/clip/token), wired together per
// SPEC_FULL.md §2.3, in the shape of surge/cmd's cobra root + subcommand
// family.
package main

func main() {
	Execute()
}

// Command lectern presents, outlines and validates slide decks.
package main

func main() {
	Execute()
}

// Public domain.

package main

import "github.com/soniakeys/cusptransit/internal/ctprog"

func main() {
	ctprog.Main()
}

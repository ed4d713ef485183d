// Command quadpack compresses images into quadtree arrays and back.
//
//	quadpack compress photo.ppm 200 photo.qt
//	quadpack inspect photo.qt
//	quadpack render photo.qt preview.png --depth 4
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

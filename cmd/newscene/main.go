package main

import (
	"flag"
	"fmt"
	"os"

	gothumb "github.com/gothumb/gothumb"
)

func main() {
	outPath := flag.String("out", "scene.json", "where to write the starter scene (.json, .yaml, .yml)")
	flag.Parse()

	scene := gothumb.DefaultScene()
	if err := gothumb.SaveScene(scene, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "save scene: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote starter scene to %s\n", *outPath)
}

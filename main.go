// Command orient evaluates an orient script and prints its result as JSON.
//
// Usage:
//
//	orient [-kernel sdfx|manifold] script.orient
//	orient [-kernel sdfx|manifold] < script.orient
//
// The manifold kernel is only available when built with -tags=manifold.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("orient: ")

	kernelName := flag.String("kernel", "sdfx", "geometry kernel (sdfx or manifold)")
	flag.Parse()

	k, err := newKernel(*kernelName)
	if err != nil {
		log.Fatalf("kernel: %v", err)
	}

	var source []byte
	switch flag.NArg() {
	case 0:
		source, err = io.ReadAll(os.Stdin)
	case 1:
		source, err = os.ReadFile(flag.Arg(0))
	default:
		log.Fatalf("usage: orient [-kernel name] [script]")
	}
	if err != nil {
		log.Fatalf("read script: %v", err)
	}

	result := NewAppWithKernel(k).Evaluate(string(source))

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	os.Stdout.Write(append(out, '\n'))

	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

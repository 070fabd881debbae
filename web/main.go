package main

import (
	"flag"
	"os"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	earth := flag.String("earth", "", "Earth texture image for the textured scenes")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := renderer.NewDefaultLogger()
	logger.SetDebug(*debug)

	webServer := server.NewServer(*port, *earth, logger)

	logger.Printf("Path Tracer Web Server\n")
	logger.Printf("Visit http://localhost:%d to start rendering\n", *port)
	logger.Debugf("earth image: %q\n", *earth)

	if err := webServer.Start(); err != nil {
		logger.Warnf("Error starting server: %v\n", err)
		os.Exit(1)
	}
}

// Package main is jpeginspect, a segment-level JPEG inspector. It decodes
// a file with the core decoder and reports the JFIF density, frame layout,
// installed quantization tables and the MCU group and block counts of the
// spectral store.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/mattrips/jpeg/jpeg"
)

// Logging configuration.
const (
	logPath      = "jpeginspect.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
	logSuppress  = true
)

func main() {
	filePtr := flag.String("in", "", "Path to the JPEG file to inspect.")
	coefPtr := flag.Bool("coef", false, "Dump nonzero coefficients of the first block.")
	verbosePtr := flag.Bool("v", false, "Log at debug verbosity.")
	flag.Parse()

	// Create lumberjack logger to handle logging to file.
	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}

	verbosity := int8(logging.Info)
	if *verbosePtr {
		verbosity = int8(logging.Debug)
	}
	log := logging.New(verbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	if *filePtr == "" {
		log.Fatal("no input file provided, check usage")
	}

	f, err := os.Open(*filePtr)
	if err != nil {
		log.Fatal("could not open input", "error", err)
	}
	defer f.Close()

	log.Debug("decoding", "file", *filePtr)
	dec := jpeg.NewDecoder(f)
	result, err := dec.Decode()
	if err != nil {
		if de, ok := jpeg.AsDecodeError(err); ok {
			log.Fatal("decode failed", "kind", de.Kind.String(), "detail", de.Detail)
		}
		log.Fatal("decode failed", "error", err)
	}

	report(result, dec.Context(), *coefPtr)
	log.Debug("decode complete", "groups", result.Spectra.Groups())
}

// report prints the decoded structure to stdout.
func report(result *jpeg.Result, ctx *jpeg.Context, dumpCoef bool) {
	fmt.Printf("JFIF %d.%02d, density %dx%d (%s)\n",
		result.JFIF.VersionMajor, result.JFIF.VersionMinor,
		result.JFIF.DensityX, result.JFIF.DensityY, result.JFIF.Unit)
	fmt.Printf("frame: %s, %d-bit, %dx%d\n",
		result.Frame.Encoding, result.Frame.Precision,
		result.Frame.Width, result.Frame.Height)

	for _, c := range result.Frame.Components {
		fmt.Printf("  component %#02x: sampling %dx%d, quantization slot %d\n",
			c.ID, c.SamplingX, c.SamplingY, c.QTableIndex)
	}

	for i, q := range ctx.Quant {
		if q == nil {
			continue
		}
		fmt.Printf("quantization slot %d: %d-bit\n", i, q.Bits)
		raster := q.Raster()
		for row := 0; row < 8; row++ {
			fmt.Print(" ")
			for col := 0; col < 8; col++ {
				fmt.Printf(" %3d", raster[row*8+col])
			}
			fmt.Println()
		}
	}

	fmt.Printf("spectra: %d MCU groups of %d blocks\n",
		result.Spectra.Groups(), result.Spectra.BlocksPerGroup())

	if dumpCoef && result.Spectra.Groups() > 0 {
		fmt.Println("first block coefficients:")
		for k := 0; k < 64; k++ {
			if v := result.Spectra.At(0, 0, k); v != 0 {
				fmt.Printf("  k=%d: %d\n", k, v)
			}
		}
	}
}

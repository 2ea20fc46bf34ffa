/*
DESCRIPTION
  Ariblex is a bare-bones sample program that reads a raw ARIB B24 PES
  payload from disk, decodes it into one Caption, rasterizes that caption
  at its pts, and writes every rendered region image to disk as a PNG. It exists to exercise decoder.Decoder and
  render.RendererCore end to end; it is not part of the core library.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

// Package main implements ariblex, a thin CLI sample around the
// aribcaption decoder and renderer.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/ausocean/aribcaption/caption"
	"github.com/ausocean/aribcaption/decoder"
	"github.com/ausocean/aribcaption/render"
	"github.com/ausocean/utils/logging"
)

func main() {
	pesPath := flag.String("pes", "", "path to a raw ARIB B24 PES payload file")
	outDir := flag.String("out", ".", "directory to write decoded region PNGs into")
	frameWidth := flag.Int("width", 1920, "target video frame width")
	frameHeight := flag.Int("height", 1080, "target video frame height")
	flag.Parse()

	if *pesPath == "" {
		fmt.Fprintln(os.Stderr, "ariblex: -pes is required")
		os.Exit(2)
	}

	log := logging.New(logging.Debug, os.Stderr, false)

	data, err := os.ReadFile(*pesPath)
	if err != nil {
		log.Fatal("ariblex: could not read PES file", "error", err)
	}

	dec := decoder.New(log, caption.EncodingSchemeAuto, caption.CaptionTypeCaption, caption.ProfileA, caption.LanguageIDFirst)

	rnd := render.NewRendererCore(log, render.NullFontProvider{}, render.NullTextRenderer{})
	rnd.SetFrameSize(*frameWidth, *frameHeight)
	rnd.SetMargins(0, 0, 0, 0)

	status, cap := dec.Decode(data, 0)
	switch status {
	case decoder.StatusError:
		log.Fatal("ariblex: decode failed")
	case decoder.StatusNoCaption:
		fmt.Println("ariblex: no caption in PES payload")
		return
	}

	rnd.AppendCaption(*cap)

	var result render.RenderResult
	renderStatus := rnd.Render(cap.PTS, &result)
	if renderStatus != render.RenderStatusGotImage {
		fmt.Printf("ariblex: render status %v, nothing to write\n", renderStatus)
		return
	}

	for i, img := range result.Images {
		if err := writePNG(*outDir, i, img); err != nil {
			log.Error("ariblex: failed to write PNG", "error", err)
		}
	}
}

func writePNG(outDir string, index int, img caption.Image) error {
	bmp := render.ImageToBitmap(img)
	path := fmt.Sprintf("%s/region-%02d.png", outDir, index)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, bmp)
}

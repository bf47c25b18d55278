// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package segimage_test

import (
	"image/png"
	"log"
	"net/http"
	"os"

	"github.com/golang/freetype/truetype"

	megaplexer "github.com/Sidpatchy/Megaplexer"
	"github.com/Sidpatchy/Megaplexer/segimage"
)

func Example() {
	store := megaplexer.NewStore(6, megaplexer.DefaultPattern)

	r := segimage.NewRenderer(&segimage.Opts{
		Digits:    store.Len(),
		LabelFace: segimage.DefaultLabelFace,
	})
	http.Handle("/display.png", &segimage.Handler{Renderer: r, Snapshot: store.Snapshot})
	log.Fatal(http.ListenAndServe(":8080", nil))
}

// Label the cells with a TrueType face instead of the bitmap default.
func Example_customFace() {
	b, err := os.ReadFile("/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf")
	if err != nil {
		log.Fatal(err)
	}
	f, err := truetype.Parse(b)
	if err != nil {
		log.Fatal(err)
	}

	r := segimage.NewRenderer(&segimage.Opts{
		Digits:    6,
		LabelFace: truetype.NewFace(f, &truetype.Options{Size: 14}),
	})
	img := r.Render([]byte{0x3F, 0x06, 0x5B, 0x4F, 0x66, 0x6D})

	out, err := os.Create("display.png")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		log.Fatal(err)
	}
}

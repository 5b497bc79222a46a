// Package web holds the HTML templates and static assets served by the
// calculator.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html static/*
var files embed.FS

// Templates is rooted at the templates directory.
var Templates = mustSub("templates")

// Static is rooted at the static directory.
var Static = mustSub("static")

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

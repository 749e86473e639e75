package web

import "embed"

// TemplatesFS holds the server-rendered page and partial templates.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds the stylesheet and browser scripts.
//
//go:embed static/*
var StaticFS embed.FS

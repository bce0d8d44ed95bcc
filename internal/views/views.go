// Package views renders the blog's HTML pages.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/bilgisen/spacetraveling/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// SiteTitle is the title of the home page and the suffix of post titles.
const SiteTitle = "spacetraveling"

// HomePage is the data of the post list page.
type HomePage struct {
	Posts []models.PostSummary
	// LoadMoreURL is the link of the "load more" button; empty hides it.
	LoadMoreURL string
}

type page struct {
	Lang  string
	Title string
	HomePage
	Post *models.PostDetailViewModel
}

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
	lang string
}

// New parses the embedded templates. lang is the document language tag.
func New(lang string) (*Renderer, error) {
	tmpl, err := template.New("views").
		Funcs(template.FuncMap{
			// BodyHTML is sanitized by the rich text renderer.
			"safe": func(s string) template.HTML { return template.HTML(s) },
		}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, lang: lang}, nil
}

// Home renders the post list.
func (r *Renderer) Home(data HomePage) ([]byte, error) {
	return r.execute("home", page{Lang: r.lang, Title: SiteTitle, HomePage: data})
}

// Post renders a post page.
func (r *Renderer) Post(vm *models.PostDetailViewModel) ([]byte, error) {
	return r.execute("post", page{Lang: r.lang, Title: vm.Title + " | " + SiteTitle, Post: vm})
}

// NotFound renders the unknown-post page.
func (r *Renderer) NotFound() ([]byte, error) {
	return r.execute("notfound", page{Lang: r.lang, Title: SiteTitle})
}

func (r *Renderer) execute(name string, data page) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
